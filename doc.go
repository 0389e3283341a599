// Package consensuskit is a toolkit for resilient multi-agent LLM
// simulations. Each subpackage can be used independently:
//
//   - provider: transport-agnostic chat completion clients with a registry
//   - query: model invocation with transport and model fallback plus usage accounting
//   - model: fallback chains and fixed-rate pricing
//   - usage: per-session token and cost ledger
//   - parser: multi-strategy JSON recovery from model replies
//   - prompt: system prompts and schemas for the consensus and debate roles
//   - engine: the three-role consensus simulation
//   - debate: the two-persona alter-ego debate
//   - config: TOML configuration with live reload
//   - profile: debate personas in YAML
//
// # Quick Start
//
// Querying with fallback:
//
//	session := usage.NewSession()
//	transports, _ := cfg.Transports()
//	client := query.New(session, transports)
//	resp, err := client.Query(ctx, messages, model.ChiefModel)
//
// Running a full consensus simulation:
//
//	eng := engine.New(client)
//	result, err := eng.Run(ctx, "Minimize total routing cost", "")
//	fmt.Println(result.Evaluation.ScoreAgent1, result.Winner())
//
// The consensus command in cmd/consensus exposes both simulations from the
// terminal.
package consensuskit
