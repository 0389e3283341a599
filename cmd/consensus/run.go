package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/quorumlab/consensuskit/config"
	"github.com/quorumlab/consensuskit/engine"
	"github.com/quorumlab/consensuskit/model"
	"github.com/quorumlab/consensuskit/query"
	"github.com/quorumlab/consensuskit/usage"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	scoreStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

const runLongDesc = `Run a full consensus simulation on a problem.

The chief architect opens the discussion, then each round the logic
strategist proposes, the pragmatic critic challenges, and the chief steers.
On the final round the chief scores both experts and the verdict is printed
together with the token and cost totals.

Example:
  consensus run "Minimize total routing cost for a 3-warehouse fleet"
  consensus run "Prove the sum of two odd numbers is even" --truth "Always even" --iterations 5`

func newRunCmd(root *rootOptions) *cobra.Command {
	var (
		truth      string
		iterations int
	)

	cmd := &cobra.Command{
		Use:   "run <problem>",
		Short: "Run a consensus simulation",
		Long:  runLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if iterations > 0 {
				cfg.Iterations = iterations
			}

			client, err := newClient(cfg, root)
			if err != nil {
				return err
			}
			eng := engine.New(client,
				engine.WithModels(engine.Models{
					Chief:  model.Name(cfg.ChiefModel),
					Logic:  model.Name(cfg.LogicModel),
					Critic: model.Name(cfg.CriticModel),
				}),
				engine.WithIterations(cfg.Iterations),
				engine.WithLogger(root.logger()),
			)

			result, err := eng.Run(cmd.Context(), args[0], truth)
			if err != nil {
				return err
			}
			printResult(cmd, eng, result)
			return nil
		},
	}
	cmd.Flags().StringVarP(&truth, "truth", "t", "", "reference solution to score against")
	cmd.Flags().IntVarP(&iterations, "iterations", "n", 0, "number of consensus rounds (default from config)")
	return cmd
}

// newClient assembles the query client from config: transports, fallback
// chains, pricing, and reply cap.
func newClient(cfg config.Config, root *rootOptions) (*query.Client, error) {
	transports, err := cfg.Transports()
	if err != nil {
		return nil, err
	}
	opts := []query.Option{
		query.WithChains(cfg.Chains()),
		query.WithRates(cfg.Rates),
		query.WithMaxTokens(cfg.MaxTokens),
	}
	if root.verbose {
		opts = append(opts, query.WithLogger(root.logger()))
	}
	return query.New(usage.NewSession(), transports, opts...), nil
}

func printResult(cmd *cobra.Command, eng *engine.Engine, result *engine.Result) {
	out := cmd.OutOrStdout()
	ev := result.Evaluation

	fmt.Fprintln(out, headingStyle.Render("Final Verdict"))
	fmt.Fprintf(out, "%s %s\n", labelStyle.Render("Logic Strategist (Agent 1):"),
		scoreStyle.Render(fmt.Sprintf("%d%%", ev.ScoreAgent1)))
	fmt.Fprintf(out, "%s %s\n", labelStyle.Render("Pragmatic Critic (Agent 2):"),
		scoreStyle.Render(fmt.Sprintf("%d%%", ev.ScoreAgent2)))
	if winner := result.Winner(); winner != "" {
		fmt.Fprintf(out, "%s %s\n", labelStyle.Render("Ranking:"), strings.Join(ev.Ranking, " > "))
	}
	if ev.Summary != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, headingStyle.Render("Best Solution"))
		fmt.Fprintln(out, ev.Summary)
	}
	if ev.Agent1Why != "" {
		fmt.Fprintf(out, "\n%s %s\n", labelStyle.Render("Agent 1:"), ev.Agent1Why)
	}
	if ev.Agent2Why != "" {
		fmt.Fprintf(out, "%s %s\n", labelStyle.Render("Agent 2:"), ev.Agent2Why)
	}
	if ev.Notes != "" {
		fmt.Fprintf(out, "%s %s\n", labelStyle.Render("Notes:"), ev.Notes)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, dimStyle.Render(usageSummary(result.Usage, eng.State().Iteration())))
}

func usageSummary(totals usage.Totals, iterations int) string {
	return fmt.Sprintf("%d iterations | tokens in %d, out %d | cost $%.4f",
		iterations, totals.TokensIn, totals.TokensOut, totals.Cost)
}
