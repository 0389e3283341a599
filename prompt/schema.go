package prompt

import (
	"encoding/json"
	"sync"

	"github.com/invopop/jsonschema"

	"github.com/quorumlab/consensuskit/parser"
)

var (
	schemaOnce sync.Once
	schemaJSON string
)

// EvaluationSchema returns the JSON schema of the chief's final verdict,
// pretty-printed for embedding in prompts. Generated once from
// parser.Evaluation.
func EvaluationSchema() string {
	schemaOnce.Do(func() {
		reflector := jsonschema.Reflector{
			DoNotReference: true,
			ExpandedStruct: true,
		}
		schema := reflector.Reflect(&parser.Evaluation{})

		raw, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			// Reflection over our own struct cannot produce an unmarshalable
			// schema; a failure here is a programming error.
			panic("prompt: marshal evaluation schema: " + err.Error())
		}
		schemaJSON = string(raw)
	})
	return schemaJSON
}

// evaluationExample is a filled-in verdict shown to the chief so the exact
// shape is unambiguous even for models that skim the schema.
const evaluationExample = `{
  "score_agent_1_percent": 88,
  "score_agent_2_percent": 64,
  "ranking": ["Agent 1", "Agent 2"],
  "agent_1_reasoning": "Agent 1 delivered the exact computation with precise numbers.",
  "agent_2_reasoning": "Agent 2 challenged assumptions but failed to provide the requested calculation.",
  "best_solution_summary": "The optimal approach is Agent 1's exact calculation.",
  "evaluation_notes": "Award Agent 1 as the winner; Agent 2's critique is useful but incomplete."
}`
