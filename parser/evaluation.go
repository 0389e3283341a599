package parser

// Evaluation is the expected shape of the chief's final verdict. The
// extractor itself stays shape-lenient; this typed view is what the engine
// consumes after coercion. The jsonschema tags also drive the schema block
// embedded in the chief's prompt.
type Evaluation struct {
	ScoreAgent1 int      `json:"score_agent_1_percent" jsonschema:"minimum=0,maximum=100,description=Integer score 0-100 for Agent 1"`
	ScoreAgent2 int      `json:"score_agent_2_percent" jsonschema:"minimum=0,maximum=100,description=Integer score 0-100 for Agent 2"`
	Ranking     []string `json:"ranking" jsonschema:"description=Agent labels ordered best first"`
	Agent1Why   string   `json:"agent_1_reasoning" jsonschema:"description=Concise chief judgement about Agent 1"`
	Agent2Why   string   `json:"agent_2_reasoning" jsonschema:"description=Concise chief judgement about Agent 2"`
	Summary     string   `json:"best_solution_summary" jsonschema:"description=Short paragraph explaining the winning approach"`
	Notes       string   `json:"evaluation_notes" jsonschema:"description=Optional chief notes or tie-breaker comments"`
}

// DecodeEvaluation converts an extracted object into the typed evaluation,
// coercing scores of whatever shape the extraction produced. Returns nil for
// a nil input; missing fields stay zero-valued.
func DecodeEvaluation(data map[string]any) *Evaluation {
	if data == nil {
		return nil
	}

	ev := &Evaluation{
		Agent1Why: stringField(data, FieldAgent1Why),
		Agent2Why: stringField(data, FieldAgent2Why),
		Summary:   stringField(data, FieldSummary),
		Notes:     stringField(data, FieldNotes),
		Ranking:   stringSlice(data[FieldRanking]),
	}
	if n, ok := CoerceScore(data[FieldScoreAgent1]); ok {
		ev.ScoreAgent1 = n
	}
	if n, ok := CoerceScore(data[FieldScoreAgent2]); ok {
		ev.ScoreAgent2 = n
	}
	return ev
}

func stringField(data map[string]any, key string) string {
	if s, ok := data[key].(string); ok {
		return s
	}
	return ""
}

// stringSlice accepts both the []any a JSON parse produces and the []string
// the salvage strategy produces.
func stringSlice(v any) []string {
	switch items := v.(type) {
	case []string:
		return items
	case []any:
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
