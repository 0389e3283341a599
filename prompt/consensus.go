package prompt

import (
	"strings"
	"text/template"
)

// Display labels for the three consensus roles.
const (
	ChiefLabel  = "👑 Chief"
	LogicLabel  = "📐 Logic Strategist"
	CriticLabel = "⚔️ Pragmatic Critic"
)

// render executes a prompt template against its data. Templates are compiled
// at package init, so execution can only fail on a bad data shape, a
// programming error worth a panic rather than an error return every caller
// would ignore.
func render(t *template.Template, data any) string {
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		panic("prompt: render " + t.Name() + ": " + err.Error())
	}
	return sb.String()
}

var chiefTemplate = template.Must(template.New("chief").Parse(
	`You are the Chief AI Architect. Your goal is to facilitate a solution for: '{{.Problem}}'.

You have two expert assistants:
1. **Logic Strategist** (Agent 1): Provides high-level abstractions, step-by-step algorithms, and theoretical frameworks.
2. **Pragmatic Critic** (Agent 2): Checks feasibility, costs, mathematical accuracy, and finds edge cases.

YOUR ROLE:
- Orchestrate the conversation and guide the experts
- Ask SPECIFIC, TARGETED questions to clarify and guide the solution
- Analyze their responses and ask follow-up questions to refine the solution
- Keep the team focused and on track
- In the final iteration you MUST synthesize the complete solution, score BOTH experts (0-100), and output the evaluation STRICTLY as JSON following this schema:
{{.Schema}}

COMMUNICATION STYLE:
- Be clear and directive
- Reference what the experts said previously
- Guide toward a concrete, implementable solution

CRITICAL - RESPONSE LENGTH:
- For intermediate iterations: keep responses SHORT (maximum 2-3 sentences)
- For the final iteration: respond with JSON ONLY (no markdown, no prose outside the JSON object)
- Never leave a score blank; if uncertain, assign the most appropriate score and explain the deduction in the reasoning fields`))

var expertTemplate = template.Must(template.New("expert").Parse(
	`You are the {{.Title}}. {{.Stance}}

PROBLEM TO SOLVE: {{.Problem}}

YOUR ROLE:
{{.Role}}

COMMUNICATION STYLE:
{{.Style}}

CRITICAL - RESPONSE LENGTH:
- Keep responses SHORT and CONCISE
- Maximum 2-3 sentences per response
- Be direct and focused

OUTPUT FORMAT:
- Use Markdown for formatting
- Use bullet points and numbered lists
- Keep responses BRIEF and to the point`))

// ChiefSystem builds the system prompt for the chief architect.
func ChiefSystem(problem string) string {
	return render(chiefTemplate, map[string]string{
		"Problem": problem,
		"Schema":  EvaluationSchema(),
	})
}

// LogicSystem builds the system prompt for the logic strategist.
func LogicSystem(problem string) string {
	return render(expertTemplate, map[string]string{
		"Title":   "Strategic Logic Unit",
		"Stance":  "You approach problems via first principles, high-level strategy, and logical deductions.",
		"Problem": problem,
		"Role": `- Provide high-level abstractions and theoretical frameworks
- Break down problems into step-by-step algorithms
- Focus on structure, efficiency, and logical flow
- Ignore emotional aspects - be purely analytical`,
		"Style": `- Be precise and methodical
- Use mathematical notation when appropriate
- Present clear logical chains`,
	})
}

// CriticSystem builds the system prompt for the pragmatic critic.
func CriticSystem(problem string) string {
	return render(expertTemplate, map[string]string{
		"Title":   "Pragmatic Critic",
		"Stance":  "Your job is to be polemic, skeptical, and rigorous.",
		"Problem": problem,
		"Role": `- Find flaws in proposed solutions
- Demand proof and concrete numbers
- Check mathematical accuracy
- Look for edge cases and failure modes
- Question feasibility and costs
- Be adversarial but constructive - your goal is to improve the solution`,
		"Style": `- Be direct and challenging
- Ask "What if?" questions
- Demand specifics: "Show me the math", "What are the costs?", "What happens if X fails?"`,
	})
}

// FinalContext carries everything the chief needs for the final verdict.
type FinalContext struct {
	Problem       string
	GroundTruth   string
	LogicHistory  []string
	CriticHistory []string
	LogicLatest   string
	CriticLatest  string
}

var finalEvalTemplate = template.Must(template.New("finaleval").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(
	`## Problem Statement
{{.Problem}}

## Expected / Reference Solution
{{if .GroundTruth}}{{.GroundTruth}}{{else}}(Not provided){{end}}

## COMPLETE SOLUTION HISTORY

### 📐 Logic Strategist (Agent 1) - Contributions:
{{- if .LogicHistory}}
{{- range $i, $msg := .LogicHistory}}
- Step {{inc $i}}: {{$msg}}
{{- end}}
{{- else}}
- No contributions recorded.
{{- end}}

### ⚔️ Pragmatic Critic (Agent 2) - Contributions:
{{- if .CriticHistory}}
{{- range $i, $msg := .CriticHistory}}
- Step {{inc $i}}: {{$msg}}
{{- end}}
{{- else}}
- No contributions recorded.
{{- end}}

### Latest Responses:
- 📐 Logic Strategist said: {{.LogicLatest}}
- ⚔️ Pragmatic Critic said: {{.CriticLatest}}

## ⚠️ FINAL EVALUATION - MANDATORY JSON RESPONSE

You MUST complete ALL of the following and respond ONLY with valid JSON.

### Task
1. Compare both experts' complete solution histories against the expected/reference solution above.
2. Determine which expert provided the best solution (if any).
3. Assign mandatory percentage scores (0-100) to BOTH experts based on accuracy, completeness, feasibility, and alignment with the reference solution.
4. Summarize the best solution.
- You are delivering the final verdict. Do NOT ask for additional computations or follow-up clarifications.

### Agent Mapping
- Agent 1 = 📐 Logic Strategist
- Agent 2 = ⚔️ Pragmatic Critic

### REQUIRED JSON FORMAT (return ONLY this JSON object)
{{.Schema}}

Rules:
- Percentages MUST be integers between 0 and 100.
- ` + "`ranking`" + ` must be an ordered list (length 2) using the labels "Agent 1" and "Agent 2".
- Do NOT include any text outside the JSON object. Respond with JSON ONLY (no markdown fences, no commentary).
- Example of a valid reply:
{{.Example}}
`))

// FinalEvaluationContext builds the user message that demands the chief's
// JSON verdict.
func FinalEvaluationContext(fc FinalContext) string {
	return render(finalEvalTemplate, struct {
		FinalContext
		Schema  string
		Example string
	}{
		FinalContext: fc,
		Schema:       EvaluationSchema(),
		Example:      evaluationExample,
	})
}
