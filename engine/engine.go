// Package engine drives the multi-iteration consensus simulation: a chief
// architect orchestrates a logic strategist and a pragmatic critic through a
// fixed number of rounds, then scores both experts in a final JSON verdict.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/quorumlab/consensuskit/model"
	"github.com/quorumlab/consensuskit/parser"
	"github.com/quorumlab/consensuskit/prompt"
	"github.com/quorumlab/consensuskit/provider"
	"github.com/quorumlab/consensuskit/query"
	"github.com/quorumlab/consensuskit/usage"
)

// DefaultIterations is the number of consensus rounds per run.
const DefaultIterations = 3

// ErrEmptyProblem is returned by Start when the problem statement is blank.
var ErrEmptyProblem = errors.New("engine: problem statement cannot be empty")

// ErrNotStarted is returned by operations that need an initialized run.
var ErrNotStarted = errors.New("engine: simulation not started")

// ErrIncomplete is returned by FinalEvaluation before all iterations ran.
var ErrIncomplete = errors.New("engine: simulation not complete")

// recentTurns is how many of an expert's own prior replies are replayed as
// assistant turns on each request.
const recentTurns = 2

// finalNotice replaces the raw JSON in the chief's visible history once the
// verdict is in.
const finalNotice = "🧾 Chief submitted the final evaluation JSON. See the final results for the breakdown."

// Models assigns a model to each consensus role.
type Models struct {
	Chief  model.Name
	Logic  model.Name
	Critic model.Name
}

// DefaultModels returns the standard role assignment.
func DefaultModels() Models {
	return Models{
		Chief:  model.ChiefModel,
		Logic:  model.LogicModel,
		Critic: model.CriticModel,
	}
}

// Engine runs consensus simulations over a query client. It is not safe for
// concurrent use; run one simulation at a time.
type Engine struct {
	client     *query.Client
	models     Models
	iterations int
	log        *log.Logger

	state *State
}

// Option customizes an Engine.
type Option func(*Engine)

// WithModels overrides the per-role model assignment.
func WithModels(m Models) Option {
	return func(e *Engine) { e.models = m }
}

// WithIterations overrides the number of consensus rounds.
func WithIterations(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.iterations = n
		}
	}
}

// WithLogger enables progress logging.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) { e.log = logger }
}

// New creates an Engine backed by client.
func New(client *query.Client, opts ...Option) *Engine {
	e := &Engine{
		client:     client,
		models:     DefaultModels(),
		iterations: DefaultIterations,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State exposes the current run's state, nil before Start.
func (e *Engine) State() *State { return e.state }

// Iterations returns the configured number of rounds.
func (e *Engine) Iterations() int { return e.iterations }

// Start initializes a fresh run and asks the chief for its opening analysis
// and first question. Any previous run's state is discarded.
func (e *Engine) Start(ctx context.Context, problem, groundTruth string) error {
	if strings.TrimSpace(problem) == "" {
		return ErrEmptyProblem
	}
	e.state = newState(problem, groundTruth)
	e.logf("simulation started", "problem", problem, "iterations", e.iterations)

	messages := []provider.Message{
		provider.NewMessage(provider.RoleSystem, e.state.chiefSystem),
		provider.NewMessage(provider.RoleUser,
			"Problem: "+problem+"\n\nAnalyze this problem and ask your first targeted question to guide the Logic Strategist and Pragmatic Critic toward a solution."),
	}
	reply, err := e.client.Query(ctx, messages, e.models.Chief)
	if err != nil {
		return fmt.Errorf("engine: chief opening: %w", err)
	}
	e.state.chiefHistory = append(e.state.chiefHistory, reply.Content)
	return nil
}

// RunIteration executes one consensus round: the logic strategist answers the
// chief's latest question, the critic dissects that answer, and the chief
// either asks the next question or, on the last round, delivers the final
// JSON verdict.
func (e *Engine) RunIteration(ctx context.Context) error {
	if e.state == nil || !e.state.started {
		return ErrNotStarted
	}
	if e.state.iteration >= e.iterations {
		return fmt.Errorf("engine: all %d iterations already ran", e.iterations)
	}
	iteration := e.state.iteration + 1
	e.state.iteration = iteration
	convo := e.state.conversationContext()

	logicReply, err := e.logicResponse(ctx, convo)
	if err != nil {
		return fmt.Errorf("engine: iteration %d: logic: %w", iteration, err)
	}
	criticReply, err := e.criticResponse(ctx, convo, logicReply)
	if err != nil {
		return fmt.Errorf("engine: iteration %d: critic: %w", iteration, err)
	}
	if err := e.chiefResponse(ctx, iteration, logicReply, criticReply); err != nil {
		return fmt.Errorf("engine: iteration %d: chief: %w", iteration, err)
	}
	e.logf("iteration complete", "iteration", iteration)
	return nil
}

func (e *Engine) logicResponse(ctx context.Context, convo string) (string, error) {
	messages := []provider.Message{
		provider.NewMessage(provider.RoleSystem, e.state.logicSystem),
		provider.NewMessage(provider.RoleUser,
			convo+"Respond to the Chief's question with your strategic analysis and approach."),
	}
	for _, msg := range lastN(e.state.logicHistory, recentTurns) {
		messages = append(messages, provider.NewMessage(provider.RoleAssistant, msg))
	}
	reply, err := e.client.Query(ctx, messages, e.models.Logic)
	if err != nil {
		return "", err
	}
	e.state.logicHistory = append(e.state.logicHistory, reply.Content)
	return reply.Content, nil
}

func (e *Engine) criticResponse(ctx context.Context, convo, logicReply string) (string, error) {
	user := convo +
		prompt.LogicLabel + " just said: " + logicReply + "\n\n" +
		"Respond to the Chief's question AND analyze Logic Strategist's proposal. Find flaws, demand specifics, check feasibility."
	messages := []provider.Message{
		provider.NewMessage(provider.RoleSystem, e.state.criticSystem),
		provider.NewMessage(provider.RoleUser, user),
	}
	for _, msg := range lastN(e.state.criticHistory, recentTurns) {
		messages = append(messages, provider.NewMessage(provider.RoleAssistant, msg))
	}
	reply, err := e.client.Query(ctx, messages, e.models.Critic)
	if err != nil {
		return "", err
	}
	e.state.criticHistory = append(e.state.criticHistory, reply.Content)
	return reply.Content, nil
}

func (e *Engine) chiefResponse(ctx context.Context, iteration int, logicReply, criticReply string) error {
	final := iteration == e.iterations

	var user string
	if final {
		user = prompt.FinalEvaluationContext(prompt.FinalContext{
			Problem:       e.state.problem,
			GroundTruth:   e.state.groundTruth,
			LogicHistory:  e.state.logicHistory,
			CriticHistory: e.state.criticHistory,
			LogicLatest:   logicReply,
			CriticLatest:  criticReply,
		})
	} else {
		truth := e.state.groundTruth
		if truth == "" {
			truth = "(Not provided)"
		}
		user = "## Problem Statement\n" + e.state.problem + "\n\n" +
			"## Expected / Reference Solution\n" + truth + "\n\n" +
			prompt.LogicLabel + " said: " + logicReply + "\n\n" +
			prompt.CriticLabel + " said: " + criticReply + "\n\n" +
			fmt.Sprintf("Analyze their responses. You can ask clarifying questions or guide them further. Ask your next targeted question to refine the solution. (Iteration %d/%d)", iteration, e.iterations)
	}

	messages := []provider.Message{
		provider.NewMessage(provider.RoleSystem, e.state.chiefSystem),
	}
	for _, msg := range e.state.chiefHistory {
		messages = append(messages, provider.NewMessage(provider.RoleAssistant, msg))
	}
	messages = append(messages, provider.NewMessage(provider.RoleUser, user))

	reply, err := e.client.Query(ctx, messages, e.models.Chief)
	if err != nil {
		return err
	}

	visible := reply.Content
	if final {
		e.state.finalRaw = reply.Content
		e.state.finalData = parser.Extract(reply.Content)
		visible = finalNotice
	}
	e.state.chiefHistory = append(e.state.chiefHistory, visible)
	return nil
}

// Result is the outcome of a completed simulation.
type Result struct {
	Evaluation parser.Evaluation
	Raw        string
	Usage      usage.Totals
}

// Winner returns the top-ranked agent label, empty when the chief gave no
// ranking.
func (r *Result) Winner() string {
	if len(r.Evaluation.Ranking) == 0 {
		return ""
	}
	return r.Evaluation.Ranking[0]
}

// FinalEvaluation decodes the chief's final verdict. It fails when the run
// has not completed all iterations or when no JSON could be recovered from
// the chief's reply.
func (e *Engine) FinalEvaluation() (*Result, error) {
	if e.state == nil || !e.state.started {
		return nil, ErrNotStarted
	}
	if e.state.iteration < e.iterations {
		return nil, ErrIncomplete
	}
	if e.state.finalData == nil {
		preview := e.state.finalRaw
		if len(preview) > 1000 {
			preview = preview[:1000]
		}
		return nil, fmt.Errorf("engine: could not parse chief's final evaluation: %q", preview)
	}
	return &Result{
		Evaluation: *parser.DecodeEvaluation(e.state.finalData),
		Raw:        e.state.finalRaw,
		Usage:      e.client.Session().Totals(),
	}, nil
}

// Run executes a full simulation from a blank state and returns the final
// verdict.
func (e *Engine) Run(ctx context.Context, problem, groundTruth string) (*Result, error) {
	if err := e.Start(ctx, problem, groundTruth); err != nil {
		return nil, err
	}
	for e.state.iteration < e.iterations {
		if err := e.RunIteration(ctx); err != nil {
			return nil, err
		}
	}
	return e.FinalEvaluation()
}

func (e *Engine) logf(msg string, kv ...any) {
	if e.log != nil {
		e.log.Info(msg, kv...)
	}
}
