// Package debate runs a two-agent alter-ego debate: an adversarial persona
// and a polite one trade single-sentence replies on a topic, each speaking
// through the same underlying model with its own system prompt.
package debate

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/quorumlab/consensuskit/model"
	"github.com/quorumlab/consensuskit/profile"
	"github.com/quorumlab/consensuskit/prompt"
	"github.com/quorumlab/consensuskit/provider"
	"github.com/quorumlab/consensuskit/query"
)

// DefaultModel speaks for both debate agents unless overridden.
const DefaultModel = model.LogicModel

// ErrNotStarted is returned by NextExchange before Start has run.
var ErrNotStarted = errors.New("debate: conversation not started")

// Debate holds one running conversation. Not safe for concurrent use.
type Debate struct {
	client *query.Client
	model  model.Name
	log    *log.Logger

	topic       string
	adversarial profile.Profile
	polite      profile.Profile

	adversarialSystem string
	politeSystem      string

	// adversarialMsgs[i] answers politeMsgs[i]; the polite agent opens, so
	// politeMsgs is always the longer (or equal) history.
	adversarialMsgs []string
	politeMsgs      []string
}

// Option customizes a Debate.
type Option func(*Debate)

// WithModel overrides the model both agents speak through.
func WithModel(m model.Name) Option {
	return func(d *Debate) { d.model = m }
}

// WithLogger enables progress logging.
func WithLogger(logger *log.Logger) Option {
	return func(d *Debate) { d.log = logger }
}

// New creates a debate between an adversarial and a polite persona.
func New(client *query.Client, adversarial, polite profile.Profile, topic string, opts ...Option) *Debate {
	d := &Debate{
		client:            client,
		model:             DefaultModel,
		topic:             topic,
		adversarial:       adversarial,
		polite:            polite,
		adversarialSystem: prompt.DebateSystem(adversarial, topic, prompt.RoleAdversarial),
		politeSystem:      prompt.DebateSystem(polite, topic, prompt.RolePolite),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Topic returns the discussion topic.
func (d *Debate) Topic() string { return d.topic }

// Started reports whether the opening message has been generated.
func (d *Debate) Started() bool { return len(d.politeMsgs) > 0 }

// Exchanges returns the number of completed adversarial/polite exchanges.
func (d *Debate) Exchanges() int { return len(d.adversarialMsgs) }

// Start clears any previous conversation and has the polite agent open with
// a greeting that introduces the topic. It returns the opening message.
func (d *Debate) Start(ctx context.Context) (string, error) {
	d.adversarialMsgs = nil
	d.politeMsgs = nil

	opening, err := d.politeTurn(ctx)
	if err != nil {
		return "", fmt.Errorf("debate: opening: %w", err)
	}
	d.politeMsgs = append(d.politeMsgs, opening)
	d.logf("conversation started", "agent", d.polite.Name, "topic", d.topic)
	return opening, nil
}

// Exchange is one adversarial reply and the polite rebuttal to it.
type Exchange struct {
	Adversarial string
	Polite      string
}

// NextExchange advances the debate one round: the adversarial agent attacks
// the polite agent's last message, then the polite agent answers back.
func (d *Debate) NextExchange(ctx context.Context) (*Exchange, error) {
	if !d.Started() {
		return nil, ErrNotStarted
	}

	attack, err := d.adversarialTurn(ctx)
	if err != nil {
		return nil, fmt.Errorf("debate: exchange %d: adversarial: %w", len(d.adversarialMsgs)+1, err)
	}
	d.adversarialMsgs = append(d.adversarialMsgs, attack)

	rebuttal, err := d.politeTurn(ctx)
	if err != nil {
		return nil, fmt.Errorf("debate: exchange %d: polite: %w", len(d.adversarialMsgs), err)
	}
	d.politeMsgs = append(d.politeMsgs, rebuttal)

	d.logf("exchange complete", "exchange", len(d.adversarialMsgs))
	return &Exchange{Adversarial: attack, Polite: rebuttal}, nil
}

// adversarialTurn builds the adversarial agent's view of the conversation:
// the polite agent's messages are user turns, its own replies assistant
// turns, ending on the polite agent's unanswered message.
func (d *Debate) adversarialTurn(ctx context.Context) (string, error) {
	messages := []provider.Message{
		provider.NewMessage(provider.RoleSystem, d.adversarialSystem),
	}
	for i, msg := range d.politeMsgs {
		messages = append(messages, provider.NewMessage(provider.RoleUser, msg))
		if i < len(d.adversarialMsgs) {
			messages = append(messages, provider.NewMessage(provider.RoleAssistant, d.adversarialMsgs[i]))
		}
	}
	return d.speak(ctx, messages)
}

// politeTurn builds the polite agent's view: its own opening is an assistant
// turn, each adversarial message a user turn, ending on the adversarial
// agent's unanswered message. With no history it produces the opening.
func (d *Debate) politeTurn(ctx context.Context) (string, error) {
	messages := []provider.Message{
		provider.NewMessage(provider.RoleSystem, d.politeSystem),
	}
	for i, msg := range d.politeMsgs {
		if i > 0 && i-1 < len(d.adversarialMsgs) {
			messages = append(messages, provider.NewMessage(provider.RoleUser, d.adversarialMsgs[i-1]))
		}
		messages = append(messages, provider.NewMessage(provider.RoleAssistant, msg))
	}
	if len(d.adversarialMsgs) > 0 && len(d.adversarialMsgs) >= len(d.politeMsgs) {
		messages = append(messages, provider.NewMessage(provider.RoleUser, d.adversarialMsgs[len(d.adversarialMsgs)-1]))
	}
	return d.speak(ctx, messages)
}

func (d *Debate) speak(ctx context.Context, messages []provider.Message) (string, error) {
	reply, err := d.client.Query(ctx, messages, d.model)
	if err != nil {
		return "", err
	}
	return prompt.StampSim(reply.Content), nil
}

// Turn is one entry of the interleaved transcript.
type Turn struct {
	Speaker string
	Text    string
}

// Transcript returns the conversation in speaking order: the polite opening,
// then alternating adversarial and polite turns.
func (d *Debate) Transcript() []Turn {
	turns := make([]Turn, 0, len(d.politeMsgs)+len(d.adversarialMsgs))
	for i, msg := range d.politeMsgs {
		turns = append(turns, Turn{Speaker: d.polite.Name, Text: msg})
		if i < len(d.adversarialMsgs) {
			turns = append(turns, Turn{Speaker: d.adversarial.Name, Text: d.adversarialMsgs[i]})
		}
	}
	return turns
}

func (d *Debate) logf(msg string, kv ...any) {
	if d.log != nil {
		d.log.Info(msg, kv...)
	}
}
