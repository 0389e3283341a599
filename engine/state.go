package engine

import (
	"strings"

	"github.com/quorumlab/consensuskit/prompt"
)

// State holds everything accumulated during one consensus run: the problem
// under discussion, the per-role conversation histories, and the chief's
// final verdict once it arrives. A State belongs to a single Engine and is
// not safe for concurrent use.
type State struct {
	problem     string
	groundTruth string

	chiefHistory  []string
	logicHistory  []string
	criticHistory []string

	chiefSystem  string
	logicSystem  string
	criticSystem string

	iteration int
	started   bool

	finalRaw  string
	finalData map[string]any
}

func newState(problem, groundTruth string) *State {
	return &State{
		problem:      problem,
		groundTruth:  groundTruth,
		chiefSystem:  prompt.ChiefSystem(problem),
		logicSystem:  prompt.LogicSystem(problem),
		criticSystem: prompt.CriticSystem(problem),
		started:      true,
	}
}

// Problem returns the problem statement under discussion.
func (s *State) Problem() string { return s.problem }

// GroundTruth returns the reference solution, if one was given.
func (s *State) GroundTruth() string { return s.groundTruth }

// Iteration returns the number of completed iterations.
func (s *State) Iteration() int { return s.iteration }

// Started reports whether the run has been initialized.
func (s *State) Started() bool { return s.started }

// ChiefHistory returns a copy of the chief's messages so far.
func (s *State) ChiefHistory() []string { return copyStrings(s.chiefHistory) }

// LogicHistory returns a copy of the logic strategist's messages so far.
func (s *State) LogicHistory() []string { return copyStrings(s.logicHistory) }

// CriticHistory returns a copy of the pragmatic critic's messages so far.
func (s *State) CriticHistory() []string { return copyStrings(s.criticHistory) }

// FinalRaw returns the chief's verbatim final reply, empty until the last
// iteration has run.
func (s *State) FinalRaw() string { return s.finalRaw }

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// conversationContext renders the full discussion so far, interleaving the
// three roles round by round, and closes with the chief's latest directive
// so the experts know what question they are answering.
func (s *State) conversationContext() string {
	var sb strings.Builder
	sb.WriteString("Problem: " + s.problem + "\n\n")
	sb.WriteString("CONVERSATION HISTORY:\n\n")

	rounds := len(s.chiefHistory)
	if n := len(s.logicHistory); n > rounds {
		rounds = n
	}
	if n := len(s.criticHistory); n > rounds {
		rounds = n
	}
	for i := 0; i < rounds; i++ {
		if i < len(s.chiefHistory) {
			sb.WriteString(prompt.ChiefLabel + ": " + s.chiefHistory[i] + "\n\n")
		}
		if i < len(s.logicHistory) {
			sb.WriteString(prompt.LogicLabel + ": " + s.logicHistory[i] + "\n\n")
		}
		if i < len(s.criticHistory) {
			sb.WriteString(prompt.CriticLabel + ": " + s.criticHistory[i] + "\n\n")
		}
	}

	if len(s.chiefHistory) > 0 {
		sb.WriteString("\n" + prompt.ChiefLabel + "'s latest question/directive: " +
			s.chiefHistory[len(s.chiefHistory)-1] + "\n\n")
	}
	return sb.String()
}

// lastN returns up to the n most recent entries of history.
func lastN(history []string, n int) []string {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}
