package dialogue

import (
	"strings"

	"github.com/m4xw311/duolog/transcript"
)

type terminationKind int

const (
	contentMatch terminationKind = iota
	turnBound
)

// Termination decides when a dialogue session ends. Construct one with
// ContentMatch or TurnBound; exactly one rule is active per session.
type Termination struct {
	kind   terminationKind
	phrase string
	limit  int
}

// ContentMatch ends the session at the first turn whose text contains the
// phrase, case-insensitively.
func ContentMatch(phrase string) Termination {
	return Termination{kind: contentMatch, phrase: phrase}
}

// TurnBound ends the session after n turns past the starter, regardless of
// content.
func TurnBound(n int) Termination {
	return Termination{kind: turnBound, limit: n}
}

// Done reports whether the session ends after the given reply turn.
// turnsTaken counts turns past the starter, including this one.
func (t Termination) Done(turn transcript.Turn, turnsTaken int) bool {
	switch t.kind {
	case contentMatch:
		return t.phrase != "" &&
			strings.Contains(strings.ToLower(turn.Content), strings.ToLower(t.phrase))
	case turnBound:
		return turnsTaken >= t.limit
	}
	return false
}

func (t Termination) String() string {
	if t.kind == turnBound {
		return "turn bound"
	}
	return "content match"
}
