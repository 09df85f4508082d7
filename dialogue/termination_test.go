package dialogue

import (
	"testing"

	"github.com/m4xw311/duolog/transcript"
)

func TestTerminationDone(t *testing.T) {
	cases := []struct {
		name       string
		term       Termination
		content    string
		turnsTaken int
		want       bool
	}{
		{"content match exact", ContentMatch("thank you"), "Well, thank you for your service", 1, true},
		{"content match case-insensitive", ContentMatch("Thank You"), "ok, thank you!", 2, true},
		{"content no match", ContentMatch("goodbye"), "see you later", 3, false},
		{"content empty phrase never matches", ContentMatch(""), "anything", 1, false},
		{"turn bound below limit", TurnBound(3), "irrelevant", 2, false},
		{"turn bound at limit", TurnBound(3), "irrelevant", 3, true},
		{"turn bound past limit", TurnBound(3), "irrelevant", 4, true},
		{"turn bound ignores content", TurnBound(5), "thank you", 1, false},
	}

	for _, tc := range cases {
		turn := transcript.Turn{Speaker: "x", Content: tc.content}
		if got := tc.term.Done(turn, tc.turnsTaken); got != tc.want {
			t.Errorf("%s: Done() = %v, want %v", tc.name, got, tc.want)
		}
	}
}
