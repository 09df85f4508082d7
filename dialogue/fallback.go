package dialogue

import (
	"fmt"
	"strings"
)

// Deterministic filler lines substituted when the reply backend is
// unavailable or a single call fails, so a session always yields a non-empty
// transcript. Every substituted turn is flagged, never mixed silently into
// generated output.

func fallbackStarter(counterpart, situation string) string {
	return fmt.Sprintf("Hello %s, I wanted to talk about %s...", counterpart, topicOf(situation))
}

func fallbackReply(counterpart, situation string, turnsTaken int) string {
	if turnsTaken == 1 {
		return fmt.Sprintf("Hi %s! Sure, what about %s did you want to discuss?", counterpart, topicOf(situation))
	}
	return fmt.Sprintf("Well, regarding %s, I was hoping we could work through it together.", situation)
}

// topicOf reduces a situation description to a short handle usable mid-sentence.
func topicOf(situation string) string {
	fields := strings.Fields(situation)
	if len(fields) == 0 {
		return "things"
	}
	return strings.Trim(fields[0], ".,!?:;")
}
