package dialogue

import (
	"context"
	"fmt"
	"strings"

	"github.com/m4xw311/duolog/llm"
)

// StarterLine produces the opening line of dialogue for a to say to b, using
// a single backend call instructed to emit only the line itself. On failure
// the deterministic local template is substituted; the second return value
// reports whether that happened.
func StarterLine(ctx context.Context, client llm.Client, a, b, situation string) (string, bool) {
	persona := fmt.Sprintf(
		"You are an assistant that generates the first line of dialogue for %s "+
			"to say to %s in this situation: %s. "+
			"Provide only the dialogue line, nothing else. Keep it concise and natural.",
		a, b, situation)

	prompt := []llm.Message{{
		Role:    "user",
		Content: fmt.Sprintf("Generate the first line of dialogue for %s.", a),
	}}

	text, err := client.Chat(ctx, persona, prompt)
	if err == nil {
		// Models occasionally wrap the line in quotes despite the instruction.
		text = strings.TrimSpace(strings.Trim(strings.TrimSpace(text), `"`))
		if text != "" {
			return text, false
		}
	}
	return fallbackStarter(b, situation), true
}
