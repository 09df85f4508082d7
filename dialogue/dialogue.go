// Package dialogue drives a turn-bounded conversation between two
// participants. A starter line is produced with a single backend call, then
// the participants alternate replies until the termination rule fires or the
// turn cap is reached. Generation failures never abort a session: the failed
// turn is substituted with deterministic templated text and flagged, and the
// result reports that fallback output was used.
package dialogue

import (
	"context"
	"fmt"
	"strings"

	"github.com/m4xw311/duolog/errors"
	"github.com/m4xw311/duolog/llm"
	"github.com/m4xw311/duolog/transcript"
)

// Participant is one of the two conversing characters, defined by a name, a
// persona system-instruction, and the backend that generates its replies.
// Immutable after creation.
type Participant struct {
	Name    string
	Persona string
	Client  llm.Client
}

// NewParticipant builds a participant whose persona places it in the given
// situation opposite the named counterpart.
func NewParticipant(name, counterpart, situation string, client llm.Client) Participant {
	persona := fmt.Sprintf(
		"You are %s. You are in the following situation: %s. "+
			"Your goal is to have a realistic conversation with %s "+
			"that addresses the situation naturally. Keep your responses concise and focused on the dialogue.",
		name, situation, counterpart)
	return Participant{Name: name, Persona: persona, Client: client}
}

// Result is the outcome of a dialogue session.
type Result struct {
	Transcript *transcript.Transcript
	// UsedFallback is true when any turn, including the starter, carries
	// locally templated text instead of backend output.
	UsedFallback bool
}

// Driver owns the turn loop between two participants.
type Driver struct {
	A, B      Participant
	Situation string
	Term      Termination
	// Starter, when non-empty, is used verbatim as the opening line instead
	// of generating one.
	Starter string
	// MaxTurns caps the number of turns past the starter regardless of the
	// termination rule. Defaults to defaultMaxTurns for content-match
	// sessions left uncapped.
	MaxTurns int
}

// Sessions terminated by phrase still need a bound so a dialogue that never
// utters the phrase cannot run forever.
const defaultMaxTurns = 30

func (d *Driver) validate() error {
	if strings.TrimSpace(d.A.Name) == "" || strings.TrimSpace(d.B.Name) == "" {
		return errors.New("both participant names are required")
	}
	if strings.TrimSpace(d.Situation) == "" {
		return errors.New("a situation description is required")
	}
	if d.A.Client == nil || d.B.Client == nil {
		return errors.New("both participants need a reply-generation backend")
	}
	return nil
}

// Run executes the dialogue session and returns the accumulated transcript.
// It fails only on invalid session configuration; generation failures are
// absorbed as flagged fallback turns.
func (d *Driver) Run(ctx context.Context) (*Result, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}

	limit := d.MaxTurns
	if limit <= 0 {
		if d.Term.kind == turnBound {
			limit = d.Term.limit
		} else {
			limit = defaultMaxTurns
		}
	}

	tr := transcript.New(d.A.Name, d.B.Name, d.Situation)
	res := &Result{Transcript: tr}

	line, fellBack := d.Starter, false
	if line == "" {
		line, fellBack = StarterLine(ctx, d.A.Client, d.A.Name, d.B.Name, d.Situation)
	}
	tr.AddTurn(transcript.Turn{Speaker: d.A.Name, Content: line, Fallback: fellBack})
	if fellBack {
		res.UsedFallback = true
	}

	// The starter is a turn like any other: an opening line that already
	// satisfies the termination rule ends the session before a reply.
	if d.Term.Done(*tr.Last(), 0) {
		return res, nil
	}

	speaker, listener := d.B, d.A
	for taken := 1; taken <= limit; taken++ {
		turn := d.reply(ctx, speaker, listener, tr.Turns, taken)
		tr.AddTurn(turn)
		if turn.Fallback {
			res.UsedFallback = true
		}
		if d.Term.Done(turn, taken) {
			break
		}
		speaker, listener = listener, speaker
	}

	return res, nil
}

// reply obtains one turn from the speaker. On any backend failure, including
// a blank reply, the deterministic fallback line is substituted and flagged.
func (d *Driver) reply(ctx context.Context, speaker, listener Participant, turns []transcript.Turn, taken int) transcript.Turn {
	history := historyFor(speaker, turns)
	text, err := speaker.Client.Chat(ctx, speaker.Persona, history)
	if err == nil {
		text = strings.TrimSpace(text)
		if text == "" {
			err = errors.Tagf(errors.ErrMalformedReply, "backend returned an empty reply")
		}
	}
	if err != nil {
		return transcript.Turn{
			Speaker:  speaker.Name,
			Content:  fallbackReply(listener.Name, d.Situation, taken),
			Fallback: true,
		}
	}
	return transcript.Turn{Speaker: speaker.Name, Content: text}
}

// historyFor maps transcript turns into the role-tagged history the backend
// expects, from the perspective of the participant about to reply: its own
// prior lines are "assistant", the counterpart's are "user". System turns are
// skipped.
func historyFor(p Participant, turns []transcript.Turn) []llm.Message {
	history := make([]llm.Message, 0, len(turns))
	for _, turn := range turns {
		if turn.Role == "system" {
			continue
		}
		role := "user"
		if turn.Speaker == p.Name {
			role = "assistant"
		}
		history = append(history, llm.Message{Role: role, Content: turn.Content})
	}
	return history
}
