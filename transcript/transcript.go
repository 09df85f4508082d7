package transcript

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

const dialogueDir = ".duolog/dialogues"

// Turn is one unit of dialogue attributed to a speaker. Turns are appended to
// a transcript and never mutated afterwards.
type Turn struct {
	Speaker  string `json:"speaker"`
	Role     string `json:"role,omitempty"` // set for non-dialogue turns, e.g. "system"
	Content  string `json:"content"`
	Fallback bool   `json:"fallback,omitempty"` // true when the content is locally templated filler
}

// Transcript is the ordered, append-only record of one dialogue session.
type Transcript struct {
	Character1 string    `json:"character1"`
	Character2 string    `json:"character2"`
	Situation  string    `json:"situation"`
	Timestamp  time.Time `json:"timestamp"`
	Turns      []Turn    `json:"turns"`
}

// New creates a transcript for a session between the two named characters.
func New(character1, character2, situation string) *Transcript {
	return &Transcript{
		Character1: character1,
		Character2: character2,
		Situation:  situation,
		Timestamp:  time.Now(),
		Turns:      []Turn{},
	}
}

// AddTurn appends a turn to the transcript.
func (t *Transcript) AddTurn(turn Turn) {
	t.Turns = append(t.Turns, turn)
}

// Last returns the most recently appended turn, or nil for an empty transcript.
func (t *Transcript) Last() *Turn {
	if len(t.Turns) == 0 {
		return nil
	}
	return &t.Turns[len(t.Turns)-1]
}

// UsedFallback reports whether any turn carries locally templated filler text.
func (t *Transcript) UsedFallback() bool {
	for _, turn := range t.Turns {
		if turn.Fallback {
			return true
		}
	}
	return false
}

// Save writes the transcript to the dialogue directory and returns the file path.
func (t *Transcript) Save() (string, error) {
	if err := os.MkdirAll(dialogueDir, 0755); err != nil {
		return "", fmt.Errorf("could not create dialogue directory: %w", err)
	}

	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize transcript: %w", err)
	}

	name := fmt.Sprintf("dialogue_%s_%s_%s.json",
		sanitize(t.Character1), sanitize(t.Character2), t.Timestamp.Format("2006-01-02_15-04-05"))
	path := filepath.Join(dialogueDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// Load reads a transcript back from disk.
func Load(path string) (*Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read dialogue file %s: %w", path, err)
	}

	var t Transcript
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("could not parse dialogue file %s: %w", path, err)
	}
	return &t, nil
}

// List returns the saved dialogue files whose names match the glob pattern.
// An empty pattern matches everything.
func List(pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "*"
	}
	entries, err := os.ReadDir(dialogueDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not read dialogue directory: %w", err)
	}

	var matches []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ok, err := doublestar.Match(pattern, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if ok {
			matches = append(matches, filepath.Join(dialogueDir, entry.Name()))
		}
	}
	sort.Strings(matches)
	return matches, nil
}

// RenderText formats the transcript as human-readable "speaker: content"
// lines. System turns are elided. When any turn used fallback text a
// placeholder notice is appended so templated output is never mistaken for a
// generated dialogue.
func (t *Transcript) RenderText() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Dialogue between %s and %s\n", t.Character1, t.Character2)
	fmt.Fprintf(&sb, "Situation: %s\n\n", t.Situation)

	for _, turn := range t.Turns {
		if turn.Role == "system" {
			continue
		}
		fmt.Fprintf(&sb, "%s: %s\n\n", turn.Speaker, turn.Content)
	}

	if t.UsedFallback() {
		sb.WriteString("Note: one or more lines are placeholder text substituted after a generation failure.\n")
	}
	return sb.String()
}

func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '/', '\\', ':':
			return '_'
		}
		return r
	}, name)
}
