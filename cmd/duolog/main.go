package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/m4xw311/duolog/config"
	"github.com/m4xw311/duolog/dialogue"
	"github.com/m4xw311/duolog/errors"
	"github.com/m4xw311/duolog/llm"
	"github.com/m4xw311/duolog/transcript"
)

func main() {
	// Define flags
	aFlag := flag.String("a", "", "Name of the first character (speaks the opening line)")
	bFlag := flag.String("b", "", "Name of the second character")
	situationFlag := flag.String("situation", "", "Description of the situation the characters are in")
	phraseFlag := flag.String("phrase", "", "Termination phrase; the dialogue ends when a line contains it (case-insensitive)")
	maxTurnsFlag := flag.Int("max-turns", 0, "Maximum number of turns after the opening line")
	llmFlag := flag.String("llm", "", "LLM provider override: 'anthropic', 'openai', 'gemini' or 'bedrock'")
	modelFlag := flag.String("model", "", "Model name override")
	presetFlag := flag.String("preset", "", "Use a predefined session: 'fibonacci'")
	listFlag := flag.String("list", "", "List saved dialogues matching a glob pattern and exit ('*' for all)")
	showFlag := flag.String("show", "", "Render a saved dialogue file and exit")
	jsonFlag := flag.Bool("json", false, "Print the structured JSON record instead of the text rendering")
	noSaveFlag := flag.Bool("no-save", false, "Do not save the dialogue to disk")
	flag.Parse()

	if *listFlag != "" {
		paths, err := transcript.List(*listFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing dialogues: %+v\n", err)
			os.Exit(1)
		}
		for _, p := range paths {
			fmt.Println(p)
		}
		return
	}

	if *showFlag != "" {
		t, err := transcript.Load(*showFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading dialogue: %+v\n", err)
			os.Exit(1)
		}
		fmt.Print(t.RenderText())
		return
	}

	// Load configuration (also pulls in a .env file when present)
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %+v\n", err)
		os.Exit(1)
	}

	provider := cfg.LLMClient
	if *llmFlag != "" {
		provider = *llmFlag
	}
	model := cfg.Model
	if *modelFlag != "" {
		model = *modelFlag
	}

	ctx := context.Background()

	// Initialize the reply-generation backend. Missing credentials degrade to
	// placeholder output instead of aborting.
	client, err := llm.New(ctx, provider, model)
	if err != nil {
		if !errors.Is(err, errors.ErrConfigurationMissing) {
			fmt.Fprintf(os.Stderr, "Error initializing LLM client: %+v\n", err)
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "Warning: no usable LLM credentials found; the dialogue will contain placeholder text only.")
		client = &llm.Unavailable{}
	}

	var driver *dialogue.Driver
	switch *presetFlag {
	case "fibonacci":
		driver = fibonacciPreset(client)
	case "":
		driver, err = driverFromInput(client, cfg, *aFlag, *bFlag, *situationFlag, *phraseFlag, *maxTurnsFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown preset '%s'. Available: 'fibonacci'.\n", *presetFlag)
		os.Exit(1)
	}

	result, err := driver.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating dialogue: %+v\n", err)
		os.Exit(1)
	}

	if *jsonFlag {
		data, err := json.MarshalIndent(result.Transcript, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error serializing dialogue: %+v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
	} else {
		fmt.Print(result.Transcript.RenderText())
	}

	if !*noSaveFlag {
		path, err := result.Transcript.Save()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to save dialogue: %+v\n", err)
		} else {
			fmt.Printf("Dialogue saved to %s\n", path)
		}
	}
}

// driverFromInput assembles a session from flags and config, prompting on
// stdin for any required value that is still missing.
func driverFromInput(client llm.Client, cfg *config.Config, a, b, situation, phrase string, maxTurns int) (*dialogue.Driver, error) {
	reader := bufio.NewReader(os.Stdin)

	if a == "" {
		a = prompt(reader, "Enter name for Character 1: ")
	}
	if b == "" {
		b = prompt(reader, "Enter name for Character 2: ")
	}
	if situation == "" {
		situation = prompt(reader, "Enter the situation: ")
	}
	if a == "" || b == "" || situation == "" {
		return nil, errors.New("character names and a situation are required")
	}

	if maxTurns <= 0 {
		maxTurns = cfg.MaxTurns
	}
	if maxTurns <= 0 {
		maxTurns = 5
	}

	term := dialogue.TurnBound(maxTurns)
	if phrase != "" {
		term = dialogue.ContentMatch(phrase)
	}

	return &dialogue.Driver{
		A:         dialogue.NewParticipant(a, b, situation, client),
		B:         dialogue.NewParticipant(b, a, situation, client),
		Situation: situation,
		Term:      term,
		MaxTurns:  maxTurns,
	}, nil
}

// fibonacciPreset is the predefined teacher/student session.
func fibonacciPreset(client llm.Client) *dialogue.Driver {
	situation := "The teacher is helping the student understand and solve Fibonacci sequence problems."

	teacher := dialogue.Participant{
		Name: "Teacher",
		Persona: "You are a math teacher helping a student understand the Fibonacci sequence. " +
			"Your goal is to guide the student to understand and solve Fibonacci problems. " +
			"Explain concepts clearly and provide examples. Ask questions to check understanding. " +
			"Be patient and encouraging.",
		Client: client,
	}
	student := dialogue.Participant{
		Name: "Student",
		Persona: "You are a student learning about the Fibonacci sequence. " +
			"You're struggling to understand the concept but are eager to learn. " +
			"Ask questions when you don't understand. " +
			"When you finally understand how to solve Fibonacci problems, " +
			"say exactly 'I understand how to solve Fibonacci problems now! Thank you for your help.'",
		Client: client,
	}

	return &dialogue.Driver{
		A:         teacher,
		B:         student,
		Situation: situation,
		Starter:   "Today we're going to learn about the Fibonacci sequence. Have you heard of it before?",
		Term:      dialogue.ContentMatch("I understand how to solve Fibonacci problems now"),
	}
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}
