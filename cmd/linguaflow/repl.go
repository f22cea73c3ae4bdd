package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/linguaflow/linguaflow"
)

// session holds everything the interactive loop needs.
type session struct {
	cfg       *linguaflow.Config
	resolver  linguaflow.Resolver
	converter linguaflow.SentenceConverter
	log       zerolog.Logger
}

// repl reads expressions line by line until exit or EOF.
func (s *session) repl() {
	color.New(color.FgCyan, color.Bold).Println("LinguaFlow — natural language arithmetic")
	fmt.Println(`Type an expression, or "help" for commands.`)

	prompt := color.New(color.FgYellow)
	sc := bufio.NewScanner(os.Stdin)
	for {
		prompt.Print("calc > ")
		if !sc.Scan() {
			fmt.Println()
			return
		}
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "":
			continue
		case line == "exit", line == "quit":
			return
		case line == "help":
			fmt.Println(helpText)
		case line == "rules":
			fmt.Println(rulesText)
		case strings.HasPrefix(line, "calc "):
			s.sentence(strings.TrimSpace(strings.TrimPrefix(line, "calc ")))
		default:
			s.run(line)
		}
	}
}

// sentence converts a natural-language question to a symbolic expression and
// evaluates it.
func (s *session) sentence(q string) {
	if s.converter == nil {
		fmt.Fprintln(os.Stderr, color.RedString("sentence conversion needs the Gemini backend; set GEMINI_API_KEY and disable offline mode"))
		return
	}
	expr, err := s.converter.Convert(q)
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("%v", err))
		return
	}
	fmt.Printf("-> %s\n", expr)
	s.run(expr)
}
