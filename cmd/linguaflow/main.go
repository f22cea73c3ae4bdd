// Command linguaflow evaluates arithmetic expressions written with symbols,
// operation words, or natural-language phrases. Run it with expressions as
// arguments for one-shot evaluation, or without arguments for a REPL.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/linguaflow/linguaflow"
	"github.com/linguaflow/linguaflow/gemini"
)

var cli struct {
	Config  string   `short:"c" default:"linguaflow.yaml" help:"Path to the configuration file."`
	Offline bool     `help:"Resolve operation words with the built-in table instead of the Gemini API."`
	Verbose bool     `short:"v" help:"Show tokens, the syntax tree, and evaluation steps."`
	Exprs   []string `arg:"" optional:"" name:"expr" help:"Expressions to evaluate. Without any, an interactive session starts."`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("linguaflow"),
		kong.Description("A natural-language arithmetic interpreter."),
	)

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
	log = log.Level(zerolog.WarnLevel)
	if cli.Verbose {
		log = log.Level(zerolog.DebugLevel)
	}

	cfg, err := linguaflow.LoadConfig(cli.Config)
	if err != nil {
		log.Fatal().Err(err).Msg("loading configuration")
	}
	if cli.Offline {
		cfg.Offline = true
	}
	if cli.Verbose {
		cfg.Verbose = true
	}

	resolver, converter := buildResolver(cfg, log)

	s := session{
		cfg:       cfg,
		resolver:  resolver,
		converter: converter,
		log:       log,
	}
	if len(cli.Exprs) == 0 {
		s.repl()
		return
	}
	for _, src := range cli.Exprs {
		if !s.run(src) {
			kctx.Exit(1)
		}
	}
}

// buildResolver picks the word-resolution backend: the Gemini client when a
// key is available and offline mode is off, the built-in table otherwise.
// Sentence conversion is only available with the Gemini backend.
func buildResolver(cfg *linguaflow.Config, log zerolog.Logger) (linguaflow.Resolver, linguaflow.SentenceConverter) {
	if cfg.Offline {
		return cfg.WordTable(), nil
	}
	key := cfg.APIKey()
	if key == "" {
		log.Warn().Msg("GEMINI_API_KEY not set; falling back to the built-in word table")
		return cfg.WordTable(), nil
	}
	client, err := gemini.New(key,
		gemini.WithModel(cfg.Model),
		gemini.WithTimeout(cfg.Timeout),
		gemini.WithLogger(log),
	)
	if err != nil {
		log.Warn().Err(err).Msg("gemini client unavailable; falling back to the built-in word table")
		return cfg.WordTable(), nil
	}
	return linguaflow.NewCachedResolver(client), client
}

// run evaluates one source text and prints the result or an annotated error.
// It reports whether evaluation succeeded.
func (s *session) run(src string) bool {
	if s.cfg.Verbose {
		s.showPipeline(src)
	}
	v, err := linguaflow.Run("linguaflow", src, s.resolver)
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("%s", linguaflow.Annotate(err)))
		return false
	}
	fmt.Println(color.GreenString("= %s", v))
	return true
}

// showPipeline prints the token stream, the syntax tree, and then re-runs
// evaluation with tracing. Resolution results are cached, so the extra parse
// does not repeat resolver calls against the backend.
func (s *session) showPipeline(src string) {
	heading := color.New(color.FgCyan, color.Bold)

	toks, err := linguaflow.Tokenize("linguaflow", src)
	if err != nil {
		return
	}
	heading.Println("tokens:")
	for _, tok := range toks {
		fmt.Printf("  %v\n", tok)
	}

	e, err := linguaflow.ParseString("linguaflow", src, s.resolver)
	if err != nil {
		return
	}
	heading.Println("syntax tree:")
	fmt.Println(e.Dump())

	heading.Println("evaluation:")
	_, _ = linguaflow.Eval(e, linguaflow.WithTrace(func(depth int, step string) {
		for i := 0; i < depth; i++ {
			fmt.Print("  ")
		}
		fmt.Println("  " + step)
	}))
}
