package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/jessevdk/go-flags"
	"github.com/karupanerura/exprtree/internal/batch"
	"github.com/karupanerura/exprtree/internal/grammar"
	"github.com/karupanerura/exprtree/internal/server"
	"github.com/karupanerura/exprtree/internal/syntax"
	"github.com/mattn/go-isatty"
)

type Option struct {
	Exprs     []string `short:"e" long:"expr" description:"[OPTIONAL] Expression to parse (repeatable)" required:"false"`
	Files     []string `short:"f" long:"file" description:"[OPTIONAL] File with one expression per line (repeatable)" required:"false"`
	Operators string   `short:"o" long:"operators" description:"[OPTIONAL] Operator precedence table (.yaml, .yml or .json)" required:"false"`
	Format    string   `long:"format" description:"[OPTIONAL] Output format" choice:"tree" choice:"json" default:"tree"`
	Parallel  int      `short:"p" long:"parallel" description:"[OPTIONAL] Max concurrent parses, 0 for unlimited" default:"0"`
	Listen    string   `short:"l" long:"listen" description:"[OPTIONAL] Listen host and port to serve the parse API" required:"false"`
	Debug     bool     `long:"debug" description:"[OPTIONAL] Trace the parser to stderr"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opt Option
	parser := flags.NewParser(&opt, flags.Default)
	_, err := parser.ParseArgs(args)
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return 0
		} else {
			parser.WriteHelp(stdout)
			return 1
		}
	}
	if opt.Listen != "" && (len(opt.Exprs) != 0 || len(opt.Files) != 0) {
		parser.WriteHelp(stdout)
		return 1
	}

	loader := func() (*syntax.OperatorTable, error) {
		if opt.Operators == "" {
			return syntax.DefaultOperators(), nil
		}
		return grammar.Load(opt.Operators)
	}

	// server mode
	if opt.Listen != "" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := serve(ctx, opt.Listen, loader); err != nil {
			log.Printf("failed to serve: %v", err)
			return 1
		}
		return 0
	}

	table, err := loader()
	if err != nil {
		log.Printf("failed to load operators: %v", err)
		return 1
	}
	parseOpts := []syntax.Option{syntax.WithOperators(table), syntax.WithDebug(opt.Debug)}

	if len(opt.Exprs) == 0 && len(opt.Files) == 0 && isTerminal(stdin) {
		if err := repl(stdin, stdout, stderr, parseOpts...); err != nil {
			log.Printf("failed to run REPL: %v", err)
			return 1
		}
		return 0
	}

	inputs, err := collectInputs(opt, stdin)
	if err != nil {
		log.Printf("failed to read inputs: %v", err)
		return 1
	}

	outputs, err := batch.Parse(context.Background(), inputs, opt.Parallel, parseOpts...)
	if err != nil {
		log.Printf("failed to parse: %v", err)
		return 1
	}

	switch opt.Format {
	case "json":
		err = dumpJSON(stdout, outputs)
	default:
		err = dumpTrees(stdout, outputs)
	}
	if err != nil {
		log.Printf("failed to write results: %v", err)
		return 1
	}

	failed := batch.Failed(outputs)
	if err := dumpDiagnostics(stderr, failed); err != nil {
		log.Printf("failed to write diagnostics: %v", err)
	}
	if len(failed) != 0 {
		return 1
	}
	return 0
}

func collectInputs(opt Option, stdin io.Reader) ([]batch.Input, error) {
	var inputs []batch.Input
	for i, expr := range opt.Exprs {
		inputs = append(inputs, batch.Input{Name: fmt.Sprintf("expr#%d", i+1), Source: expr})
	}

	for _, filePath := range opt.Files {
		in, err := readFile(filePath)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, in...)
	}

	if len(opt.Exprs) == 0 && len(opt.Files) == 0 {
		return batch.ReadLines("stdin", stdin)
	}
	return inputs, nil
}

func readFile(filePath string) ([]batch.Input, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%q): %w", filePath, err)
	}
	defer f.Close()

	return batch.ReadLines(filePath, f)
}

func serve(ctx context.Context, listen string, loader server.Loader) error {
	handler, err := server.NewHTTPHandler(ctx, loader)
	if err != nil {
		return err
	}

	srv := http.Server{
		Handler: handler,
		Addr:    listen,
	}
	go func() {
		<-ctx.Done()
		if err := srv.Shutdown(context.Background()); err != nil {
			log.Printf("failed to shutdown: %v", err)
		}
	}()

	log.Printf("Listen HTTP on %s", listen)
	if err := srv.ListenAndServe(); errors.Is(err, http.ErrServerClosed) {
		return nil
	} else if err != nil {
		return err
	}
	return nil
}

func repl(stdin io.Reader, stdout, stderr io.Writer, opts ...syntax.Option) error {
	showTree := true
	scanner := bufio.NewScanner(stdin)
	for {
		if _, err := io.WriteString(stdout, "> "); err != nil {
			return fmt.Errorf("io.WriteString: %w", err)
		}
		if !scanner.Scan() {
			break
		}

		line := scanner.Text()
		switch strings.TrimSpace(line) {
		case "":
			continue
		case "#quit":
			return nil
		case "#showTree":
			showTree = !showTree
			msg := "Not showing parse trees."
			if showTree {
				msg = "Showing parse trees."
			}
			if _, err := fmt.Fprintln(stdout, msg); err != nil {
				return fmt.Errorf("fmt.Fprintln: %w", err)
			}
			continue
		}

		result := syntax.Parse(line, opts...)
		if showTree {
			if err := syntax.Fprint(stdout, result.Root); err != nil {
				return fmt.Errorf("syntax.Fprint: %w", err)
			}
		}
		if err := dumpDiagnostics(stderr, []batch.Output{{Result: result}}); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner.Scan: %w", err)
	}
	return nil
}

func dumpTrees(w io.Writer, outputs []batch.Output) error {
	for _, out := range outputs {
		if len(outputs) > 1 {
			if _, err := fmt.Fprintf(w, "%s: %s\n", out.Name, out.Source); err != nil {
				return fmt.Errorf("fmt.Fprintf: %w", err)
			}
		}
		if err := syntax.Fprint(w, out.Result.Root); err != nil {
			return fmt.Errorf("syntax.Fprint: %w", err)
		}
	}
	return nil
}

func dumpDiagnostics(w io.Writer, outputs []batch.Output) error {
	red := color.New(color.FgRed)
	if isTerminal(w) {
		red.EnableColor()
	} else {
		red.DisableColor()
	}

	for _, out := range outputs {
		for _, d := range out.Result.Diagnostics {
			msg := d
			if out.Name != "" {
				msg = out.Name + ": " + d
			}
			if _, err := red.Fprintln(w, msg); err != nil {
				return fmt.Errorf("red.Fprintln: %w", err)
			}
		}
	}
	return nil
}

type jsonOutput struct {
	Name   string         `json:"name"`
	Source string         `json:"source"`
	Result *syntax.Result `json:"result"`
}

func dumpJSON(w io.Writer, outputs []batch.Output) error {
	v := make([]jsonOutput, len(outputs))
	for i, out := range outputs {
		v[i] = jsonOutput{Name: out.Name, Source: out.Source, Result: out.Result}
	}

	opts := []json.EncodeOptionFunc{json.DisableHTMLEscape()}
	if isTerminal(w) {
		opts = append(opts, json.Colorize(json.DefaultColorScheme))
	}

	b, err := json.MarshalIndentWithOption(v, "", "\t", opts...)
	if err != nil {
		return fmt.Errorf("json.MarshalIndentWithOption: %w", err)
	}

	if _, err = w.Write(b); err != nil {
		return fmt.Errorf("w.Write: %w", err)
	}
	if _, err = io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("io.WriteString: %w", err)
	}
	return nil
}

func isTerminal(v any) bool {
	f, ok := v.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
