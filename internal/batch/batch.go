package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/karupanerura/exprtree/internal/syntax"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Input is one source to parse. Name identifies it in output, e.g. "file.txt:3".
type Input struct {
	Name   string
	Source string
}

type Output struct {
	Input
	Result *syntax.Result
}

// Parse parses every input concurrently, at most limit at a time (no limit if limit <= 0).
// Outputs are in input order. Parsing stops early only if ctx is canceled.
func Parse(ctx context.Context, inputs []Input, limit int, opts ...syntax.Option) ([]Output, error) {
	outputs := make([]Output, len(inputs))

	eg, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		eg.SetLimit(limit)
	}
	for i, in := range inputs {
		i := i
		in := in
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outputs[i] = Output{Input: in, Result: syntax.Parse(in.Source, opts...)}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return outputs, nil
}

// ReadLines splits r into inputs, one per non-blank line, named "<name>:<line>".
func ReadLines(name string, r io.Reader) ([]Input, error) {
	var inputs []Input
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		if strings.TrimSpace(scanner.Text()) == "" {
			continue
		}
		inputs = append(inputs, Input{
			Name:   fmt.Sprintf("%s:%d", name, line),
			Source: scanner.Text(),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner.Scan: %w", err)
	}
	return inputs, nil
}

// Failed returns the outputs that have diagnostics.
func Failed(outputs []Output) []Output {
	return lo.Filter(outputs, func(out Output, _ int) bool {
		return !out.Result.OK()
	})
}
