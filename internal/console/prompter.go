package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"wecare/internal/model"

	"github.com/shopspring/decimal"
)

type lineResult struct {
	text string
	err  error
}

// Prompter asks questions on out and reads answers line by line from in.
// Typed prompts re-ask until the answer is acceptable.
type Prompter struct {
	in    io.Reader
	out   io.Writer
	lines chan lineResult
	once  sync.Once
}

// NewPrompter creates a prompter over in and out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:    in,
		out:   out,
		lines: make(chan lineResult),
	}
}

// Printf writes formatted text to the output.
func (p *Prompter) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// Println writes a line to the output.
func (p *Prompter) Println(args ...any) {
	fmt.Fprintln(p.out, args...)
}

// Line prints prompt and returns the raw answer.
func (p *Prompter) Line(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fmt.Fprint(p.out, prompt)

	p.once.Do(p.scan)

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r, ok := <-p.lines:
		if !ok {
			return "", model.ErrInputClosed
		}
		if r.err != nil {
			return "", model.NewIOError(model.ErrCodeInputClosed, "failed to read input", r.err)
		}
		return strings.TrimRight(r.text, "\r"), nil
	}
}

// scan feeds input lines to the channel so reads can be abandoned when the
// context is cancelled.
func (p *Prompter) scan() {
	go func() {
		defer close(p.lines)

		sc := bufio.NewScanner(p.in)
		for sc.Scan() {
			p.lines <- lineResult{text: sc.Text()}
		}
		if err := sc.Err(); err != nil {
			p.lines <- lineResult{err: err}
		}
	}()
}

// Text asks until a non-empty answer is given.
func (p *Prompter) Text(ctx context.Context, prompt string) (string, error) {
	for {
		raw, err := p.Line(ctx, prompt)
		if err != nil {
			return "", err
		}

		value := strings.TrimSpace(raw)
		if value == "" {
			p.Println("Input cannot be empty")
			continue
		}
		return value, nil
	}
}

// Confirm asks a y/n question. Only "y" in either case counts as yes.
func (p *Prompter) Confirm(ctx context.Context, prompt string) (bool, error) {
	answer, err := p.Text(ctx, prompt)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(answer, "y"), nil
}

// IntAtLeast asks for an integer no smaller than min.
func (p *Prompter) IntAtLeast(ctx context.Context, prompt string, min int) (int, error) {
	return p.readInt(ctx, prompt, min, nil)
}

// IntRange asks for an integer in [min, max].
func (p *Prompter) IntRange(ctx context.Context, prompt string, min, max int) (int, error) {
	return p.readInt(ctx, prompt, min, &max)
}

func (p *Prompter) readInt(ctx context.Context, prompt string, min int, max *int) (int, error) {
	for {
		raw, err := p.Line(ctx, prompt)
		if err != nil {
			return 0, err
		}

		value, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			p.Println("Invalid input. Please provide a valid int")
			continue
		}
		if value < min {
			p.Printf("Value must be at least %d\n", min)
			continue
		}
		if max != nil && value > *max {
			p.Printf("Value must be at most %d\n", *max)
			continue
		}
		return value, nil
	}
}

// Decimal asks for a decimal number no smaller than min.
func (p *Prompter) Decimal(ctx context.Context, prompt string, min decimal.Decimal) (decimal.Decimal, error) {
	for {
		raw, err := p.Line(ctx, prompt)
		if err != nil {
			return decimal.Zero, err
		}

		value, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			p.Println("Invalid input. Please provide a valid float")
			continue
		}
		if value.LessThan(min) {
			p.Printf("Value must be at least %s\n", min.String())
			continue
		}
		return value, nil
	}
}
