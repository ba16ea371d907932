// Package printer writes styled, human-oriented messages for CLI commands.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/colonyops/todos/internal/core/styles"
)

type ctxKey struct{}

// Printer writes one message per line, prefixed by a styled marker.
type Printer struct {
	out io.Writer
	err io.Writer
}

// New returns a Printer writing informational output to out and errors to errOut.
func New(out, errOut io.Writer) *Printer {
	return &Printer{out: out, err: errOut}
}

// NewContext returns a copy of ctx carrying p.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the Printer stored in ctx, or one bound to stdout and stderr.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok && p != nil {
		return p
	}
	return New(os.Stdout, os.Stderr)
}

// Writer returns the writer used for regular output.
func (p *Printer) Writer() io.Writer {
	return p.out
}

func (p *Printer) line(w io.Writer, marker string, style lipgloss.Style, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if marker == "" {
		_, _ = fmt.Fprintln(w, msg)
		return
	}
	_, _ = fmt.Fprintf(w, "%s %s\n", style.Render(marker), msg)
}

// Printf writes an unstyled line.
func (p *Printer) Printf(format string, args ...any) {
	p.line(p.out, "", lipgloss.Style{}, format, args...)
}

// Infof writes an informational line.
func (p *Printer) Infof(format string, args ...any) {
	p.line(p.out, "•", styles.InfoStyle, format, args...)
}

// Successf writes a success line.
func (p *Printer) Successf(format string, args ...any) {
	p.line(p.out, styles.IconCheck, styles.SuccessStyle, format, args...)
}

// Success writes a success line with a muted detail, such as an id or path.
func (p *Printer) Success(msg, detail string) {
	if detail == "" {
		p.Successf("%s", msg)
		return
	}
	p.Successf("%s %s", msg, styles.DueLabelStyle.Render(detail))
}

// Warnf writes a warning line to the error writer.
func (p *Printer) Warnf(format string, args ...any) {
	p.line(p.err, "!", styles.WarnStyle, format, args...)
}

// Errorf writes an error line to the error writer.
func (p *Printer) Errorf(format string, args ...any) {
	p.line(p.err, "✗", styles.ErrorStyle, format, args...)
}

// Section writes a bold heading.
func (p *Printer) Section(title string) {
	_, _ = fmt.Fprintln(p.out, styles.TitleStyle.Render(title))
}
