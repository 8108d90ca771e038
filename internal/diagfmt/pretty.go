package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"hop/internal/diag"
	"hop/internal/source"
)

type palette struct {
	err, warn, info, code, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Faint),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		note:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// displayPath renders a file path according to mode.
func displayPath(fs *source.FileSet, f *source.File, mode PathMode) string {
	if mode == PathModeRelative {
		return f.FormatPath(mode.String(), fs.BaseDir())
	}
	return f.FormatPath(mode.String(), "")
}

// Pretty writes diagnostics in a compiler-style layout:
//
//	main.hop:2:4: ERROR SYN2001: Thiếu biểu thức.
//	   2 | in )
//	     |    ^
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		if err := prettyOne(w, d, fs, opts, p); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) error {
	f := fs.Get(d.Primary.File)
	if f == nil {
		_, err := fmt.Fprintf(w, "%s %s: %s\n", p.severity(d.Severity).Sprint(d.Severity.String()), p.code.Sprint(d.Code.ID()), d.Message)
		return err
	}
	start, end := fs.Resolve(d.Primary)
	if _, err := fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		displayPath(fs, f, opts.PathMode), start.Line, start.Col,
		p.severity(d.Severity).Sprint(d.Severity.String()),
		p.code.Sprint(d.Code.ID()),
		d.Message,
	); err != nil {
		return err
	}

	first := start.Line
	if ctx := uint32(max(opts.Context, 0)); first > ctx {
		first -= ctx
	} else {
		first = 1
	}
	width := len(fmt.Sprint(start.Line))
	for n := first; n <= start.Line; n++ {
		line := f.GetLine(n)
		if _, err := fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", width+2, n), line); err != nil {
			return err
		}
	}

	line := f.GetLine(start.Line)
	pad, carets := caretLayout(line, start, end)
	if _, err := fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprintf("%*s |", width+2, ""), pad, p.caret.Sprint(carets)); err != nil {
		return err
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			nf := fs.Get(n.Span.File)
			if nf == nil {
				continue
			}
			ns, _ := fs.Resolve(n.Span)
			if _, err := fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", p.note.Sprint("note:"), displayPath(fs, nf, opts.PathMode), ns.Line, ns.Col, n.Msg); err != nil {
				return err
			}
		}
	}
	return nil
}

// caretLayout returns the indentation up to the span start and the marker
// under it, measured in display cells so wide runes line up. Tabs are kept
// so the terminal expands them the same way it did for the source line.
func caretLayout(line string, start, end source.LineCol) (string, string) {
	runes := []rune(line)
	col := min(int(start.Col)-1, len(runes))
	var pad strings.Builder
	for _, r := range runes[:col] {
		if r == '\t' {
			pad.WriteByte('\t')
			continue
		}
		pad.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}

	stop := len(runes)
	if end.Line == start.Line {
		stop = min(int(end.Col)-1, len(runes))
	}
	span := 0
	if stop > col {
		span = runewidth.StringWidth(string(runes[col:stop]))
	}
	if span <= 1 {
		return pad.String(), "^"
	}
	return pad.String(), "^" + strings.Repeat("~", span-1)
}
