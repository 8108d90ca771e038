package driver

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"hop/internal/compiler"
	"hop/internal/diag"
	"hop/internal/diagfmt"
	"hop/internal/source"
	"hop/internal/vm"
)

const (
	DefaultPrompt      = "> "
	ContinuationPrompt = "... "
)

// LineReader is satisfied by *term.Terminal, which the CLI uses for an
// interactive session with history and line editing.
type LineReader interface {
	ReadLine() (string, error)
	SetPrompt(prompt string)
}

// REPLOptions configures REPL.
type REPLOptions struct {
	In     io.Reader  // used when Lines is nil
	Lines  LineReader // takes precedence over In
	Out    io.Writer
	ErrOut io.Writer
	Prompt string
	VM     vm.Options
}

// REPL reads statements line by line and runs each on one VM, so globals
// defined by earlier lines stay visible. A line whose only error sits at
// the end of input is treated as incomplete and continued on the next line;
// an empty line forces it to be reported. REPL returns nil at end of input.
func REPL(ctx context.Context, opts REPLOptions) error {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.ErrOut == nil {
		opts.ErrOut = opts.Out
	}
	if opts.Prompt == "" {
		opts.Prompt = DefaultPrompt
	}
	lines := opts.Lines
	if lines == nil {
		lines = newPlainReader(opts.In, opts.Out)
	}
	vmOpts := opts.VM
	vmOpts.Out = opts.Out
	vmOpts.ErrOut = opts.ErrOut
	machine := vm.New(vmOpts)

	fs := source.NewFileSet()
	entry := 0
	var pending strings.Builder
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if pending.Len() == 0 {
			lines.SetPrompt(opts.Prompt)
		} else {
			lines.SetPrompt(ContinuationPrompt)
		}
		line, err := lines.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		force := pending.Len() > 0 && strings.TrimSpace(line) == ""
		if pending.Len() == 0 && strings.TrimSpace(line) == "" {
			continue
		}
		pending.WriteString(line)
		pending.WriteByte('\n')

		entry++
		file := fs.Get(fs.AddVirtual(fmt.Sprintf("<repl:%d>", entry), []byte(pending.String())))
		bag := diag.NewBag(1)
		fn, err := compiler.Compile(file, compiler.Options{Reporter: diag.BagReporter{Bag: bag}})
		if err != nil {
			if !force && incomplete(bag, file) {
				continue
			}
			pending.Reset()
			if werr := diagfmt.Short(opts.ErrOut, bag.Items(), fs); werr != nil {
				return werr
			}
			continue
		}
		pending.Reset()
		if bag.Len() > 0 {
			_ = diagfmt.Short(opts.ErrOut, bag.Items(), fs)
		}
		// ошибка выполнения уже напечатана, VM сброшена
		machine.Interpret(fn)
	}
}

// incomplete reports whether the only error points past the last token.
func incomplete(bag *diag.Bag, file *source.File) bool {
	for _, d := range bag.Items() {
		if d.Severity != diag.SevError {
			continue
		}
		if d.Code.IsLexical() || !d.Primary.Empty() || int(d.Primary.Start) < len(file.Content) {
			return false
		}
	}
	return bag.HasErrors()
}

// plainReader reads lines from a non-interactive input and echoes the
// prompt to out.
type plainReader struct {
	sc     *bufio.Scanner
	out    io.Writer
	prompt string
}

func newPlainReader(in io.Reader, out io.Writer) *plainReader {
	if in == nil {
		in = strings.NewReader("")
	}
	return &plainReader{sc: bufio.NewScanner(in), out: out}
}

func (r *plainReader) SetPrompt(prompt string) { r.prompt = prompt }

func (r *plainReader) ReadLine() (string, error) {
	if _, err := io.WriteString(r.out, r.prompt); err != nil {
		return "", err
	}
	if r.sc.Scan() {
		return r.sc.Text(), nil
	}
	if err := r.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
