package ui

import (
	"fmt"
	"io"
	"os"
)

// Printer writes UI components to a writer. A plain printer writes bare
// lines with no styling, for pipes and scripts.
type Printer struct {
	out   io.Writer
	width int
	plain bool
}

// NewPrinter creates a new Printer that writes to the given writer.
// If w is nil, os.Stdout is used. Output is plain unless w is a terminal.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	plain := true
	if f, ok := w.(*os.File); ok {
		plain = !IsTerminal(f)
	}
	return &Printer{
		out:   w,
		width: GetTerminalWidth(),
		plain: plain,
	}
}

// SetPlain forces plain or styled output
func (p *Printer) SetPlain(plain bool) *Printer {
	p.plain = plain
	return p
}

// Plain reports whether the printer writes unstyled lines
func (p *Printer) Plain() bool {
	return p.plain
}

// Println writes content with a newline
func (p *Printer) Println(content string) {
	_, _ = fmt.Fprintln(p.out, content)
}

// PrintHeader prints a command header box. Plain printers skip it.
func (p *Printer) PrintHeader(title, command string, params ...Detail) {
	if p.plain {
		return
	}
	p.Println(NewHeader(title, command, params...).SetWidth(p.width).Render())
}

// PrintValue prints a bare value, the primary output of a command
func (p *Printer) PrintValue(value string) {
	p.Println(value)
}

// PrintSuccess prints a success box, or the last detail value when plain
func (p *Printer) PrintSuccess(title string, details []Detail) {
	if p.plain {
		if len(details) > 0 {
			p.Println(details[len(details)-1].Value)
		}
		return
	}
	p.Println(NewSuccessResult(title, details).SetWidth(p.width).Render())
}

// PrintError prints an error box with troubleshooting tips
func (p *Printer) PrintError(title string, err error, troubleshooting []string) {
	if p.plain {
		p.Println(fmt.Sprintf("%s: %v", title, err))
		return
	}
	p.Println(NewFailureResult(title, err, troubleshooting).SetWidth(p.width).Render())
}
