// Package console reads operator answers from a line-oriented input.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter writes prompts to out and reads one line of input per answer.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	eof bool
}

// New creates a Prompter over the given streams.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Ask prints prompt and returns the next input line without surrounding
// whitespace. Once input is exhausted every answer is empty.
func (p *Prompter) Ask(prompt string) string {
	fmt.Fprint(p.out, prompt)
	if p.eof {
		fmt.Fprintln(p.out)
		return ""
	}
	line, err := p.in.ReadString('\n')
	if err != nil {
		p.eof = true
		// Keep the transcript readable when input ends without a newline.
		fmt.Fprintln(p.out)
	}
	return strings.TrimSpace(line)
}

// Confirm asks a yes/no question. Only "y" or "yes", in any case, is yes.
func (p *Prompter) Confirm(question string) bool {
	switch strings.ToLower(p.Ask(question + " (y/n): ")) {
	case "y", "yes":
		return true
	}
	return false
}
