// Package repl runs the line-oriented question loop over plain readers and writers.
package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	// Banner is printed once before the first prompt.
	Banner = "CDP Support Chatbot initialized. Type 'quit' to exit."
	// Prompt precedes every question.
	Prompt = "\nHow can I help you? "
	// QuitCommand ends the loop, compared case-insensitively.
	QuitCommand = "quit"
)

// State is the loop state.
type State int

const (
	AwaitingInput State = iota
	Terminated
)

func (s State) String() string {
	switch s {
	case AwaitingInput:
		return "awaiting_input"
	case Terminated:
		return "terminated"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Responder answers a single question.
type Responder interface {
	Respond(question string) (string, error)
}

// Loop reads questions line by line and prints the responses.
type Loop struct {
	responder Responder
	in        *bufio.Reader
	out       io.Writer
	errOut    io.Writer
	state     State
}

// New creates a loop reading from in and writing responses to out and
// retrieval errors to errOut.
func New(responder Responder, in io.Reader, out, errOut io.Writer) *Loop {
	return &Loop{responder: responder, in: bufio.NewReader(in), out: out, errOut: errOut, state: AwaitingInput}
}

// State returns the current loop state.
func (l *Loop) State() State { return l.state }

// Run prints the banner and handles questions until quit or end of input.
func (l *Loop) Run() error {
	if _, err := fmt.Fprintln(l.out, Banner); err != nil {
		return err
	}
	for l.state == AwaitingInput {
		if err := l.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Step prompts for and handles one line.
func (l *Loop) Step() error {
	if l.state == Terminated {
		return nil
	}
	if _, err := fmt.Fprint(l.out, Prompt); err != nil {
		return err
	}
	// lines have no length limit; a final line without newline still counts
	line, err := l.in.ReadString('\n')
	switch {
	case errors.Is(err, io.EOF) && line == "":
		l.state = Terminated
		return nil
	case err != nil && !errors.Is(err, io.EOF):
		l.state = Terminated
		return err
	}
	question := strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
	if strings.EqualFold(question, QuitCommand) {
		l.state = Terminated
		return nil
	}
	response, err := l.responder.Respond(question)
	if err != nil {
		_, werr := fmt.Fprintf(l.errOut, "error: %v\n", err)
		return werr
	}
	_, err = fmt.Fprint(l.out, "\n"+response+"\n")
	return err
}
