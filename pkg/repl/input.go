package repl

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/peterh/liner"
)

// LinerSource adapts a liner editor to the rune stream the reader consumes.
// The first line of each top-level form gets the configured prompt; lines
// needed to finish an open form get the continuation prompt.
type LinerSource struct {
	state  *liner.State
	prompt string
	cont   string

	pending string
	buf     []rune
	pos     int
}

// NewLinerSource wraps state. NextForm must be called before each
// top-level read to restore the primary prompt.
func NewLinerSource(state *liner.State, prompt string) *LinerSource {
	return &LinerSource{
		state:   state,
		prompt:  prompt,
		cont:    strings.Repeat(" ", len(prompt)),
		pending: prompt,
	}
}

// NextForm arms the primary prompt for the upcoming form.
func (s *LinerSource) NextForm() {
	s.pending = s.prompt
}

func (s *LinerSource) ReadRune() (rune, int, error) {
	if s.pos >= len(s.buf) {
		line, err := s.state.Prompt(s.pending)
		if err != nil {
			if err == liner.ErrPromptAborted {
				return 0, 0, io.EOF
			}
			return 0, 0, err
		}
		if strings.TrimSpace(line) != "" {
			s.state.AppendHistory(line)
		}
		s.buf = []rune(line + "\n")
		s.pos = 0
		s.pending = s.cont
	}
	r := s.buf[s.pos]
	s.pos++
	return r, utf8.RuneLen(r), nil
}

func (s *LinerSource) UnreadRune() error {
	if s.pos > 0 {
		s.pos--
	}
	return nil
}
