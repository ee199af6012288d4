package interpreter

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// LineWriter is the output sink. Each call writes one physical line.
type LineWriter interface {
	WriteLine(line string) error
}

// LineReader is the input source. ReadLine blocks until a full line is
// available and returns it without its terminator; io.EOF marks exhaustion.
type LineReader interface {
	ReadLine() (string, error)
}

// StreamConsole adapts a reader/writer pair to line I/O.
type StreamConsole struct {
	in  *bufio.Reader
	out io.Writer
}

// NewStreamConsole wraps r and w. Either may be nil when the program only
// needs one direction.
func NewStreamConsole(r io.Reader, w io.Writer) *StreamConsole {
	c := &StreamConsole{out: w}
	if r != nil {
		c.in = bufio.NewReader(r)
	}
	return c
}

func (c *StreamConsole) WriteLine(line string) error {
	if c.out == nil {
		return nil
	}
	_, err := io.WriteString(c.out, line+"\n")
	return err
}

func (c *StreamConsole) ReadLine() (string, error) {
	if c.in == nil {
		return "", io.EOF
	}
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ScriptedInput replays a fixed list of lines, then reports io.EOF.
type ScriptedInput struct {
	lines []string
	pos   int
}

func NewScriptedInput(lines ...string) *ScriptedInput {
	return &ScriptedInput{lines: append([]string(nil), lines...)}
}

func (s *ScriptedInput) ReadLine() (string, error) {
	if s.pos >= len(s.lines) {
		return "", io.EOF
	}
	line := s.lines[s.pos]
	s.pos++
	return line, nil
}

// Remaining reports how many scripted lines have not been consumed.
func (s *ScriptedInput) Remaining() int {
	return len(s.lines) - s.pos
}
