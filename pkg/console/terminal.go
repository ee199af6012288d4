// Package console provides an interactive line source for program input.
package console

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/peterh/liner"
)

// ErrInterrupted is returned when the user aborts a read with Ctrl+C.
var ErrInterrupted = errors.New("input interrupted")

// Terminal reads program input with line editing and optional persistent
// history. It satisfies interpreter.LineReader.
type Terminal struct {
	state       *liner.State
	historyPath string
}

// Open takes over the terminal. historyPath may be empty to disable history.
func Open(historyPath string) (*Terminal, error) {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	t := &Terminal{state: state, historyPath: historyPath}
	if historyPath == "" {
		return t, nil
	}
	f, err := os.Open(historyPath)
	switch {
	case err == nil:
		defer f.Close()
		if _, err := state.ReadHistory(f); err != nil {
			state.Close()
			return nil, fmt.Errorf("read history %s: %w", historyPath, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		state.Close()
		return nil, fmt.Errorf("open history %s: %w", historyPath, err)
	}
	return t, nil
}

// ReadLine blocks for one line of input. Ctrl+D surfaces as io.EOF.
func (t *Terminal) ReadLine() (string, error) {
	line, err := t.state.Prompt("")
	if err != nil {
		return "", promptError(err)
	}
	if strings.TrimSpace(line) != "" {
		t.state.AppendHistory(line)
	}
	return line, nil
}

func promptError(err error) error {
	if errors.Is(err, liner.ErrPromptAborted) {
		return ErrInterrupted
	}
	return err
}

// Close saves history and restores the terminal.
func (t *Terminal) Close() error {
	var saveErr error
	if t.historyPath != "" {
		if f, err := os.Create(t.historyPath); err == nil {
			_, saveErr = t.state.WriteHistory(f)
			if cerr := f.Close(); saveErr == nil {
				saveErr = cerr
			}
		} else {
			saveErr = err
		}
	}
	if err := t.state.Close(); err != nil {
		return err
	}
	if saveErr != nil {
		return fmt.Errorf("save history %s: %w", t.historyPath, saveErr)
	}
	return nil
}
