// Package editor edits a single tag value in an external text editor.
package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"slices"
	"strings"
)

// DefaultCommand is used when neither the configuration nor the
// environment names an editor.
const DefaultCommand = "vi"

// ErrEditorFailed is returned when the editor cannot be started or exits
// with a non-zero status. The edited value must not be used.
var ErrEditorFailed = errors.New("editor failed")

// Editor runs an interactive editor on a scratch file.
type Editor struct {
	// Command is the editor program followed by its arguments. The scratch
	// file path is appended as the last argument.
	Command []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// TempDir holds scratch files. Empty means os.TempDir.
	TempDir string
}

// New returns an Editor for the command line cmd, attached to the
// process's terminal.
func New(cmd string) *Editor {
	return &Editor{
		Command: strings.Fields(cmd),
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// Command picks the editor command line: configured if set, then $VISUAL,
// then $EDITOR, then DefaultCommand.
func Command(configured string) string {
	for _, c := range []string{configured, os.Getenv("VISUAL"), os.Getenv("EDITOR")} {
		if strings.TrimSpace(c) != "" {
			return c
		}
	}
	return DefaultCommand
}

// Edit writes current to a fresh scratch file, runs the editor on it and
// returns the file contents with one trailing line terminator removed.
// The scratch file is removed before Edit returns.
func (e *Editor) Edit(ctx context.Context, field, current string) (string, error) {
	if len(e.Command) == 0 {
		return "", fmt.Errorf("%w: no editor command", ErrEditorFailed)
	}

	f, err := os.CreateTemp(e.TempDir, "tagedit-"+field+"-*.txt")
	if err != nil {
		return "", fmt.Errorf("create scratch file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(current); err != nil {
		f.Close()
		return "", fmt.Errorf("write scratch file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close scratch file: %w", err)
	}

	args := append(slices.Clone(e.Command[1:]), path)
	cmd := exec.CommandContext(ctx, e.Command[0], args...)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrEditorFailed, e.Command[0], err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read scratch file: %w", err)
	}
	return trimLineEnding(string(data)), nil
}

// trimLineEnding removes exactly one trailing "\n" or "\r\n".
func trimLineEnding(s string) string {
	if t, ok := strings.CutSuffix(s, "\r\n"); ok {
		return t
	}
	return strings.TrimSuffix(s, "\n")
}
