// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ui provides the interactive terminal views for the paper list and
// the research tabs.
package ui

import (
	"context"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	if w == nil {
		return false
	}
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}

// DetectNoColor reports whether the NO_COLOR environment variable is set.
func DetectNoColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

// Run drives model full-screen on in/out until the user quits or ctx ends.
func Run(ctx context.Context, model tea.Model, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
