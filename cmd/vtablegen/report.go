package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/joltbridge/errors"
)

var (
	posStyle = lipgloss.NewStyle().
			Bold(true)

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// report prints err one diagnostic per line, styled when color is set.
func report(w io.Writer, err error, color bool) {
	style := func(s lipgloss.Style, text string) string {
		if !color {
			return text
		}
		return s.Render(text)
	}

	var list errors.List
	if !errors.As(err, &list) {
		var e *errors.Error
		if !errors.As(err, &e) {
			fmt.Fprintf(w, "Error: %v\n", err)
			return
		}
		list = errors.List{e}
	}

	for _, e := range list {
		if e.Pos != "" {
			fmt.Fprintf(w, "%s: %s: %s\n", style(posStyle, e.Pos), style(kindStyle, string(e.Kind)), message(e))
			continue
		}
		fmt.Fprintf(w, "%s: %s\n", style(kindStyle, string(e.Kind)), message(e))
	}
	if len(list) > 1 {
		fmt.Fprintln(w, style(countStyle, fmt.Sprintf("%d errors", len(list))))
	}
}

func message(e *errors.Error) string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Error()
}
