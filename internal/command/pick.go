// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/snapdiff/snapdiff/internal/bucket"
	"github.com/snapdiff/snapdiff/internal/layout"
)

// ErrNoTarget is returned when the picker is left without a choice.
var ErrNoTarget = errors.New("no target selected")

// pickTarget lists the targets pushed to bucketName and lets the user choose
// one. It needs an interactive terminal.
func pickTarget(ctx context.Context, bp bucket.Provider, bucketName string) (string, error) {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return "", fmt.Errorf("--pick requires an interactive terminal")
	}

	keys, err := bp.List(ctx, bucketName, layout.MetaDir+"/")
	if err != nil {
		return "", fmt.Errorf("failed to list targets: %w", err)
	}
	targets := targetsFromKeys(keys)
	if len(targets) == 0 {
		return "", fmt.Errorf("no targets found in %s", bp.BucketURL(bucketName))
	}

	final, err := tea.NewProgram(newPickModel(targets), tea.WithContext(ctx)).Run()
	if err != nil {
		return "", err
	}
	if choice := final.(pickModel).choice; choice != "" {
		return choice, nil
	}
	return "", ErrNoTarget
}

// targetsFromKeys turns meta/ keys into target names, dropping the store's
// own files.
func targetsFromKeys(keys []string) []string {
	var targets []string
	for _, k := range keys {
		dir, file := path.Split(k)
		if dir != layout.MetaDir+"/" || !strings.HasSuffix(file, ".json") {
			continue
		}
		name := strings.TrimSuffix(file, ".json")
		if name == layout.LocalManifest || name == layout.DiffResult || name == "" {
			continue
		}
		targets = append(targets, name)
	}
	sort.Strings(targets)
	return targets
}

// pickModel is a filterable list of targets.
type pickModel struct {
	filter  textinput.Model
	targets []string
	matches []string
	cursor  int
	choice  string
}

func newPickModel(targets []string) pickModel {
	ti := textinput.New()
	ti.Placeholder = "filter"
	ti.Prompt = "target: "
	ti.CharLimit = 256
	ti.Focus()

	return pickModel{
		filter:  ti,
		targets: targets,
		matches: targets,
	}
}

func (m pickModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m pickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			if len(m.matches) > 0 {
				m.choice = m.matches[m.cursor]
			}
			return m, tea.Quit
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.matches)-1 {
				m.cursor++
			}
			return m, nil
		case "ctrl+c", "esc":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.matches = filterTargets(m.targets, m.filter.Value())
	if m.cursor >= len(m.matches) {
		m.cursor = max(len(m.matches)-1, 0)
	}
	return m, cmd
}

func (m pickModel) View() string {
	selected := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5F87"))

	lines := []string{m.filter.View()}
	for i, t := range m.matches {
		if i == m.cursor {
			lines = append(lines, selected.Render("> "+t))
		} else {
			lines = append(lines, "  "+t)
		}
	}
	if len(m.matches) == 0 {
		lines = append(lines, "  (no match)")
	}
	lines = append(lines, "", "↑/↓ move, enter select, esc cancel")

	return strings.Join(lines, "\n")
}

// filterTargets keeps the targets containing every space separated word of
// query, ignoring case.
func filterTargets(targets []string, query string) []string {
	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		return targets
	}

	var out []string
	for _, t := range targets {
		lt := strings.ToLower(t)
		match := true
		for _, w := range words {
			if !strings.Contains(lt, w) {
				match = false
				break
			}
		}
		if match {
			out = append(out, t)
		}
	}
	return out
}
