// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestTargetsFromKeys(t *testing.T) {
	keys := []string{
		"meta/master.json",
		"meta/diffs.json",
		"meta/local-snapdiff.json",
		"meta/feature-x.json",
		"meta/nested/deep.json",
		"meta/readme.txt",
		"images/abc.png",
	}
	assert.Equal(t, []string{"feature-x", "master"}, targetsFromKeys(keys))
	assert.Empty(t, targetsFromKeys(nil))
}

func TestFilterTargets(t *testing.T) {
	targets := []string{"feature-login", "feature-logout", "master"}

	assert.Equal(t, targets, filterTargets(targets, ""))
	assert.Equal(t, []string{"feature-login", "feature-logout"}, filterTargets(targets, "FEAT"))
	assert.Equal(t, []string{"feature-logout"}, filterTargets(targets, "feat out"))
	assert.Empty(t, filterTargets(targets, "zzz"))
}

func update(m pickModel, msgs ...tea.Msg) pickModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(pickModel)
	}
	return m
}

func TestPickModel(t *testing.T) {
	m := newPickModel([]string{"alpha", "beta", "gamma"})

	m = update(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.cursor)

	m = update(m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, m.cursor)
	assert.Contains(t, m.View(), "> beta")

	m = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "beta", m.choice)
}

func TestPickModelFilter(t *testing.T) {
	m := newPickModel([]string{"alpha", "beta", "gamma"})

	m = update(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("al")})
	assert.Equal(t, []string{"alpha"}, m.matches)
	assert.Equal(t, 0, m.cursor)

	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Empty(t, m.matches)
	assert.Contains(t, m.View(), "(no match)")

	m = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Empty(t, m.choice)
}

func TestPickModelCancel(t *testing.T) {
	m := newPickModel([]string{"alpha"})
	m = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, m.choice)
}
