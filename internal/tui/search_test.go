package tui

import (
	"context"
	"testing"

	"github.com/collectiontools/stagehand/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchModelProgressUpdates(t *testing.T) {
	m := NewSearchModel(func() {}, 3, 1)

	updated, _ := m.Update(ProgressMsg(0.5))
	sm, ok := updated.(SearchModel)
	require.True(t, ok)
	assert.InDelta(t, 0.5, sm.fraction, 0)
}

func TestSearchModelCancelKeyInvokesCancel(t *testing.T) {
	_, cancel := context.WithCancel(context.Background())
	cancelCalls := 0
	m := NewSearchModel(func() {
		cancelCalls++
		cancel()
	}, 3, 1)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	sm := updated.(SearchModel)
	assert.Equal(t, 1, cancelCalls)
	assert.True(t, sm.cancelled)

	// A second press must not cancel twice.
	updated, _ = sm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	sm = updated.(SearchModel)
	assert.Equal(t, 1, cancelCalls)
	assert.Contains(t, sm.View(), "cancelling")
}

func TestSearchModelDoneQuits(t *testing.T) {
	m := NewSearchModel(func() {}, 1, 1)

	outcome := &model.ReconciliationOutcome{TotalCount: 1}
	updated, cmd := m.Update(DoneMsg{Outcome: outcome})
	sm := updated.(SearchModel)

	require.NotNil(t, cmd)
	got, err := sm.Result()
	assert.NoError(t, err)
	assert.Same(t, outcome, got)
	assert.Empty(t, sm.View())
}
