package mix_test

import (
	"testing"
	"time"

	"github.com/joaomidowz/vargas-mix/mix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyMatchOutcomeWin(t *testing.T) {
	p := newPlayer("a", "Ana")
	p.CurrentStreak = 2
	at := time.Now()

	mix.ApplyMatchOutcome(&p, true, false, at)

	assert.Equal(t, 1, p.MatchesPlayed)
	assert.Equal(t, 1, p.Wins)
	assert.Equal(t, 0, p.Losses)
	assert.Equal(t, 3, p.CurrentStreak)
	require.NotNil(t, p.LastPlayed)
	assert.Equal(t, at, *p.LastPlayed)
}

func TestApplyMatchOutcomeLossResetsStreak(t *testing.T) {
	p := newPlayer("a", "Ana")
	p.CurrentStreak = 5

	mix.ApplyMatchOutcome(&p, false, true, time.Now())

	assert.Equal(t, 1, p.Losses)
	assert.Equal(t, 0, p.Wins)
	assert.Equal(t, 0, p.CurrentStreak)
}

func TestApplyMatchOutcomeDrawKeepsStreak(t *testing.T) {
	p := newPlayer("a", "Ana")
	p.CurrentStreak = 4

	mix.ApplyMatchOutcome(&p, false, false, time.Now())

	assert.Equal(t, 1, p.MatchesPlayed)
	assert.Equal(t, 0, p.Wins)
	assert.Equal(t, 0, p.Losses)
	assert.Equal(t, 4, p.CurrentStreak)
	assert.NotNil(t, p.LastPlayed)
}
