package equity

import (
	"testing"

	"github.com/lox/pokerodds/poker"
	"github.com/stretchr/testify/assert"
)

func TestResultRates(t *testing.T) {
	r := Result{Trials: 1000, Wins: 600, Draws: 100}

	assert.Equal(t, 300, r.Losses())
	assert.InDelta(t, 60.0, r.WinRate(), 1e-9)
	assert.InDelta(t, 10.0, r.DrawRate(), 1e-9)
	assert.InDelta(t, 30.0, r.LossRate(), 1e-9)
	assert.InDelta(t, 0.65, r.Equity(), 1e-9)
}

func TestResultEmpty(t *testing.T) {
	var r Result
	assert.Zero(t, r.WinRate())
	assert.Zero(t, r.LossRate())
	assert.Zero(t, r.Equity())
	lower, upper := r.ConfidenceInterval()
	assert.Zero(t, lower)
	assert.Zero(t, upper)
}

func TestConfidenceInterval(t *testing.T) {
	r := Result{Trials: 10000, Wins: 5000}
	lower, upper := r.ConfidenceInterval()

	assert.Less(t, lower, r.Equity())
	assert.Greater(t, upper, r.Equity())
	assert.InDelta(t, 0.0098, upper-r.Equity(), 0.0001)

	sure := Result{Trials: 100, Wins: 100}
	lower, upper = sure.ConfidenceInterval()
	assert.Equal(t, 1.0, lower)
	assert.Equal(t, 1.0, upper)
}

func TestRecordAndMerge(t *testing.T) {
	players := make([]poker.Player, 3)
	players[0].Hero = true
	players[0].Best.Category = poker.Flush

	a := newResult(3, 1)
	a.record(players, poker.Showdown{Outcome: poker.Win, Winners: []int{0}})
	a.record(players, poker.Showdown{Outcome: poker.Draw, Winners: []int{0, 2}})

	b := newResult(3, 1)
	b.record(players, poker.Showdown{Outcome: poker.Loss, Winners: []int{1}})

	a.merge(b)
	assert.Equal(t, 3, a.Trials)
	assert.Equal(t, 1, a.Wins)
	assert.Equal(t, 1, a.Draws)
	assert.Equal(t, 1, a.Losses())
	assert.Equal(t, 3, a.Categories[poker.Flush])
	assert.Equal(t, []PlayerStats{{Wins: 1, Draws: 1}, {Wins: 1}, {Draws: 1}}, a.Players)
	assert.InDelta(t, 100.0, a.CategoryRate(poker.Flush), 1e-9)
}
