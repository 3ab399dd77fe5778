package equity

import (
	"math"
	"time"

	"github.com/lox/pokerodds/poker"
)

// PlayerStats counts showdowns a seat won outright or split.
type PlayerStats struct {
	Wins  int
	Draws int
}

// Result aggregates a simulation from the hero's point of view.
type Result struct {
	Trials int
	Wins   int
	Draws  int

	// Players is indexed by seat; seat 0 is the hero.
	Players []PlayerStats
	// Categories counts the hero's made hand per category.
	Categories [poker.NumCategories]int

	Seed        int64
	Elapsed     time.Duration
	Interrupted bool
}

func newResult(players int, seed int64) *Result {
	return &Result{Players: make([]PlayerStats, players), Seed: seed}
}

func (r *Result) record(players []poker.Player, s poker.Showdown) {
	r.Trials++
	switch s.Outcome {
	case poker.Win:
		r.Wins++
	case poker.Draw:
		r.Draws++
	}
	r.Categories[players[s.Hero].Best.Category]++

	if len(s.Winners) == 1 {
		r.Players[s.Winners[0]].Wins++
		return
	}
	for _, i := range s.Winners {
		r.Players[i].Draws++
	}
}

func (r *Result) merge(o *Result) {
	r.Trials += o.Trials
	r.Wins += o.Wins
	r.Draws += o.Draws
	for i := range o.Players {
		r.Players[i].Wins += o.Players[i].Wins
		r.Players[i].Draws += o.Players[i].Draws
	}
	for c, n := range o.Categories {
		r.Categories[c] += n
	}
}

// Losses is the count of trials the hero neither won nor split.
func (r *Result) Losses() int {
	return r.Trials - r.Wins - r.Draws
}

// WinRate returns the hero's win rate as a percentage.
func (r *Result) WinRate() float64 {
	return percent(r.Wins, r.Trials)
}

// DrawRate returns the hero's draw rate as a percentage.
func (r *Result) DrawRate() float64 {
	return percent(r.Draws, r.Trials)
}

// LossRate returns the hero's loss rate as a percentage, computed from the
// loss count rather than by subtracting the other rates.
func (r *Result) LossRate() float64 {
	return percent(r.Losses(), r.Trials)
}

// CategoryRate returns how often the hero made category c, as a percentage.
func (r *Result) CategoryRate(c poker.Category) float64 {
	return percent(r.Categories[c], r.Trials)
}

// Equity returns the hero's share of the pot (0.0 to 1.0). Draws count
// as half; multiway splits are not divided further.
func (r *Result) Equity() float64 {
	if r.Trials == 0 {
		return 0.0
	}
	return (float64(r.Wins) + float64(r.Draws)*0.5) / float64(r.Trials)
}

// ConfidenceInterval returns the 95% confidence interval for equity
func (r *Result) ConfidenceInterval() (lower, upper float64) {
	n := float64(r.Trials)
	if n == 0 {
		return 0.0, 0.0
	}
	equity := r.Equity()

	// standard error of a binomial proportion
	se := math.Sqrt((equity * (1.0 - equity)) / n)
	margin := 1.96 * se

	return math.Max(0.0, equity-margin), math.Min(1.0, equity+margin)
}

// TrialsPerSecond returns the simulation throughput.
func (r *Result) TrialsPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Trials) / r.Elapsed.Seconds()
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}
