package equity

import (
	"context"
	"io"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/pokerodds/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hand(s string) [2]poker.Card {
	cards := poker.MustParseCards(s)
	return [2]poker.Card{cards[0], cards[1]}
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func TestValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		cfg  Config
		err  error
	}{
		{"one player", Config{Players: 1, Trials: 1}, ErrInvalidPlayers},
		{"too many players", Config{Players: MaxPlayers + 1, Trials: 1}, ErrInvalidPlayers},
		{"too many hands", Config{Players: 2, Trials: 1, Hands: [][2]poker.Card{hand("AsAd"), hand("KsKd"), hand("QsQd")}}, ErrTooManyHands},
		{"too many board cards", Config{Players: 2, Trials: 1, Board: poker.MustParseCards("2c3c4c5c6c7c")}, ErrTooManyBoardCards},
		{"zero trials", Config{Players: 2}, ErrInvalidTrials},
		{"negative trials", Config{Players: 2, Trials: -5}, ErrInvalidTrials},
		{"duplicate in hands", Config{Players: 2, Trials: 1, Hands: [][2]poker.Card{hand("AsAd"), hand("AsKd")}}, ErrDuplicateCard},
		{"duplicate hand and board", Config{Players: 2, Trials: 1, Hands: [][2]poker.Card{hand("AsAd")}, Board: poker.MustParseCards("2c Ad")}, ErrDuplicateCard},
		{"invalid card", Config{Players: 2, Trials: 1, Board: []poker.Card{{Rank: 13}}}, ErrInvalidCard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, tt.cfg.Validate(), tt.err)

			res, err := Run(context.Background(), tt.cfg)
			assert.ErrorIs(t, err, tt.err)
			assert.Nil(t, res)
		})
	}

	assert.NoError(t, Config{Players: MaxPlayers, Trials: 1}.Validate())
}

func TestPocketAcesHeadsUp(t *testing.T) {
	if testing.Short() {
		t.Skip("long simulation")
	}
	t.Parallel()

	res, err := Run(context.Background(), Config{
		Players: 2,
		Hands:   [][2]poker.Card{hand("Ac Ad")},
		Trials:  100000,
		Workers: 4,
		Seed:    42,
		Logger:  quietLogger(),
	})
	require.NoError(t, err)

	assert.Equal(t, 100000, res.Trials)
	assert.False(t, res.Interrupted)
	assert.InDelta(t, 85.0, res.WinRate(), 2.0)
	assert.Equal(t, res.Trials, res.Wins+res.Draws+res.Losses())
	assert.InDelta(t, 100.0, res.WinRate()+res.DrawRate()+res.LossRate(), 1e-9)

	// aces never finish worse than a pair
	assert.Zero(t, res.Categories[poker.HighCard])
	assert.Equal(t, res.Wins, res.Players[0].Wins)
	assert.Equal(t, res.Draws, res.Players[0].Draws)
	assert.Equal(t, res.Losses(), res.Players[1].Wins)
}

func TestRunIsReproducible(t *testing.T) {
	t.Parallel()
	cfg := Config{
		Players: 4,
		Hands:   [][2]poker.Card{hand("Jh Ts")},
		Board:   poker.MustParseCards("9c 8d 2s"),
		Trials:  5000,
		Workers: 3,
		Seed:    7,
		Logger:  quietLogger(),
	}

	a, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	b, err := Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, a.Wins, b.Wins)
	assert.Equal(t, a.Draws, b.Draws)
	assert.Equal(t, a.Categories, b.Categories)
	assert.Equal(t, a.Players, b.Players)
	assert.Equal(t, int64(7), a.Seed)
}

func TestFixedShowdown(t *testing.T) {
	t.Parallel()

	t.Run("quads always win", func(t *testing.T) {
		t.Parallel()
		res, err := Run(context.Background(), Config{
			Players: 2,
			Hands:   [][2]poker.Card{hand("Kh Ks"), hand("2h 4d")},
			Board:   poker.MustParseCards("Kd Kc 3h As 3c"),
			Trials:  200,
			Logger:  quietLogger(),
		})
		require.NoError(t, err)
		assert.Equal(t, 200, res.Wins)
		assert.Equal(t, 200, res.Categories[poker.FourOfAKind])
		assert.InDelta(t, 100.0, res.WinRate(), 1e-9)
		assert.Zero(t, res.LossRate())
		assert.InDelta(t, 1.0, res.Equity(), 1e-9)
	})

	t.Run("board plays for everyone", func(t *testing.T) {
		t.Parallel()
		res, err := Run(context.Background(), Config{
			Players: 3,
			Board:   poker.MustParseCards("Ts Js Qs Ks As"),
			Trials:  300,
			Logger:  quietLogger(),
		})
		require.NoError(t, err)
		assert.Equal(t, 300, res.Draws)
		assert.InDelta(t, 0.5, res.Equity(), 1e-9)
		for _, p := range res.Players {
			assert.Equal(t, PlayerStats{Draws: 300}, p)
		}
	})
}

func TestRunCallbacks(t *testing.T) {
	t.Parallel()
	const trials = 1000

	var (
		calls    atomic.Int64
		lastDone int
		total    int
	)
	res, err := Run(context.Background(), Config{
		Players: 3,
		Hands:   [][2]poker.Card{hand("Ah Kh")},
		Trials:  trials,
		Workers: 1,
		Seed:    1,
		Logger:  quietLogger(),
		OnTrial: func(tr Trial) {
			calls.Add(1)
			assert.Len(t, tr.Board, poker.HandSize)
			assert.Len(t, tr.Players, 3)
			assert.Equal(t, hand("Ah Kh"), tr.Players[0].Hole)

			var dealt []poker.Card
			dealt = append(dealt, tr.Board...)
			for _, p := range tr.Players {
				dealt = append(dealt, p.Hole[0], p.Hole[1])
			}
			assert.Equal(t, len(dealt), poker.NewCardSet(dealt...).Len(), "card dealt twice")
		},
		OnProgress: func(done, n int) {
			lastDone, total = done, n
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(trials), calls.Load())
	assert.Equal(t, trials, res.Trials)
	assert.Equal(t, trials, lastDone)
	assert.Equal(t, trials, total)
}

func TestRunCancellation(t *testing.T) {
	t.Parallel()

	t.Run("cancelled before start", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		res, err := Run(ctx, Config{Players: 2, Trials: 1000, Logger: quietLogger()})
		require.NoError(t, err)
		assert.True(t, res.Interrupted)
		assert.Zero(t, res.Trials)
		assert.Zero(t, res.WinRate())
	})

	t.Run("cancelled mid run keeps partial counts", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		res, err := Run(ctx, Config{
			Players: 2,
			Trials:  100000,
			Workers: 1,
			Logger:  quietLogger(),
			OnTrial: func(tr Trial) {
				if tr.N == 1000 {
					cancel()
				}
			},
		})
		require.NoError(t, err)
		assert.True(t, res.Interrupted)
		assert.GreaterOrEqual(t, res.Trials, 1000)
		assert.Less(t, res.Trials, 1000+cancelCheckEvery)
		assert.Equal(t, res.Trials, res.Wins+res.Draws+res.Losses())
	})
}

func TestRunUsesClock(t *testing.T) {
	t.Parallel()
	mClock := quartz.NewMock(t)

	res, err := Run(context.Background(), Config{
		Players: 2,
		Trials:  10,
		Clock:   mClock,
		Logger:  quietLogger(),
	})
	require.NoError(t, err)
	assert.Zero(t, res.Elapsed)
	assert.Zero(t, res.TrialsPerSecond())
	assert.Equal(t, mClock.Now().UnixNano(), res.Seed)
}

func BenchmarkRunHeadsUp(b *testing.B) {
	cfg := Config{
		Players: 2,
		Hands:   [][2]poker.Card{hand("Ac Ad")},
		Trials:  10000,
		Seed:    1,
		Logger:  quietLogger(),
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = Run(context.Background(), cfg)
	}
}
