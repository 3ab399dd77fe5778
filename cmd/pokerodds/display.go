package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/pokerodds/equity"
	"github.com/lox/pokerodds/internal/tui"
	"github.com/lox/pokerodds/poker"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	tieStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	percentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

func displayResult(out io.Writer, cfg equity.Config, res *equity.Result, showCategories bool) {
	if len(cfg.Board) > 0 {
		fmt.Fprintf(out, "%s\n", headerStyle.Render("board"))
		fmt.Fprintf(out, "%s\n\n", tui.FormatCards(cfg.Board))
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		headerStyle.Render("seat"),
		headerStyle.Render("hand"),
		headerStyle.Render("preflop"),
		headerStyle.Render("win"),
		headerStyle.Render("tie"))

	for i, p := range res.Players {
		seat := fmt.Sprintf("%d", i+1)
		if i == 0 {
			seat += " (hero)"
		}
		var hand []poker.Card
		class := "-"
		if i < len(cfg.Hands) {
			hand = cfg.Hands[i][:]
			class = string(poker.CategorizeHoleCards(hand[0], hand[1]))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			seat,
			handStyle.Render(tui.FormatCards(hand)),
			class,
			winStyle.Render(pct(p.Wins, res.Trials)),
			tieStyle.Render(pct(p.Draws, res.Trials)))
	}
	_ = w.Flush()

	lower, upper := res.ConfidenceInterval()
	fmt.Fprintf(out, "\n%s win %.2f%%  draw %.2f%%  loss %.2f%%  equity %.2f%% (95%% CI %.2f-%.2f%%)\n",
		headerStyle.Render("hero"),
		res.WinRate(), res.DrawRate(), res.LossRate(),
		res.Equity()*100, lower*100, upper*100)

	if showCategories {
		fmt.Fprintln(out)
		displayCategories(out, res)
	}

	fmt.Fprintln(out)
	footer := fmt.Sprintf("%d trials in %v (seed %d)", res.Trials, res.Elapsed.Truncate(time.Millisecond), res.Seed)
	if res.Interrupted {
		footer += tui.WarningStyle.Render(fmt.Sprintf(", interrupted after %d of %d", res.Trials, cfg.Trials))
	}
	fmt.Fprintln(out, footer)
}

// displayCategories lists the hero's made hands strongest first
func displayCategories(out io.Writer, res *equity.Result) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", categoryStyle.Render("hand"), categoryStyle.Render("hero"))
	for i := len(poker.Categories) - 1; i >= 0; i-- {
		c := poker.Categories[i]
		n := res.Categories[c]
		if n == 0 {
			fmt.Fprintf(w, "%s\t%s\n", categoryStyle.Render(c.String()), percentStyle.Render("."))
			continue
		}
		fmt.Fprintf(w, "%s\t%s\n", categoryStyle.Render(c.String()), percentStyle.Render(pct(n, res.Trials)))
	}
	_ = w.Flush()
}

func pct(n, total int) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", float64(n)/float64(total)*100)
}
