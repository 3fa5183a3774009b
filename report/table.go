package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const ruleWidth = 76

func printer() *message.Printer {
	return message.NewPrinter(language.English)
}

// WriteBanner prints the line shown before a run starts.
func WriteBanner(w io.Writer, trials int) error {
	_, err := printer().Fprintf(w, "Simulating %d games for each strategy...\n", trials)
	return err
}

// WriteTable prints one row per strategy in rank order. Low-score-wins rule
// sets are shown in penalty points.
func WriteTable(w io.Writer, r Results) error {
	p := printer()
	avgLabel := "Avg Score"
	if r.LowScoreWins {
		avgLabel = "Avg Points"
	}

	p.Fprintf(w, "\n%-32s %10s %6s %9s %6s %10s\n", "Strategy", avgLabel, "Min", "Gravies", "Max", "Time")
	p.Fprintf(w, "%s\n", strings.Repeat("-", ruleWidth))
	for _, s := range r.Summaries {
		rep := s.Reported()
		if _, err := p.Fprintf(w, "%-32s %10.2f %6d %9d %6d %10s\n",
			rep.Strategy, rep.Avg, rep.Min, rep.Gravies, rep.Max, FormatElapsed(rep.Elapsed)); err != nil {
			return err
		}
	}
	return nil
}

// WriteDetail prints the secondary statistics: spread, busts, stops, turns
// and invalid strategy actions.
func WriteDetail(w io.Writer, r Results) error {
	p := printer()
	p.Fprintf(w, "\n%-32s %8s %8s %8s %8s %8s\n", "Strategy", "StdDev", "Bust %", "Gravy %", "Turns", "Suspect")
	p.Fprintf(w, "%s\n", strings.Repeat("-", ruleWidth))
	for _, s := range r.Summaries {
		if _, err := p.Fprintf(w, "%-32s %8.2f %8.2f %8.3f %8.2f %8d\n",
			s.Strategy, s.StdDev, 100*s.BustRate(), 100*s.GravyRate(), s.AvgTurns, s.Suspect); err != nil {
			return err
		}
	}
	return nil
}

// FormatElapsed formats a batch time with two decimals, switching to the
// coarser minute/hour form for long runs.
func FormatElapsed(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%.2fµs", float64(d)/float64(time.Microsecond))
	case d < time.Second:
		return fmt.Sprintf("%.2fms", float64(d)/float64(time.Millisecond))
	case d < time.Minute:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d < time.Hour:
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", m, s)
	default:
		h := int(d.Hours())
		m := int(d.Minutes()) % 60
		return fmt.Sprintf("%dh%dm", h, m)
	}
}
