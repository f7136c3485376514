// Command analyze summarizes the CSV files produced by cmd/simulate. It
// groups scores by strategy and prints a per-strategy table with mean,
// median, percentiles, standard deviation, and shut-out rate.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"
)

// StrategySummary holds the score distribution numbers for one strategy.
type StrategySummary struct {
	Strategy string
	Games    int
	Mean     float64
	Median   float64
	P10      float64
	P25      float64
	P75      float64
	P90      float64
	StdDev   float64
	Shutouts int
}

func main() {
	in := flag.String("in", "simulation_results.csv", "simulation results CSV (run_id,strategy,score)")
	flag.Parse()

	path := *in
	if flag.NArg() > 0 {
		path = flag.Arg(0)
	}

	byStrategy, err := readResults(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "analyze: %v\n", err)
		os.Exit(1)
	}

	summaries := make([]StrategySummary, 0, len(byStrategy))
	for strategy, scores := range byStrategy {
		summaries = append(summaries, summarize(strategy, scores))
	}

	// Best (lowest mean score) first
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Mean != summaries[j].Mean {
			return summaries[i].Mean < summaries[j].Mean
		}
		return summaries[i].Strategy < summaries[j].Strategy
	})

	printTable(os.Stdout, summaries)
}

// readResults parses a simulation CSV into scores grouped by strategy.
// Expected columns: run_id, strategy, score. A header row is skipped.
func readResults(path string) (map[string][]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open results file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	byStrategy := make(map[string][]int)
	for i, row := range rows {
		if len(row) < 3 {
			return nil, fmt.Errorf("%s line %d: expected 3 columns, got %d", path, i+1, len(row))
		}
		if i == 0 && row[2] == "score" {
			continue
		}
		score, err := strconv.Atoi(row[2])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: bad score %q", path, i+1, row[2])
		}
		byStrategy[row[1]] = append(byStrategy[row[1]], score)
	}

	if len(byStrategy) == 0 {
		return nil, fmt.Errorf("%s contains no result rows", path)
	}
	return byStrategy, nil
}

func summarize(strategy string, scores []int) StrategySummary {
	sorted := append([]int(nil), scores...)
	sort.Ints(sorted)

	sum := 0
	shutouts := 0
	for _, s := range sorted {
		sum += s
		if s == 0 {
			shutouts++
		}
	}
	mean := float64(sum) / float64(len(sorted))

	variance := 0.0
	for _, s := range sorted {
		d := float64(s) - mean
		variance += d * d
	}
	variance /= float64(len(sorted))

	return StrategySummary{
		Strategy: strategy,
		Games:    len(sorted),
		Mean:     mean,
		Median:   percentile(sorted, 0.5),
		P10:      percentile(sorted, 0.1),
		P25:      percentile(sorted, 0.25),
		P75:      percentile(sorted, 0.75),
		P90:      percentile(sorted, 0.9),
		StdDev:   math.Sqrt(variance),
		Shutouts: shutouts,
	}
}

// percentile interpolates linearly between the two nearest ranks of a
// sorted slice.
func percentile(sorted []int, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return float64(sorted[0])
	}
	rank := p * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return float64(sorted[lo])
	}
	frac := rank - float64(lo)
	return float64(sorted[lo])*(1-frac) + float64(sorted[hi])*frac
}

func printTable(w *os.File, summaries []StrategySummary) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "strategy\tgames\tmean\tmedian\tp10\tp25\tp75\tp90\tstd\tshutouts\tshut%")
	for _, s := range summaries {
		shutRate := float64(s.Shutouts) / float64(s.Games) * 100
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\t%.2f\t%d\t%.1f%%\n",
			s.Strategy, s.Games, s.Mean, s.Median, s.P10, s.P25, s.P75, s.P90,
			s.StdDev, s.Shutouts, shutRate)
	}
	tw.Flush()
}
