// Command simulate plays batches of Shut the Box games offline and reports
// how the built-in policies compare. It loads a board config from the configs
// directory, runs N episodes per policy, writes one CSV row per game, and
// prints a per-policy summary (mean, median, percentiles, shut-out rate).
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/shutbox/shutbox/game/config"
	"github.com/shutbox/shutbox/game/engine"
	"github.com/shutbox/shutbox/game/policy"
)

// episodeResult is one finished game.
type episodeResult struct {
	RunID    int
	Strategy string
	Score    int
}

func main() {
	cmd := &cli.Command{
		Name:  "simulate",
		Usage: "run batches of Shut the Box games and compare move policies",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "episodes",
				Value: 1000,
				Usage: "games to play per policy",
			},
			&cli.StringFlag{
				Name:  "config",
				Value: "classic",
				Usage: "board configuration name",
			},
			&cli.StringFlag{
				Name:  "config-dir",
				Value: "configs",
				Usage: "directory containing board configurations",
			},
			&cli.StringFlag{
				Name:  "policies",
				Value: "greedy,fewest,human,random",
				Usage: "comma-separated policy names to run",
			},
			&cli.IntFlag{
				Name:  "seed",
				Value: 0,
				Usage: "dice seed for reproducible runs (0 = time-based)",
			},
			&cli.StringFlag{
				Name:  "out",
				Value: "simulation_results.csv",
				Usage: "CSV output path (run_id,strategy,score)",
			},
			&cli.StringFlag{
				Name:  "table",
				Usage: "path to a JSON policy table; adds a 'table' policy to the run",
			},
		},
		Action: runSimulation,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatalf("simulate: %v", err)
	}
}

func runSimulation(ctx context.Context, cmd *cli.Command) error {
	episodes := int(cmd.Int("episodes"))
	if episodes < 1 {
		return fmt.Errorf("episodes must be at least 1, got %d", episodes)
	}
	seed := int64(cmd.Int("seed"))

	manager, err := config.NewManager(cmd.String("config-dir"))
	if err != nil {
		return fmt.Errorf("failed to open config directory: %w", err)
	}

	boardConfig, err := manager.LoadConfig(cmd.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load board config: %w", err)
	}

	policies, err := resolvePolicies(cmd.String("policies"), cmd.String("table"), seed)
	if err != nil {
		return err
	}

	fmt.Printf("Simulating %d episodes per policy on %q (tiles 1-%d)\n",
		episodes, boardConfig.Name, boardConfig.TilesMax)

	var results []episodeResult
	runID := 0
	for _, name := range policyOrder(policies) {
		pick := policies[name]

		eng, err := newEngine(boardConfig, seed)
		if err != nil {
			return err
		}

		scores := make([]int, 0, episodes)
		for i := 0; i < episodes; i++ {
			score, err := playEpisode(eng, pick)
			if err != nil {
				return fmt.Errorf("policy %s episode %d: %w", name, i+1, err)
			}
			runID++
			results = append(results, episodeResult{RunID: runID, Strategy: name, Score: score})
			scores = append(scores, score)
			eng.Reset()
		}

		s := summarize(scores)
		fmt.Printf("%-8s mean=%.2f median=%.1f p10=%.0f p90=%.0f shutout=%.1f%%\n",
			name, s.mean, s.median, s.p10, s.p90, s.shutRate*100)
	}

	if out := cmd.String("out"); out != "" {
		if err := writeCSV(out, results); err != nil {
			return err
		}
		fmt.Printf("Wrote %d rows to %s\n", len(results), out)
	}

	return nil
}

// playEpisode drives one game to completion. The engine must be freshly
// created or reset.
func playEpisode(eng *engine.GameEngine, pick policy.Func) (int, error) {
	for !eng.IsGameOver() {
		dice := 2
		if eng.CanUseSingleDie() {
			dice = 1
		}
		if _, err := eng.Roll(dice); err != nil {
			return 0, err
		}
		if eng.IsGameOver() {
			break
		}

		move := pick(eng.GetState(), eng.AvailableMoves())
		if move == nil {
			return 0, fmt.Errorf("policy declined to move with a roll pending")
		}
		if _, err := eng.ApplyMove(move); err != nil {
			return 0, err
		}
	}
	return eng.GetScore(), nil
}

func newEngine(boardConfig *engine.GameConfig, seed int64) (*engine.GameEngine, error) {
	if seed != 0 {
		return engine.NewEngineWithSource(boardConfig, engine.NewSeededSource(seed))
	}
	return engine.NewEngine(boardConfig)
}

// resolvePolicies builds the named policies, plus a table policy when a
// table path is given.
func resolvePolicies(names, tablePath string, seed int64) (map[string]policy.Func, error) {
	policies := make(map[string]policy.Func)
	for _, name := range splitList(names) {
		pick, err := policy.ByName(name, seed)
		if err != nil {
			return nil, err
		}
		policies[name] = pick
	}

	if tablePath != "" {
		pick, err := policy.Table(tablePath)
		if err != nil {
			return nil, err
		}
		policies["table"] = pick
	}

	if len(policies) == 0 {
		return nil, fmt.Errorf("no policies selected (available: %v)", policy.Names())
	}
	return policies, nil
}

func policyOrder(policies map[string]policy.Func) []string {
	names := make([]string, 0, len(policies))
	for name := range policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func splitList(value string) []string {
	var parts []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

func writeCSV(path string, results []episodeResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"run_id", "strategy", "score"}); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{strconv.Itoa(r.RunID), r.Strategy, strconv.Itoa(r.Score)}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

// stats holds summary numbers for one policy's score distribution.
type stats struct {
	mean     float64
	median   float64
	p10      float64
	p90      float64
	shutRate float64
}

func summarize(scores []int) stats {
	if len(scores) == 0 {
		return stats{}
	}

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

	return stats{
		mean:     float64(sum) / float64(len(sorted)),
		median:   percentile(sorted, 0.5),
		p10:      percentile(sorted, 0.1),
		p90:      percentile(sorted, 0.9),
		shutRate: float64(shutouts) / float64(len(sorted)),
	}
}

// percentile uses nearest-rank interpolation on a sorted slice.
func percentile(sorted []int, p float64) float64 {
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
