package main

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "results.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test CSV: %v", err)
	}
	return path
}

func TestReadResults(t *testing.T) {
	path := writeTempCSV(t, strings.Join([]string{
		"run_id,strategy,score",
		"1,greedy,0",
		"2,greedy,12",
		"3,fewest,45",
		"4,fewest,7",
		"5,fewest,3",
	}, "\n"))

	byStrategy, err := readResults(path)
	if err != nil {
		t.Fatalf("readResults failed: %v", err)
	}

	if len(byStrategy) != 2 {
		t.Errorf("Expected 2 strategies, got %d", len(byStrategy))
	}

	if got := byStrategy["greedy"]; len(got) != 2 {
		t.Errorf("Expected 2 greedy scores, got %v", got)
	}

	if got := byStrategy["fewest"]; len(got) != 3 {
		t.Errorf("Expected 3 fewest scores, got %v", got)
	}
}

func TestReadResults_NoHeader(t *testing.T) {
	path := writeTempCSV(t, "1,greedy,10\n2,greedy,20\n")

	byStrategy, err := readResults(path)
	if err != nil {
		t.Fatalf("readResults failed: %v", err)
	}

	if got := byStrategy["greedy"]; len(got) != 2 {
		t.Errorf("Expected 2 greedy scores without header, got %v", got)
	}
}

func TestReadResults_MissingFile(t *testing.T) {
	_, err := readResults("/non/existent/results.csv")
	if err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestReadResults_BadScore(t *testing.T) {
	path := writeTempCSV(t, "run_id,strategy,score\n1,greedy,oops\n")

	_, err := readResults(path)
	if err == nil {
		t.Error("Expected error for non-numeric score")
	}
}

func TestReadResults_Empty(t *testing.T) {
	path := writeTempCSV(t, "run_id,strategy,score\n")

	_, err := readResults(path)
	if err == nil {
		t.Error("Expected error for CSV with no result rows")
	}
}

func TestSummarize(t *testing.T) {
	s := summarize("greedy", []int{0, 10, 20, 30, 40})

	if s.Games != 5 {
		t.Errorf("Expected 5 games, got %d", s.Games)
	}

	if s.Mean != 20 {
		t.Errorf("Expected mean 20, got %.2f", s.Mean)
	}

	if s.Median != 20 {
		t.Errorf("Expected median 20, got %.1f", s.Median)
	}

	if s.Shutouts != 1 {
		t.Errorf("Expected 1 shutout, got %d", s.Shutouts)
	}

	// Population standard deviation of {0,10,20,30,40} is sqrt(200)
	want := math.Sqrt(200)
	if math.Abs(s.StdDev-want) > 1e-9 {
		t.Errorf("Expected std %.4f, got %.4f", want, s.StdDev)
	}
}

func TestSummarize_UnsortedInput(t *testing.T) {
	s := summarize("fewest", []int{40, 0, 30, 10, 20})

	if s.Median != 20 {
		t.Errorf("Expected median 20 regardless of input order, got %.1f", s.Median)
	}
}

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []int
		p      float64
		want   float64
	}{
		{"median of odd count", []int{1, 2, 3, 4, 5}, 0.5, 3},
		{"median of even count", []int{1, 2, 3, 4}, 0.5, 2.5},
		{"p10 interpolated", []int{0, 10, 20, 30, 40}, 0.1, 4},
		{"p90 interpolated", []int{0, 10, 20, 30, 40}, 0.9, 36},
		{"min", []int{5, 9}, 0, 5},
		{"max", []int{5, 9}, 1, 9},
		{"single element", []int{7}, 0.5, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("percentile(%v, %.2f) = %.4f, want %.4f", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}
