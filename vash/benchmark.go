// =======================
// vash/benchmark.go
// =======================

package vash

import (
	"bytes"
	"fmt"
	"io"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

// BenchmarkInfo holds render metrics for one algorithm.
type BenchmarkInfo struct {
	Algorithm   Algorithm     `json:"algorithm"`
	DataSize    int           `json:"data_size_bytes"`
	Width       int           `json:"width"`
	Height      int           `json:"height"`
	BuildTime   time.Duration `json:"build_time"`
	RenderTime  time.Duration `json:"render_time"`
	Nodes       int           `json:"nodes"`
	PlaneBytes  int64         `json:"plane_bytes"`
	PixelRate   float64       `json:"pixels_per_second"`
	EntropyUsed int           `json:"entropy_used_bits"`
}

// BenchmarkAlgorithms builds and renders data iterations times with every
// known algorithm and reports the average cost per image.
func BenchmarkAlgorithms(data []byte, iterations, w, h int) ([]BenchmarkInfo, error) {
	if iterations < 1 {
		return nil, errors.Wrapf(ErrInvalidArgument, "iterations must be positive, got %d", iterations)
	}

	known := KnownAlgorithms()
	results := make([]BenchmarkInfo, 0, len(known))
	for _, info := range known {
		res, err := benchmarkAlgorithm(info.Name, data, iterations, w, h)
		if err != nil {
			return nil, errors.Wrapf(err, "benchmarking %s", info.Name)
		}
		results = append(results, res)
	}
	return results, nil
}

func benchmarkAlgorithm(algo Algorithm, data []byte, iterations, w, h int) (BenchmarkInfo, error) {
	ip, err := NewImageParameters(w, h)
	if err != nil {
		return BenchmarkInfo{}, err
	}

	var (
		build, render time.Duration
		stats         TreeStats
	)
	for i := 0; i < iterations; i++ {
		start := time.Now()
		tp, err := NewTreeParameters(algo, nil, bytes.NewReader(data))
		if err != nil {
			return BenchmarkInfo{}, err
		}
		tree, err := NewTree(tp)
		if err != nil {
			return BenchmarkInfo{}, err
		}
		build += time.Since(start)

		// The pool is shared across iterations, as a long lived caller would.
		start = time.Now()
		tree.SetGenerationParameters(ip)
		if _, err := tree.GenerateCurrentFrame(); err != nil {
			return BenchmarkInfo{}, errors.Wrapf(err, "iteration %d", i)
		}
		render += time.Since(start)
		stats = tree.Stats()
	}

	pool := ip.Stats()
	rate := 0.0
	if seconds := render.Seconds(); seconds > 0 {
		rate = float64(w*h*iterations) / seconds
	}
	return BenchmarkInfo{
		Algorithm:   algo,
		DataSize:    len(data),
		Width:       w,
		Height:      h,
		BuildTime:   build / time.Duration(iterations),
		RenderTime:  render / time.Duration(iterations),
		Nodes:       stats.Nodes,
		PlaneBytes:  pool.CachedBytes,
		PixelRate:   rate,
		EntropyUsed: stats.EntropyUsed,
	}, nil
}

// PrintBenchmarkResults writes results as a table.
func PrintBenchmarkResults(w io.Writer, results []BenchmarkInfo) error {
	lines := []string{
		"VASH Render Benchmark Results",
		"=============================",
		fmt.Sprintf("%-8s | %-12s | %-12s | %-6s | %-10s | %-14s | %-8s",
			"Algo", "Build", "Render", "Nodes", "Pool", "Pixels/s", "Entropy"),
		"---------|--------------|--------------|--------|------------|----------------|---------",
	}
	for _, r := range results {
		lines = append(lines, fmt.Sprintf("%-8s | %-12s | %-12s | %-6d | %-10s | %-14.0f | %-8d",
			r.Algorithm,
			r.BuildTime.String(),
			r.RenderTime.String(),
			r.Nodes,
			humanize.IBytes(uint64(r.PlaneBytes)),
			r.PixelRate,
			r.EntropyUsed))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
