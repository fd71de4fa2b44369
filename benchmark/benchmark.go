// Package benchmark measures mining cost per hash mode and difficulty.
package benchmark

import (
	"fmt"
	"strconv"
	"time"

	"ca-ledger/core"
	"ca-ledger/crypto"
	"ca-ledger/logger"

	"github.com/ethereum/go-ethereum/common"
)

// Config selects the configurations to measure.
type Config struct {
	Difficulties []int
	Modes        []crypto.HashMode
	Blocks       int
}

// DefaultConfig measures both modes at difficulties 3 and 4 over 10 blocks.
var DefaultConfig = Config{
	Difficulties: []int{3, 4},
	Modes:        crypto.Modes,
	Blocks:       10,
}

// Observation is the cost of mining a single block.
type Observation struct {
	Elapsed  time.Duration
	Attempts uint64
}

// Result is the mean cost of mining one block in a configuration.
type Result struct {
	Mode         crypto.HashMode
	Difficulty   int
	Blocks       int
	AvgTimeMs    float64
	AvgAttempts  float64
	Observations []Observation
}

// Run mines blocks onto a fresh chain and averages elapsed time and
// attempts per block. Only the mean is reported.
func Run(mode crypto.HashMode, difficulty int, blocks int) Result {
	bc := core.NewBlockchain(&core.Config{Difficulty: difficulty, HashMode: mode})
	res := Result{
		Mode:         mode,
		Difficulty:   difficulty,
		Blocks:       blocks,
		Observations: make([]Observation, 0, blocks),
	}
	if blocks <= 0 {
		return res
	}

	var totalMs, totalAttempts float64
	for i := 0; i < blocks; i++ {
		start := time.Now()
		_, attempts := bc.AddBlock("Transaction " + strconv.Itoa(i+1))
		elapsed := time.Since(start)

		res.Observations = append(res.Observations, Observation{Elapsed: elapsed, Attempts: attempts})
		totalMs += float64(elapsed) / float64(time.Millisecond)
		totalAttempts += float64(attempts)
	}
	res.AvgTimeMs = totalMs / float64(blocks)
	res.AvgAttempts = totalAttempts / float64(blocks)

	logger.Infof("%s difficulty %d: %d blocks, avg %v, avg %.0f attempts",
		mode, difficulty, blocks, common.PrettyDuration(time.Duration(res.AvgTimeMs*float64(time.Millisecond))), res.AvgAttempts)
	return res
}

// Report holds results keyed by difficulty and mode.
type Report struct {
	Config  Config
	results map[int]map[crypto.HashMode]Result
}

// RunAll measures every (difficulty, mode) pair in cfg, difficulty first.
func RunAll(cfg Config) *Report {
	r := &Report{Config: cfg, results: make(map[int]map[crypto.HashMode]Result)}
	for _, d := range cfg.Difficulties {
		logger.Infof("Testing difficulty %d...", d)
		r.results[d] = make(map[crypto.HashMode]Result)
		for _, mode := range cfg.Modes {
			r.results[d][mode] = Run(mode, d, cfg.Blocks)
			logger.Infof("%s completed", mode)
		}
	}
	return r
}

// Lookup returns the result for a configuration.
func (r *Report) Lookup(difficulty int, mode crypto.HashMode) (Result, bool) {
	byMode, ok := r.results[difficulty]
	if !ok {
		return Result{}, false
	}
	res, ok := byMode[mode]
	return res, ok
}

// Header returns the column titles matching Rows.
func (r *Report) Header() []string {
	header := []string{"Difficulty"}
	for _, mode := range r.Config.Modes {
		header = append(header,
			fmt.Sprintf("%s Time(ms)", mode),
			fmt.Sprintf("%s Iterations", mode),
		)
	}
	return header
}

// Rows returns one row per difficulty with the mean time to two decimals
// and the mean attempt count with no decimals, per mode.
func (r *Report) Rows() [][]string {
	rows := make([][]string, 0, len(r.Config.Difficulties))
	for _, d := range r.Config.Difficulties {
		row := []string{strconv.Itoa(d)}
		for _, mode := range r.Config.Modes {
			res, ok := r.Lookup(d, mode)
			if !ok {
				row = append(row, "-", "-")
				continue
			}
			row = append(row,
				strconv.FormatFloat(res.AvgTimeMs, 'f', 2, 64),
				strconv.FormatFloat(res.AvgAttempts, 'f', 0, 64),
			)
		}
		rows = append(rows, row)
	}
	return rows
}
