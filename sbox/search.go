package sbox

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"git.gammaspectra.live/P2Pool/sbox/types"
	"git.gammaspectra.live/P2Pool/sbox/utils"
)

const (
	DefaultSize        = 16
	DefaultThreshold   = 10
	DefaultMaxAttempts = 1000
)

type SearchConfig struct {
	// Size is the S-box domain N, a power of two
	Size int
	// Threshold accepts a candidate whose differential uniformity is strictly below it
	Threshold int
	// MaxAttempts caps generated candidates, bijective or not
	MaxAttempts int
	// Analyzer computes DDTs, a nil cache analyzer is used if unset
	Analyzer *Analyzer
}

func (c SearchConfig) withDefaults() SearchConfig {
	if c.Size == 0 {
		c.Size = DefaultSize
	}
	if c.Threshold <= 0 {
		c.Threshold = DefaultThreshold
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.Analyzer == nil {
		c.Analyzer = NewNilAnalyzer()
	}
	return c
}

type Result struct {
	SBox         types.SBox         `json:"sbox"`
	Coefficients types.Coefficients `json:"coefficients"`
	DDT          *types.Table       `json:"ddt"`
	Uniformity   int                `json:"differential_uniformity"`
	Bijective    bool               `json:"bijective"`
	// Accepted is false when the attempt cap was hit, SBox is then the last candidate evaluated
	Accepted bool `json:"accepted"`
	Attempts int  `json:"attempts"`
	// Rejected counts candidates discarded for not being permutations
	Rejected int `json:"rejected"`
}

// Search generates polynomial candidates until one is bijective with a differential uniformity below cfg.Threshold.
//
// When cfg.MaxAttempts candidates are exhausted the last bijective candidate, or the last raw candidate
// if none was bijective, is returned with its DDT together with ErrSearchExhausted.
func Search(ctx context.Context, cfg SearchConfig, source Source) (*Result, error) {
	cfg = cfg.withDefaults()
	if !utils.IsPowerOfTwo(cfg.Size) {
		return nil, fmt.Errorf("%w: %d is not a power of two", ErrInvalidDomain, cfg.Size)
	}

	gen, err := NewGenerator(cfg.Size, source)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	var lastRaw types.SBox
	var lastRawCoefficients types.Coefficients

	for result.Attempts < cfg.MaxAttempts {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		result.Attempts++

		candidate, coefficients := gen.Candidate()
		if !IsBijective(candidate) {
			result.Rejected++
			lastRaw, lastRawCoefficients = candidate, coefficients
			if utils.IsLogLevelDebug() {
				utils.Debugf("Search", "attempt %d: %s is not bijective", result.Attempts, candidate)
			}
			continue
		}

		ddt, err := cfg.Analyzer.DDT(candidate)
		if err != nil {
			return nil, err
		}
		uniformity := DifferentialUniformity(ddt)

		result.SBox = candidate
		result.Coefficients = coefficients
		result.DDT = ddt
		result.Uniformity = uniformity
		result.Bijective = true

		if uniformity < cfg.Threshold {
			result.Accepted = true
			utils.Logf("Search", "accepted %s with differential uniformity %d after %d attempts", candidate, uniformity, result.Attempts)
			return result, nil
		}
		utils.Debugf("Search", "attempt %d: %s has differential uniformity %d, need below %d", result.Attempts, candidate, uniformity, cfg.Threshold)
	}

	if result.SBox == nil && lastRaw != nil {
		result.SBox = lastRaw
		result.Coefficients = lastRawCoefficients
		if result.DDT, err = DDT(lastRaw); err != nil {
			return nil, err
		}
		result.Uniformity = DifferentialUniformity(result.DDT)
	}

	utils.Noticef("Search", "no candidate below %d after %d attempts, last uniformity %d", cfg.Threshold, result.Attempts, result.Uniformity)
	return result, fmt.Errorf("%w: %d attempts", ErrSearchExhausted, result.Attempts)
}

// SearchParallel runs one independent Search per source. The first accepted result wins and stops the others.
// If every search is exhausted, the result with the lowest differential uniformity is returned with ErrSearchExhausted.
func SearchParallel(ctx context.Context, cfg SearchConfig, sources []Source) (*Result, error) {
	if len(sources) == 0 {
		return nil, errors.New("no sources")
	}
	cfg = cfg.withDefaults()

	var lock sync.Mutex
	var winner, fallback *Result
	var attempts int

	err := utils.SplitWork(ctx, len(sources), uint64(len(sources)), func(ctx context.Context, workIndex uint64, routineIndex int) error {
		result, err := Search(ctx, cfg, sources[workIndex])
		if err != nil && !errors.Is(err, ErrSearchExhausted) {
			if ctx.Err() != nil {
				// lost the race against another worker
				return nil
			}
			return err
		}

		lock.Lock()
		defer lock.Unlock()
		attempts += result.Attempts
		if result.Accepted {
			if winner == nil {
				winner = result
			}
			return utils.ErrStopWork
		}
		if fallback == nil || (result.Bijective && (!fallback.Bijective || result.Uniformity < fallback.Uniformity)) {
			fallback = result
		}
		return nil
	}, nil)

	if winner != nil {
		utils.Logf("Search", "%d workers, %d attempts in total", len(sources), attempts)
		return winner, nil
	}
	if err != nil {
		return nil, err
	}
	return fallback, fmt.Errorf("%w: %d attempts across %d workers", ErrSearchExhausted, attempts, len(sources))
}
