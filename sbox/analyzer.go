package sbox

import (
	"git.gammaspectra.live/P2Pool/sbox/types"
	"git.gammaspectra.live/P2Pool/sbox/utils"
)

// Analyzer computes DDT and LAT tables, memoizing them for S-boxes that have a types.SBoxKey.
// Returned tables may be shared with the cache and must not be modified.
type Analyzer struct {
	// Strict rejects S-boxes that are not permutations with ErrInvalidSBox
	Strict bool

	ddtCache utils.Cache[types.SBoxKey, *types.Table]
	latCache utils.Cache[types.SBoxKey, *types.Table]
}

func NewAnalyzer(ddtCache, latCache utils.Cache[types.SBoxKey, *types.Table]) *Analyzer {
	return &Analyzer{
		ddtCache: ddtCache,
		latCache: latCache,
	}
}

func NewLRUAnalyzer(size int) *Analyzer {
	return NewAnalyzer(
		utils.NewLRUCache[types.SBoxKey, *types.Table](size),
		utils.NewLRUCache[types.SBoxKey, *types.Table](size),
	)
}

func NewMapAnalyzer(size int) *Analyzer {
	return NewAnalyzer(
		utils.NewMapCache[types.SBoxKey, *types.Table](size),
		utils.NewMapCache[types.SBoxKey, *types.Table](size),
	)
}

func NewNilAnalyzer() *Analyzer {
	return NewAnalyzer(
		utils.NewNilCache[types.SBoxKey, *types.Table](),
		utils.NewNilCache[types.SBoxKey, *types.Table](),
	)
}

func (a *Analyzer) compute(cache utils.Cache[types.SBoxKey, *types.Table], s types.SBox, f func(types.SBox) (*types.Table, error)) (*types.Table, error) {
	if a.Strict {
		if err := Validate(s); err != nil {
			return nil, err
		}
	}

	key, ok := s.Key()
	if ok {
		if t, hit := cache.Get(key); hit {
			return t, nil
		}
	}

	t, err := f(s)
	if err != nil {
		return nil, err
	}
	if ok {
		cache.Set(key, t)
	}
	return t, nil
}

func (a *Analyzer) DDT(s types.SBox) (*types.Table, error) {
	return a.compute(a.ddtCache, s, DDT)
}

func (a *Analyzer) LAT(s types.SBox) (*types.Table, error) {
	return a.compute(a.latCache, s, LAT)
}

// Stats returns combined cache hits and misses for both tables
func (a *Analyzer) Stats() (hits, misses uint64) {
	dh, dm := a.ddtCache.Stats()
	lh, lm := a.latCache.Stats()
	return dh + lh, dm + lm
}

// Report bundles both tables of an S-box with their summary metrics
type Report struct {
	SBox                   types.SBox   `json:"sbox"`
	Bijective              bool         `json:"bijective"`
	DDT                    *types.Table `json:"ddt"`
	LAT                    *types.Table `json:"lat"`
	DifferentialUniformity int          `json:"differential_uniformity"`
	Linearity              int          `json:"linearity"`
}

func (a *Analyzer) Report(s types.SBox) (*Report, error) {
	ddt, err := a.DDT(s)
	if err != nil {
		return nil, err
	}
	lat, err := a.LAT(s)
	if err != nil {
		return nil, err
	}
	return &Report{
		SBox:                   s,
		Bijective:              IsBijective(s),
		DDT:                    ddt,
		LAT:                    lat,
		DifferentialUniformity: DifferentialUniformity(ddt),
		Linearity:              Linearity(lat),
	}, nil
}
