package sbox

import (
	"testing"

	"git.gammaspectra.live/P2Pool/sbox/types"
	"github.com/stretchr/testify/require"
)

func TestAnalyzer_Cache(t *testing.T) {
	analyzers := map[string]*Analyzer{
		"lru": NewLRUAnalyzer(8),
		"map": NewMapAnalyzer(8),
	}
	for name, analyzer := range analyzers {
		t.Run(name, func(t *testing.T) {
			first, err := analyzer.DDT(nibbleSBox)
			require.NoError(t, err)
			second, err := analyzer.DDT(nibbleSBox.Clone())
			require.NoError(t, err)
			require.Same(t, first, second)
			require.True(t, second.Equals(nibbleDDT))

			lat, err := analyzer.LAT(nibbleSBox)
			require.NoError(t, err)
			require.True(t, lat.Equals(nibbleLAT))

			hits, misses := analyzer.Stats()
			require.Equal(t, uint64(1), hits)
			require.Equal(t, uint64(2), misses)
		})
	}
}

func TestAnalyzer_NilCache(t *testing.T) {
	analyzer := NewNilAnalyzer()
	first, err := analyzer.DDT(nibbleSBox)
	require.NoError(t, err)
	second, err := analyzer.DDT(nibbleSBox)
	require.NoError(t, err)
	require.NotSame(t, first, second)
	require.True(t, first.Equals(second))

	hits, _ := analyzer.Stats()
	require.Zero(t, hits)
}

func TestAnalyzer_LargeSBoxBypassesCache(t *testing.T) {
	analyzer := NewLRUAnalyzer(8)
	s := Identity(32)
	_, err := analyzer.DDT(s)
	require.NoError(t, err)
	_, err = analyzer.DDT(s)
	require.NoError(t, err)

	hits, misses := analyzer.Stats()
	require.Zero(t, hits)
	require.Zero(t, misses)
}

func TestAnalyzer_Strict(t *testing.T) {
	analyzer := NewNilAnalyzer()
	s := types.SBox{0, 0, 1, 1}

	_, err := analyzer.DDT(s)
	require.NoError(t, err)

	analyzer.Strict = true
	_, err = analyzer.DDT(s)
	require.ErrorIs(t, err, ErrInvalidSBox)
	_, err = analyzer.LAT(s)
	require.ErrorIs(t, err, ErrInvalidSBox)
}

func TestAnalyzer_Report(t *testing.T) {
	report, err := NewNilAnalyzer().Report(types.MustSBoxFromString("[14,11,4,6,10,13,7,0,3,8,15,12,5,9,1,2]"))
	require.NoError(t, err)
	require.True(t, report.Bijective)
	require.True(t, report.DDT.Equals(nibbleDDT))
	require.True(t, report.LAT.Equals(nibbleLAT))
	require.Equal(t, 6, report.DifferentialUniformity)
	require.Equal(t, 6, report.Linearity)

	_, err = NewNilAnalyzer().Report(types.SBox{0, 2, 1})
	require.ErrorIs(t, err, ErrInvalidDomain)
}
