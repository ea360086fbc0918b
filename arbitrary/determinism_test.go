// Reproducibility: a configured seed pins every draw, SampleList derives
// one independent stream per element, and unseeded runs stay independent.
package arbitrary_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/specimen/arbitrary"
)

func TestSeededSamplesReplay(t *testing.T) {
	t.Parallel()

	cfg := arbitrary.NewConfig(arbitrary.WithSeed(1234))
	a, err := arbitrary.GiveMeOne[order](cfg)
	require.NoError(t, err)
	b, err := arbitrary.GiveMeOne[order](cfg)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(a, b))
}

func TestSeededBuildersAgreeAcrossInstances(t *testing.T) {
	t.Parallel()

	mk := func() *arbitrary.Builder[order] {
		return arbitrary.GiveMeBuilder[order](arbitrary.NewConfig(arbitrary.WithSeed(99))).
			Size("Tags", 2).
			Set("ID", 7)
	}
	a, err := mk().Sample()
	require.NoError(t, err)
	b, err := mk().Sample()
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(a, b))
}

func TestSeedsChangeOutcomes(t *testing.T) {
	t.Parallel()

	a, err := arbitrary.GiveMeOne[order](arbitrary.NewConfig(arbitrary.WithSeed(1)))
	require.NoError(t, err)
	b, err := arbitrary.GiveMeOne[order](arbitrary.NewConfig(arbitrary.WithSeed(2)))
	require.NoError(t, err)
	require.NotEmpty(t, cmp.Diff(a, b))
}

func TestSampleListSeedDerivation(t *testing.T) {
	t.Parallel()

	cfg := arbitrary.NewConfig(arbitrary.WithSeed(55))
	list, err := arbitrary.GiveMe[order](cfg, 3)
	require.NoError(t, err)
	again, err := arbitrary.GiveMe[order](cfg, 3)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(list, again))

	// Element 0 shares the base seed with a lone Sample.
	one, err := arbitrary.GiveMeOne[order](cfg)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(list[0], one))

	// Adjacent elements use shifted seeds and differ.
	require.NotEmpty(t, cmp.Diff(list[0], list[1]))
}

func TestUnseededSamplesDiffer(t *testing.T) {
	t.Parallel()

	b := arbitrary.GiveMeBuilder[order](nil).Size("Tags", 3)
	x, err := b.Sample()
	require.NoError(t, err)
	y, err := b.Sample()
	require.NoError(t, err)
	require.NotEmpty(t, cmp.Diff(x, y))
}
