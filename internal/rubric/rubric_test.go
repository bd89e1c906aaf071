package rubric

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCatalogEssayVariants(t *testing.T) {
	catalog := NewCatalog()

	ten, err := catalog.Essay(EssayVariantTen)
	require.NoError(t, err)
	require.Equal(t, 10.0, ten.MaxScore())
	require.Len(t, ten.Criteria, 5)

	twenty, err := catalog.Essay(EssayVariantTwenty)
	require.NoError(t, err)
	require.Equal(t, 20.0, twenty.MaxScore())

	_, err = catalog.Essay(EssayVariant(15))
	require.Error(t, err)
}

func TestCatalogComponents(t *testing.T) {
	catalog := NewCatalog()

	for _, component := range []Component{ComponentIntroduction, ComponentBody, ComponentConclusion} {
		r, err := catalog.Component(component)
		require.NoError(t, err)
		require.Equal(t, 10.0, r.MaxScore(), "component %s", component)
		require.NotEmpty(t, r.Criteria)
	}

	_, err := catalog.Component(Component("appendix"))
	require.Error(t, err)
}

func TestCatalogPetal(t *testing.T) {
	petal := NewCatalog().Petal()
	require.Len(t, petal.Criteria, 5)
	require.Equal(t, 10.0, petal.MaxScore())
	require.Equal(t, "Point", petal.Criteria[0].Name)
	require.Equal(t, "Link", petal.Criteria[4].Name)
}

func TestCatalogShortAnswer(t *testing.T) {
	catalog := NewCatalog()

	r, err := catalog.ShortAnswer(5)
	require.NoError(t, err)
	require.Equal(t, 5.0, r.MaxScore())

	_, err = catalog.ShortAnswer(0)
	require.Error(t, err)
	_, err = catalog.ShortAnswer(25)
	require.Error(t, err)
}

func TestBandForMonotonic(t *testing.T) {
	previous := Band1
	for p := 0; p <= 100; p++ {
		band := BandFor(p)
		require.GreaterOrEqual(t, band, previous, "band regressed at %d%%", p)
		previous = band
	}
}

func TestBandBoundariesResolveUp(t *testing.T) {
	cases := map[int]Band{
		0: Band1, 29: Band1,
		30: Band2, 49: Band2,
		50: Band3, 69: Band3,
		70: Band4, 79: Band4,
		80: Band5, 89: Band5,
		90: Band6, 100: Band6,
	}
	for percentage, want := range cases {
		require.Equal(t, want, BandFor(percentage), "percentage %d", percentage)
	}
}
