package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchlist-screener/internal/feature"
	"github.com/watchlist-screener/internal/schema"
)

func featureNames(extractors []feature.Extractor) []string {
	names := make([]string, len(extractors))
	for i, ex := range extractors {
		names[i] = ex.Name
	}
	return names
}

func TestResolvePersonPair(t *testing.T) {
	reg := New(schema.Builtin(), Options{})

	extractors, err := reg.Resolve("Person", "Person")
	require.NoError(t, err)

	names := featureNames(extractors)
	assert.Contains(t, names, feature.FeatureName)
	assert.Contains(t, names, feature.FeatureIdentifier)
	assert.Contains(t, names, feature.FeatureBirthDate)
	assert.Contains(t, names, feature.FeatureNationality)
	assert.NotContains(t, names, feature.FeatureIncorporation)
	assert.NotContains(t, names, feature.FeatureProgram)
	assert.IsIncreasing(t, names, "extractor order is stable by feature name")
}

func TestResolveOrganizationPair(t *testing.T) {
	reg := New(schema.Builtin(), Options{})

	extractors, err := reg.Resolve("Organization", "Company")
	require.NoError(t, err)
	names := featureNames(extractors)
	assert.Contains(t, names, feature.FeatureProgram)
	assert.Contains(t, names, feature.FeatureIncorporation)
	assert.NotContains(t, names, feature.FeatureBirthDate)
}

func TestResolveCrossSchema(t *testing.T) {
	reg := New(schema.Builtin(), Options{})

	// Person vs Vessel share only the Thing-level domains.
	extractors, err := reg.Resolve("Person", "Vessel")
	require.NoError(t, err)
	names := featureNames(extractors)
	assert.Contains(t, names, feature.FeatureName)
	assert.Contains(t, names, feature.FeatureCountry)
	assert.NotContains(t, names, feature.FeatureBirthDate)
	assert.NotContains(t, names, feature.FeatureNationality)
}

func TestResolveDeterministic(t *testing.T) {
	reg := New(schema.Builtin(), Options{})
	first, err := reg.Resolve("Organization", "Company")
	require.NoError(t, err)
	second, err := reg.Resolve("Organization", "Company")
	require.NoError(t, err)
	assert.Equal(t, featureNames(first), featureNames(second))
}

func TestResolveUnknownSchema(t *testing.T) {
	reg := New(schema.Builtin(), Options{})
	_, err := reg.Resolve("Person", "Spaceship")
	assert.Error(t, err)
}
