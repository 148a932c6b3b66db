package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"assettracker/models"
)

func TestDatabaseName(t *testing.T) {
	r := &Router{baseDB: "asset_tracker"}

	assert.Equal(t, "ecosoul_home_asset_tracker", r.DatabaseName("Ecosoul Home"))
	assert.Equal(t, "thrive_asset_tracker", r.DatabaseName("Thrive"))
	assert.Equal(t, "acme_corp_asset_tracker", r.DatabaseName("  Acme   Corp "))
	// No company resolves to the shared legacy database.
	assert.Equal(t, "asset_tracker", r.DatabaseName(""))
	assert.Equal(t, "asset_tracker", r.DatabaseName("   "))
}

// recordingFinder returns canned results in sequence and records the filter
// of every call.
type recordingFinder struct {
	filters []bson.M
	results [][]models.Asset
	err     error
}

func (f *recordingFinder) find(ctx context.Context, filter bson.M) ([]models.Asset, error) {
	f.filters = append(f.filters, filter)
	if f.err != nil {
		return nil, f.err
	}
	i := len(f.filters) - 1
	if i < len(f.results) {
		return f.results[i], nil
	}
	return []models.Asset{}, nil
}

// All three lookups run in order when each prior one yields zero rows:
// tenant store with the soft filter, tenant store without it, then the
// legacy store by company-name prefix.
func TestFallbackRunsAllThreeLookupsInOrder(t *testing.T) {
	legacyAsset := models.Asset{ID: "a1", Company: "Acme Corp"}
	tenant := &recordingFinder{results: [][]models.Asset{{}, {}}}
	legacy := &recordingFinder{results: [][]models.Asset{{legacyAsset}}}

	assets, err := FindAssetsWithFallback(context.Background(), tenant.find, legacy.find, "Acme", "42")
	require.NoError(t, err)
	assert.Equal(t, []models.Asset{legacyAsset}, assets)

	require.Len(t, tenant.filters, 2)
	assert.Equal(t, bson.M{"companyId": "42"}, tenant.filters[0])
	assert.Equal(t, bson.M{}, tenant.filters[1])

	require.Len(t, legacy.filters, 1)
	re, ok := legacy.filters[0]["company"].(primitive.Regex)
	require.True(t, ok, "legacy filter must match company by regex")
	assert.Equal(t, "^Acme", re.Pattern)
	assert.Equal(t, "i", re.Options)
}

func TestFallbackStopsWhenSoftFilterMatches(t *testing.T) {
	found := models.Asset{ID: "a1", CompanyID: "42"}
	tenant := &recordingFinder{results: [][]models.Asset{{found}}}
	legacy := &recordingFinder{}

	assets, err := FindAssetsWithFallback(context.Background(), tenant.find, legacy.find, "Acme", "42")
	require.NoError(t, err)
	assert.Equal(t, []models.Asset{found}, assets)
	assert.Len(t, tenant.filters, 1)
	assert.Empty(t, legacy.filters)
}

func TestFallbackStopsAfterUnfilteredTenantQuery(t *testing.T) {
	older := models.Asset{ID: "a2"}
	tenant := &recordingFinder{results: [][]models.Asset{{}, {older}}}
	legacy := &recordingFinder{}

	assets, err := FindAssetsWithFallback(context.Background(), tenant.find, legacy.find, "Acme", "42")
	require.NoError(t, err)
	assert.Equal(t, []models.Asset{older}, assets)
	assert.Len(t, tenant.filters, 2)
	assert.Empty(t, legacy.filters)
}

// Without a soft filter there is nothing to retry; an empty tenant store
// goes straight to the legacy fallback.
func TestFallbackSkipsRetryWithoutSoftFilter(t *testing.T) {
	tenant := &recordingFinder{}
	legacy := &recordingFinder{}

	_, err := FindAssetsWithFallback(context.Background(), tenant.find, legacy.find, "Acme", "")
	require.NoError(t, err)
	require.Len(t, tenant.filters, 1)
	assert.Equal(t, bson.M{}, tenant.filters[0])
	assert.Len(t, legacy.filters, 1)
}

func TestFallbackNoCompanyQueriesLegacyOnly(t *testing.T) {
	tenant := &recordingFinder{}
	legacy := &recordingFinder{}

	_, err := FindAssetsWithFallback(context.Background(), tenant.find, legacy.find, "", "42")
	require.NoError(t, err)
	assert.Empty(t, tenant.filters)
	require.Len(t, legacy.filters, 1)
	assert.Equal(t, bson.M{"companyId": "42"}, legacy.filters[0])
}

func TestFallbackPropagatesQueryErrors(t *testing.T) {
	tenant := &recordingFinder{err: assert.AnError}
	legacy := &recordingFinder{}

	_, err := FindAssetsWithFallback(context.Background(), tenant.find, legacy.find, "Acme", "42")
	assert.Error(t, err)
	assert.Empty(t, legacy.filters)
}
