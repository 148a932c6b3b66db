// database/router.go
package database

import (
	"context"
	"log"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"assettracker/config"
	"assettracker/models"
)

// Collection names shared by every tenant database.
const (
	CollectionAssets     = "assets"
	CollectionHistory    = "asset_history"
	CollectionCategories = "asset_categories"
	CollectionLocations  = "asset_locations"
	CollectionUsers      = "users"
)

// Router resolves the physical MongoDB database for a company. Each company
// gets its own database derived from the base name; records created before
// multi-tenancy live in the shared base database and are reachable through
// the read fallback below.
type Router struct {
	client *mongo.Client
	baseDB string
}

func NewRouter(client *mongo.Client) *Router {
	return &Router{client: client, baseDB: config.BaseDatabase}
}

// DatabaseName maps a company display name to its database, e.g.
// "Ecosoul Home" -> ecosoul_home_asset_tracker. An empty company resolves to
// the shared base database.
func (r *Router) DatabaseName(company string) string {
	company = strings.TrimSpace(company)
	if company == "" {
		return r.baseDB
	}
	slug := strings.Join(strings.Fields(strings.ToLower(company)), "_")
	return slug + "_" + r.baseDB
}

// Collection returns the named collection in the company's database. An
// empty company resolves to the shared database; write paths treat that as
// an explicit, discouraged configuration and call WarnEmptyCompany.
func (r *Router) Collection(company, name string) *mongo.Collection {
	return r.client.Database(r.DatabaseName(company)).Collection(name)
}

// WarnEmptyCompany logs when a write is about to land in the shared database
// because no company was supplied.
func (r *Router) WarnEmptyCompany(company, operation string) {
	if strings.TrimSpace(company) == "" {
		log.Printf("router: %s with no company, writing to shared database %q", operation, r.baseDB)
	}
}

func (r *Router) Assets(company string) *mongo.Collection {
	return r.Collection(company, CollectionAssets)
}

func (r *Router) History(company string) *mongo.Collection {
	return r.Collection(company, CollectionHistory)
}

func (r *Router) Categories(company string) *mongo.Collection {
	return r.Collection(company, CollectionCategories)
}

func (r *Router) Locations(company string) *mongo.Collection {
	return r.Collection(company, CollectionLocations)
}

// LegacyCollection returns the named collection in the shared base database.
func (r *Router) LegacyCollection(name string) *mongo.Collection {
	return r.client.Database(r.baseDB).Collection(name)
}

func (r *Router) LegacyAssets() *mongo.Collection {
	return r.LegacyCollection(CollectionAssets)
}

// Users lives in the shared database; logins are not tenant-scoped.
func (r *Router) Users() *mongo.Collection {
	return r.LegacyCollection(CollectionUsers)
}

// AssetFinder runs one asset query against a single store.
type AssetFinder func(ctx context.Context, filter bson.M) ([]models.Asset, error)

// FindAssetsWithFallback implements the tenant-scoped-first read path:
//
//  1. tenant store with the companyId soft filter (when given)
//  2. tenant store without the soft filter (records created before the
//     companyId field existed)
//  3. shared store filtered by case-insensitive "starts with company name"
//     on the free-text company field (records created before tenant
//     databases existed)
//
// Each later step runs only when the previous one yielded zero rows. With no
// company at all, only the shared store is queried with the soft filter.
func FindAssetsWithFallback(ctx context.Context, tenantFind, legacyFind AssetFinder, company, companyID string) ([]models.Asset, error) {
	company = strings.TrimSpace(company)

	if company == "" {
		filter := bson.M{}
		if companyID != "" {
			filter["companyId"] = companyID
		}
		return legacyFind(ctx, filter)
	}

	filter := bson.M{}
	if companyID != "" {
		filter["companyId"] = companyID
	}
	assets, err := tenantFind(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(assets) > 0 {
		return assets, nil
	}

	if companyID != "" {
		assets, err = tenantFind(ctx, bson.M{})
		if err != nil {
			return nil, err
		}
		if len(assets) > 0 {
			return assets, nil
		}
	}

	legacyFilter := bson.M{"company": primitive.Regex{
		Pattern: "^" + regexp.QuoteMeta(company),
		Options: "i",
	}}
	return legacyFind(ctx, legacyFilter)
}

// FindAssets runs a plain find on one collection, newest first.
func FindAssets(ctx context.Context, col *mongo.Collection, filter bson.M) ([]models.Asset, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var assets []models.Asset
	if err = cursor.All(ctx, &assets); err != nil {
		return nil, err
	}
	if assets == nil {
		assets = []models.Asset{}
	}
	return assets, nil
}

// CollectionFinder adapts a collection into an AssetFinder.
func CollectionFinder(col *mongo.Collection) AssetFinder {
	return func(ctx context.Context, filter bson.M) ([]models.Asset, error) {
		return FindAssets(ctx, col, filter)
	}
}

// ExistingAssetTags returns every assetTag already persisted for the company.
// The import pipeline seeds its in-memory tag allocator from this single scan
// instead of a round trip per row.
func ExistingAssetTags(ctx context.Context, col *mongo.Collection) ([]string, error) {
	values, err := col.Distinct(ctx, "assetTag", bson.M{"assetTag": bson.M{"$nin": bson.A{"", nil}}})
	if err != nil {
		return nil, err
	}
	tags := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			tags = append(tags, s)
		}
	}
	return tags, nil
}
