// handlers/settings_handler.go
package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"assettracker/models"
	"assettracker/utils"
)

// defaultCategories seeds a tenant's category configuration on first read.
// The tag prefixes here mirror the import pipeline's built-in table.
func defaultCategories() []models.Category {
	return []models.Category{
		{
			ID: "1", Name: "Computer Assets", Prefix: "CA",
			Subcategories: []models.Subcategory{
				{ID: "1-1", Name: "Laptop", Prefix: "LAP", TagPrefix: "CA-LAP"},
				{ID: "1-2", Name: "Desktop", Prefix: "DESK", TagPrefix: "CA-DESK"},
				{ID: "1-3", Name: "Server", Prefix: "SRV", TagPrefix: "CA-SRV"},
			},
		},
		{
			ID: "2", Name: "External Equipment", Prefix: "EE",
			Subcategories: []models.Subcategory{
				{ID: "2-1", Name: "Keyboard", Prefix: "KBD", TagPrefix: "EE-KBD"},
				{ID: "2-2", Name: "Mouse", Prefix: "MSE", TagPrefix: "EE-MSE"},
				{ID: "2-3", Name: "Charger", Prefix: "CHG", TagPrefix: "EE-CHG"},
				{ID: "2-4", Name: "LCD Monitor", Prefix: "LCD", TagPrefix: "EE-LCD"},
				{ID: "2-5", Name: "Bag", Prefix: "BAG", TagPrefix: "EE-BAG"},
			},
		},
		{
			ID: "3", Name: "Office Supplies", Prefix: "OS",
			Subcategories: []models.Subcategory{
				{ID: "3-1", Name: "Printer", Prefix: "PRT", TagPrefix: "OS-PRT"},
				{ID: "3-2", Name: "Scanner", Prefix: "SCN", TagPrefix: "OS-SCN"},
			},
		},
	}
}

func defaultLocations() []models.Location {
	return []models.Location{
		{ID: "1", Name: "Head Office", Type: "Site"},
		{ID: "2", Name: "Branch Office", Type: "Site"},
		{ID: "3", Name: "Warehouse", Type: "Site"},
		{ID: "4", Name: "Floor 1", Type: "Location", ParentSite: "Head Office"},
		{ID: "5", Name: "Floor 2", Type: "Location", ParentSite: "Head Office"},
		{ID: "6", Name: "Floor 3", Type: "Location", ParentSite: "Head Office"},
	}
}

// GetCategorySettings returns the tenant's category/prefix configuration,
// seeding the defaults when none exists yet.
func GetCategorySettings(w http.ResponseWriter, r *http.Request) {
	company := r.URL.Query().Get("company")
	companyID := r.URL.Query().Get("companyId")
	if companyID == "" {
		companyID = "default"
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	collection := store.Categories(company)

	var settings models.CategorySettings
	err := collection.FindOne(ctx, bson.M{"companyId": companyID}).Decode(&settings)
	if err == mongo.ErrNoDocuments {
		now := time.Now().UTC().Format(time.RFC3339)
		settings = models.CategorySettings{
			CompanyID:  companyID,
			Categories: defaultCategories(),
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if _, err := collection.InsertOne(ctx, settings); err != nil {
			log.Printf("category settings seed error: %v", err)
		}
	} else if err != nil {
		log.Printf("category settings Find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to fetch categories")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    bson.M{"companyId": companyID, "categories": settings.Categories},
	})
}

// SaveCategorySettings upserts the tenant's category configuration.
func SaveCategorySettings(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Company    string            `json:"company"`
		CompanyID  string            `json:"companyId"`
		Categories []models.Category `json:"categories"`
	}
	if err := utils.ParseJSON(r, &body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if body.Categories == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "categories is required (array)")
		return
	}
	if body.CompanyID == "" {
		body.CompanyID = "default"
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := store.Categories(body.Company).UpdateOne(ctx,
		bson.M{"companyId": body.CompanyID},
		bson.M{
			"$set":         bson.M{"categories": body.Categories, "updatedAt": now},
			"$setOnInsert": bson.M{"createdAt": now},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		log.Printf("category settings upsert error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to save categories")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Categories saved",
		"data":    bson.M{"companyId": body.CompanyID, "categories": body.Categories},
	})
}

// GetLocationSettings returns the tenant's site/location configuration,
// seeding defaults on first read.
func GetLocationSettings(w http.ResponseWriter, r *http.Request) {
	company := r.URL.Query().Get("company")
	companyID := r.URL.Query().Get("companyId")
	if companyID == "" {
		companyID = "default"
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	collection := store.Locations(company)

	var settings models.LocationSettings
	err := collection.FindOne(ctx, bson.M{"companyId": companyID}).Decode(&settings)
	if err == mongo.ErrNoDocuments {
		now := time.Now().UTC().Format(time.RFC3339)
		settings = models.LocationSettings{
			CompanyID: companyID,
			Locations: defaultLocations(),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := collection.InsertOne(ctx, settings); err != nil {
			log.Printf("location settings seed error: %v", err)
		}
	} else if err != nil {
		log.Printf("location settings Find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to fetch locations")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    bson.M{"companyId": companyID, "locations": settings.Locations},
	})
}

// SaveLocationSettings upserts the tenant's site/location configuration.
func SaveLocationSettings(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Company   string            `json:"company"`
		CompanyID string            `json:"companyId"`
		Locations []models.Location `json:"locations"`
	}
	if err := utils.ParseJSON(r, &body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if body.Locations == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "locations is required (array)")
		return
	}
	if body.CompanyID == "" {
		body.CompanyID = "default"
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := store.Locations(body.Company).UpdateOne(ctx,
		bson.M{"companyId": body.CompanyID},
		bson.M{
			"$set":         bson.M{"locations": body.Locations, "updatedAt": now},
			"$setOnInsert": bson.M{"createdAt": now},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		log.Printf("location settings upsert error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to save locations")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Locations saved",
		"data":    bson.M{"companyId": body.CompanyID, "locations": body.Locations},
	})
}
