// handlers/asset_handler.go
package handlers

import (
	"context"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"assettracker/database"
	"assettracker/importer"
	"assettracker/models"
	"assettracker/utils"
)

// ListAssets returns the tenant's assets, falling back to the shared legacy
// store for records created before tenant databases existed.
func ListAssets(w http.ResponseWriter, r *http.Request) {
	companyID := r.URL.Query().Get("companyId")
	company := r.URL.Query().Get("company")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	tenantFind := database.CollectionFinder(store.Assets(company))
	legacyFind := database.CollectionFinder(store.LegacyAssets())

	assets, err := database.FindAssetsWithFallback(ctx, tenantFind, legacyFind, company, companyID)
	if err != nil {
		log.Printf("assets Find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}

	log.Printf("returned %d assets for company %q", len(assets), company)
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    assets,
		"count":   len(assets),
	})
}

// GetAsset fetches one asset by id or asset tag (case-insensitive).
func GetAsset(w http.ResponseWriter, r *http.Request) {
	assetID := mux.Vars(r)["assetId"]
	company := r.URL.Query().Get("company")

	if assetID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Asset ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{"$or": bson.A{
		bson.M{"id": assetID},
		bson.M{"assetTag": assetID},
		bson.M{"assetTag": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(assetID) + "$", Options: "i"}},
	}}

	var asset models.Asset
	err := store.Assets(company).FindOne(ctx, filter).Decode(&asset)
	if err == mongo.ErrNoDocuments {
		// Older records may still live in the shared store.
		err = store.LegacyAssets().FindOne(ctx, filter).Decode(&asset)
	}
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Asset not found")
			return
		}
		log.Printf("asset FindOne error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    asset,
	})
}

// CreateAsset creates a single asset. The company value in the body is the
// tenant key; timestamps and id are always server-assigned.
func CreateAsset(w http.ResponseWriter, r *http.Request) {
	var asset models.Asset
	if err := utils.ParseJSON(r, &asset); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	company := strings.TrimSpace(asset.Company)
	store.WarnEmptyCompany(company, "create asset")

	now := time.Now().UTC().Format(time.RFC3339)
	asset.ObjectID = primitive.NilObjectID
	if asset.ID == "" {
		asset.ID = uuid.NewString()
	}
	asset.Status = importer.NormalizeStatus(asset.Status)
	asset.Company = company
	asset.CreatedAt = now
	asset.UpdatedAt = now

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if _, err := store.Assets(company).InsertOne(ctx, asset); err != nil {
		log.Printf("asset InsertOne error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to create asset")
		return
	}

	logAssetHistory(company, models.HistoryEvent{
		Type:        "created",
		Action:      "created",
		CompanyID:   asset.CompanyID,
		Company:     asset.Company,
		AssetID:     asset.ID,
		AssetTag:    asset.AssetTag,
		Description: firstNonEmpty(asset.Model, asset.Category),
		Status:      asset.Status,
	})

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    asset,
		"message": "Asset created successfully",
	})
}

// UpdateAsset applies a partial field set to one asset and records the
// semantic transition (checkout, checkin, maintenance, ...) in the history.
func UpdateAsset(w http.ResponseWriter, r *http.Request) {
	var body map[string]interface{}
	if err := utils.ParseJSON(r, &body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	id, _ := body["id"].(string)
	if id == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Asset ID is required")
		return
	}
	company, _ := body["company"].(string)
	company = strings.TrimSpace(company)
	store.WarnEmptyCompany(company, "update asset")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	collection := store.Assets(company)

	// Previous state for history diffing.
	var prev models.Asset
	if err := collection.FindOne(ctx, bson.M{"id": id}).Decode(&prev); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Asset not found")
			return
		}
		log.Printf("asset FindOne error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}

	update := buildAssetUpdate(body)
	update["updatedAt"] = time.Now().UTC().Format(time.RFC3339)

	result, err := collection.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": update})
	if err != nil {
		log.Printf("asset UpdateOne error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to update asset")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Asset not found")
		return
	}

	prevAssigned := prev.AssignedTo
	nextAssigned := prevAssigned
	if v, ok := body["assignedTo"].(string); ok {
		nextAssigned = v
	}
	prevStatus := strings.ToLower(prev.Status)
	nextStatus := prevStatus
	if v, ok := body["status"].(string); ok {
		nextStatus = strings.ToLower(importer.NormalizeStatus(v))
	}

	eventType, action := classifyTransition(prevAssigned, nextAssigned, prevStatus, nextStatus)

	department := prev.Department
	if v, ok := body["department"].(string); ok {
		department = v
	}

	logAssetHistory(company, models.HistoryEvent{
		Type:         eventType,
		Action:       action,
		CompanyID:    prev.CompanyID,
		Company:      firstNonEmpty(company, prev.Company),
		AssetID:      id,
		AssetTag:     prev.AssetTag,
		Description:  firstNonEmpty(prev.Model, prev.Category),
		AssignedTo:   nextAssigned,
		AssignedFrom: prevAssigned,
		Status:       nextStatus,
		Department:   department,
	})

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Asset updated successfully",
	})
}

// DeleteAsset hard-removes an asset, keeping a final history event with its
// last known state.
func DeleteAsset(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	company := strings.TrimSpace(r.URL.Query().Get("company"))

	if id == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Asset ID is required")
		return
	}
	store.WarnEmptyCompany(company, "delete asset")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	collection := store.Assets(company)

	var prev models.Asset
	havePrev := true
	if err := collection.FindOne(ctx, bson.M{"id": id}).Decode(&prev); err != nil {
		havePrev = false
	}

	result, err := collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		log.Printf("asset DeleteOne error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to delete asset")
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Asset not found")
		return
	}

	event := models.HistoryEvent{
		Type:    "deleted",
		Action:  "deleted",
		AssetID: id,
		Company: company,
	}
	if havePrev {
		event.CompanyID = prev.CompanyID
		event.Company = firstNonEmpty(company, prev.Company)
		event.AssetTag = prev.AssetTag
		event.Description = firstNonEmpty(prev.Model, prev.Category)
		event.AssignedTo = prev.AssignedTo
		event.Status = strings.ToLower(prev.Status)
		event.Department = prev.Department
	}
	logAssetHistory(firstNonEmpty(company, prev.Company), event)

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Asset deleted successfully",
	})
}

// buildAssetUpdate turns the request body into a $set map. The mongo ids are
// never client-writable, and status is folded to its canonical value so
// synonyms like "Under Maintenance" or "DAMAGED" never reach storage.
func buildAssetUpdate(body map[string]interface{}) bson.M {
	update := bson.M{}
	for k, v := range body {
		if k == "id" || k == "_id" {
			continue
		}
		if k == "status" {
			if s, ok := v.(string); ok {
				v = importer.NormalizeStatus(s)
			}
		}
		update[k] = v
	}
	return update
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
