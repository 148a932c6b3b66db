// handlers/history_handler.go
package handlers

import (
	"context"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"assettracker/models"
	"assettracker/utils"
)

// ListAssetHistory returns audit events for the tenant, newest first.
// Filters: companyId, type, assetId/assetTag (either matches both fields),
// limit (1..200, default 50), latestOnly (one entry per asset).
func ListAssetHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	company := q.Get("company")
	companyID := q.Get("companyId")
	eventType := strings.ToLower(q.Get("type"))
	assetID := q.Get("assetId")
	assetTag := q.Get("assetTag")
	latestOnly := q.Get("latestOnly") == "true"

	limit := 50
	if raw := q.Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	if limit < 1 {
		limit = 1
	}
	if limit > 200 {
		limit = 200
	}

	filter := bson.M{}
	if company != "" {
		// Exact match, case-insensitive. Matters for events recorded in the
		// shared base database before tenant databases existed.
		filter["company"] = primitive.Regex{Pattern: "^" + regexp.QuoteMeta(company) + "$", Options: "i"}
	}
	if companyID != "" {
		filter["companyId"] = companyID
	}
	if eventType != "" {
		filter["type"] = eventType
	}
	if assetID != "" || assetTag != "" {
		search := firstNonEmpty(assetID, assetTag)
		filter["$or"] = bson.A{
			bson.M{"assetId": search},
			bson.M{"assetTag": search},
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	collection := store.History(company)
	findOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if !latestOnly {
		findOpts = findOpts.SetLimit(int64(limit))
	}

	cursor, err := collection.Find(ctx, filter, findOpts)
	if err != nil {
		log.Printf("history Find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "database query failed")
		return
	}
	defer cursor.Close(ctx)

	var events []models.HistoryEvent
	if err = cursor.All(ctx, &events); err != nil {
		log.Printf("history cursor decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to decode history")
		return
	}
	if events == nil {
		events = []models.HistoryEvent{}
	}

	if latestOnly {
		events = latestPerAsset(events, limit)
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    events,
		"count":   len(events),
	})
}

// latestPerAsset keeps the newest event per asset; input is already sorted
// newest first.
func latestPerAsset(events []models.HistoryEvent, limit int) []models.HistoryEvent {
	seen := make(map[string]bool, len(events))
	out := make([]models.HistoryEvent, 0, limit)
	for _, e := range events {
		key := firstNonEmpty(e.AssetID, e.AssetTag)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}
	return out
}
