// handlers/history.go
package handlers

import (
	"context"
	"log"
	"time"

	"assettracker/models"
	"assettracker/websocket"
)

// logAssetHistory appends an audit event to the tenant's history collection.
// History is a side channel: failures are logged and swallowed, the primary
// mutation has already succeeded and must not be failed retroactively.
func logAssetHistory(company string, event models.HistoryEvent) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("history: recovered while recording event: %v", rec)
		}
	}()

	event.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	// Detached context: the request that triggered this may already be done.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := store.History(company).InsertOne(ctx, event); err != nil {
		log.Printf("history: failed to record %s event for asset %s: %v", event.Type, event.AssetID, err)
		return
	}

	websocket.BroadcastHistoryEvent(company, event)
}

// classifyTransition derives the semantic history event for an update by
// comparing previous and next assignee and status. First matching rule wins.
func classifyTransition(prevAssigned, nextAssigned, prevStatus, nextStatus string) (eventType, action string) {
	switch {
	case prevAssigned == "" && nextAssigned != "":
		return "checkout", "checked out"
	case prevAssigned != "" && nextAssigned == "":
		return "checkin", "checked in"
	case prevAssigned != "" && nextAssigned != "" && prevAssigned != nextAssigned:
		return "checkout", "re-assigned"
	case prevStatus != nextStatus && nextStatus == models.StatusMaintenance:
		return "maintenance", "moved to maintenance"
	case prevStatus != nextStatus && nextStatus == models.StatusBroken:
		return "broken", "marked broken"
	default:
		return "updated", "updated"
	}
}
