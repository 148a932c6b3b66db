package routes

import (
	"github.com/gorilla/mux"

	"assettracker/handlers"
	"assettracker/middleware"
	"assettracker/websocket"
)

// HTTP method constants for better maintainability
var (
	MethodsGetOnly    = []string{"GET", "OPTIONS"}
	MethodsPostOnly   = []string{"POST", "OPTIONS"}
	MethodsPutOnly    = []string{"PUT", "OPTIONS"}
	MethodsDeleteOnly = []string{"DELETE", "OPTIONS"}
)

const (
	PathAssetTracker = "/api/asset-tracker"
	PathHealth       = "/health"
)

func RegisterRoutes(r *mux.Router) {
	// ====================
	// HEALTH CHECK (Public)
	// ====================
	r.HandleFunc(PathHealth, handlers.HealthCheck).Methods(MethodsGetOnly...)

	// ====================
	// AUTHENTICATION ROUTES (Public - No auth required)
	// ====================
	r.HandleFunc("/api/auth/login", handlers.Login).Methods(MethodsPostOnly...)
	r.HandleFunc("/api/auth/validate", handlers.ValidateToken).Methods(MethodsGetOnly...)

	// Live history feed (auth handled at upgrade, company scoped)
	r.HandleFunc(PathAssetTracker+"/feed", websocket.ServeHistoryFeed)

	// ====================
	// PROTECTED API ROUTES (Require authentication)
	// ====================
	api := r.PathPrefix(PathAssetTracker).Subrouter()
	api.Use(middleware.AuthMiddleware)

	// Asset CRUD
	api.HandleFunc("/assets", handlers.ListAssets).Methods(MethodsGetOnly...)
	api.HandleFunc("/assets", handlers.CreateAsset).Methods(MethodsPostOnly...)
	api.HandleFunc("/assets", handlers.UpdateAsset).Methods(MethodsPutOnly...)
	api.HandleFunc("/assets", handlers.DeleteAsset).Methods(MethodsDeleteOnly...)
	api.HandleFunc("/assets/{assetId}", handlers.GetAsset).Methods(MethodsGetOnly...)

	// Bulk import
	api.HandleFunc("/bulk-upload", handlers.ImportAssets).Methods(MethodsPostOnly...)
	api.HandleFunc("/template", handlers.DownloadTemplate).Methods(MethodsGetOnly...)

	// Audit history
	api.HandleFunc("/history", handlers.ListAssetHistory).Methods(MethodsGetOnly...)

	// Settings
	api.HandleFunc("/settings/categories", handlers.GetCategorySettings).Methods(MethodsGetOnly...)
	api.HandleFunc("/settings/categories", handlers.SaveCategorySettings).Methods(MethodsPutOnly...)
	api.HandleFunc("/settings/locations", handlers.GetLocationSettings).Methods(MethodsGetOnly...)
	api.HandleFunc("/settings/locations", handlers.SaveLocationSettings).Methods(MethodsPutOnly...)
}
