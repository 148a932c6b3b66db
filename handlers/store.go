// handlers/store.go
package handlers

import (
	"assettracker/database"
)

var store *database.Router

// InitStore wires the tenant router once the database connection is up.
func InitStore() {
	store = database.NewRouter(database.Client)
}
