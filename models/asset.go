// models/asset.go
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Asset is one tracked item. All optional spec fields are stored as empty
// strings, never null, so the UI can always render a value. Timestamps are
// ISO-8601 strings set by the server.
type Asset struct {
	ObjectID primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ID       string             `bson:"id" json:"id"`
	AssetTag string             `bson:"assetTag" json:"assetTag"`

	Category    string `bson:"category" json:"category"`
	Subcategory string `bson:"subcategory" json:"subcategory"`
	Site        string `bson:"site" json:"site"`
	Location    string `bson:"location" json:"location"`

	// available | assigned | maintenance | broken
	Status string `bson:"status" json:"status"`

	Brand        string `bson:"brand" json:"brand"`
	Model        string `bson:"model" json:"model"`
	SerialNumber string `bson:"serialNumber" json:"serialNumber"`
	Description  string `bson:"description" json:"description"`

	Processor           string `bson:"processor" json:"processor"`
	ProcessorGeneration string `bson:"processorGeneration" json:"processorGeneration"`
	TotalRAM            string `bson:"totalRAM" json:"totalRAM"`
	RAM1Size            string `bson:"ram1Size" json:"ram1Size"`
	RAM2Size            string `bson:"ram2Size" json:"ram2Size"`
	Graphics            string `bson:"graphics" json:"graphics"`
	OSVersion           string `bson:"osVersion" json:"osVersion"`

	WarrantyStart  string `bson:"warrantyStart" json:"warrantyStart"`
	WarrantyMonths string `bson:"warrantyMonths" json:"warrantyMonths"`
	WarrantyExpire string `bson:"warrantyExpire" json:"warrantyExpire"`

	AssignedTo string `bson:"assignedTo" json:"assignedTo"`
	Department string `bson:"department" json:"department"`
	Notes      string `bson:"notes" json:"notes"`

	// CompanyID is a soft filter; Company is the hard tenant key and is
	// always the caller-supplied value, never taken from imported data.
	CompanyID string `bson:"companyId" json:"companyId"`
	Company   string `bson:"company" json:"company"`

	CreatedAt string `bson:"createdAt" json:"createdAt"`
	UpdatedAt string `bson:"updatedAt" json:"updatedAt"`
}

// Canonical status values.
const (
	StatusAvailable   = "available"
	StatusAssigned    = "assigned"
	StatusMaintenance = "maintenance"
	StatusBroken      = "broken"
)
