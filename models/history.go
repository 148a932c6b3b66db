// models/history.go
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HistoryEvent is an append-only record of one asset lifecycle transition.
// Events are never mutated or deleted.
type HistoryEvent struct {
	ObjectID primitive.ObjectID `bson:"_id,omitempty" json:"-"`

	// created | checkout | checkin | maintenance | broken | updated | deleted
	Type   string `bson:"type" json:"type"`
	Action string `bson:"action" json:"action"`

	CompanyID string `bson:"companyId,omitempty" json:"companyId,omitempty"`
	Company   string `bson:"company,omitempty" json:"company,omitempty"`

	AssetID     string `bson:"assetId" json:"assetId"`
	AssetTag    string `bson:"assetTag,omitempty" json:"assetTag,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`

	AssignedTo   string `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	AssignedFrom string `bson:"assignedFrom,omitempty" json:"assignedFrom,omitempty"`
	Status       string `bson:"status,omitempty" json:"status,omitempty"`
	Department   string `bson:"department,omitempty" json:"department,omitempty"`

	CreatedAt string `bson:"createdAt" json:"createdAt"`
}
