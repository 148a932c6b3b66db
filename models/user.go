// models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Role         string             `bson:"role" json:"role"`
	Company      string             `bson:"company" json:"company"`
	CompanyID    string             `bson:"companyId,omitempty" json:"companyId,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	DeletedAt    *time.Time         `bson:"deletedAt,omitempty" json:"-"`
}
