// models/category.go
package models

// Subcategory carries the tag prefix used when generating asset tags, e.g.
// "Laptop" under "Computer Assets" -> CA-LAP.
type Subcategory struct {
	ID        string `bson:"id" json:"id"`
	Name      string `bson:"name" json:"name"`
	Prefix    string `bson:"prefix" json:"prefix"`
	TagPrefix string `bson:"tagPrefix" json:"tagPrefix"`
}

type Category struct {
	ID            string        `bson:"id" json:"id"`
	Name          string        `bson:"name" json:"name"`
	Prefix        string        `bson:"prefix" json:"prefix"`
	Subcategories []Subcategory `bson:"subcategories" json:"subcategories"`
}

// CategorySettings is the tenant-scoped category/prefix configuration
// document. Read-only from the import pipeline's perspective.
type CategorySettings struct {
	CompanyID  string     `bson:"companyId" json:"companyId"`
	Categories []Category `bson:"categories" json:"categories"`
	CreatedAt  string     `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt  string     `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

type Location struct {
	ID         string `bson:"id" json:"id"`
	Name       string `bson:"name" json:"name"`
	Type       string `bson:"type" json:"type"` // Site or Location
	Address    string `bson:"address" json:"address"`
	Country    string `bson:"country" json:"country"`
	ParentSite string `bson:"parentSite" json:"parentSite"`
}

type LocationSettings struct {
	CompanyID string     `bson:"companyId" json:"companyId"`
	Locations []Location `bson:"locations" json:"locations"`
	CreatedAt string     `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt string     `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
