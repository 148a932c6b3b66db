// importer/validate.go
package importer

import (
	"fmt"
	"strings"

	"assettracker/models"
)

// requiredFields must be non-empty after trimming. Everything else is
// optional and can be completed later through the edit flow.
var requiredFields = []string{
	FieldCategory,
	FieldSubcategory,
	FieldSite,
	FieldLocation,
	FieldBrand,
	FieldModel,
	FieldSerialNumber,
}

// statusSynonyms maps every accepted input spelling to its canonical status.
var statusSynonyms = map[string]string{
	"available":         models.StatusAvailable,
	"unassigned":        models.StatusAvailable,
	"assigned":          models.StatusAssigned,
	"maintenance":       models.StatusMaintenance,
	"under maintenance": models.StatusMaintenance,
	"broken":            models.StatusBroken,
	"damaged":           models.StatusBroken,
}

// NormalizeStatus maps a raw status value to one of the four canonical
// statuses. Empty or unrecognized input defaults to available, which matches
// the single-record create path.
func NormalizeStatus(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := statusSynonyms[s]; ok {
		return canonical
	}
	return models.StatusAvailable
}

// ValidStatus reports whether raw is an accepted status spelling.
func ValidStatus(raw string) bool {
	_, ok := statusSynonyms[strings.ToLower(strings.TrimSpace(raw))]
	return ok
}

// ValidateRow checks a normalized row and returns one message per problem.
// An empty slice means the row is valid.
func ValidateRow(row map[string]string) []string {
	var errs []string

	for _, field := range requiredFields {
		if strings.TrimSpace(row[field]) == "" {
			errs = append(errs, fmt.Sprintf("%s is required", field))
		}
	}

	// Status is optional; when present it must be a known spelling.
	if status := strings.TrimSpace(row[FieldStatus]); status != "" && !ValidStatus(status) {
		errs = append(errs, fmt.Sprintf("status %q must be one of: available, unassigned, assigned, maintenance, under maintenance, broken, damaged", status))
	}

	return errs
}
