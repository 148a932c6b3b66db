// importer/importer.go
//
// The import pipeline: workbook bytes in, validated asset records out.
// Storage is the caller's job; Run never touches the database, which keeps
// the whole pipeline testable and means a failed run leaves the tenant store
// untouched.
package importer

import (
	"bytes"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"assettracker/models"
)

// RowError reports one failed source row, keyed by its 1-based sheet row
// number (the header is row 1, data starts at row 2).
type RowError struct {
	RowNumber int      `json:"rowNumber"`
	AssetTag  string   `json:"assetTag"`
	Errors    []string `json:"errors"`
}

// Result is the structured outcome of one import run.
type Result struct {
	Created      []models.Asset `json:"created"`
	CreatedCount int            `json:"createdCount"`
	ErrorCount   int            `json:"errorCount"`
	RowErrors    []RowError     `json:"rowErrors"`

	// RowsRead counts the data rows in the sheet, blank ones included.
	RowsRead int `json:"-"`
}

// Importer drives one bulk import: normalize columns, validate rows, assign
// tags, build records. Prefixes is the tenant's overlaid prefix map and
// ExistingTags the tags already persisted for the tenant; both are loaded
// once per run, never cached across requests.
type Importer struct {
	Prefixes     map[string]string
	ExistingTags []string
	Now          func() time.Time
}

func New(prefixes map[string]string, existingTags []string) *Importer {
	return &Importer{
		Prefixes:     prefixes,
		ExistingTags: existingTags,
		Now:          time.Now,
	}
}

// Run processes the workbook for one tenant. company is the hard tenant key
// and overwrites whatever the source data carries. A malformed or header-only
// workbook fails the whole call; a row that fails validation never does.
func (imp *Importer) Run(workbook []byte, company, companyID string) (*Result, error) {
	f, err := excelize.OpenReader(bytes.NewReader(workbook))
	if err != nil {
		return nil, fmt.Errorf("unable to read workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("unable to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("workbook has no data rows")
	}

	columns := imp.mapColumns(rows[0])
	dataRows := rows[1:]

	if companyID == "" {
		companyID = "default"
	}

	alloc := NewTagAllocator(imp.ExistingTags)

	persisted := make(map[string]bool, len(imp.ExistingTags))
	for _, t := range imp.ExistingTags {
		if t = strings.TrimSpace(t); t != "" {
			persisted[strings.ToLower(t)] = true
		}
	}

	// Pre-seed the reserved set with every explicit tag in the batch so a
	// generated tag can never collide with an explicit one further down.
	tagCol := -1
	for j, field := range columns {
		if field == FieldAssetTag {
			tagCol = j
			break
		}
	}
	if tagCol >= 0 {
		for _, row := range dataRows {
			if tagCol < len(row) {
				alloc.Reserve(row[tagCol])
			}
		}
	}

	claimed := make(map[string]bool)

	result := &Result{
		Created:   []models.Asset{},
		RowErrors: []RowError{},
		RowsRead:  len(dataRows),
	}
	now := imp.Now().UTC().Format(time.RFC3339)

	for i, row := range dataRows {
		rowNumber := i + 2 // header is sheet row 1

		if isBlankRow(row) {
			continue
		}

		normalized := make(map[string]string)
		for j, field := range columns {
			if field == "" || j >= len(row) {
				continue
			}
			normalized[field] = strings.TrimSpace(row[j])
		}

		if errs := ValidateRow(normalized); len(errs) > 0 {
			tag := normalized[FieldAssetTag]
			if tag == "" {
				tag = fmt.Sprintf("Row %d", rowNumber)
			}
			result.ErrorCount++
			result.RowErrors = append(result.RowErrors, RowError{
				RowNumber: rowNumber,
				AssetTag:  tag,
				Errors:    errs,
			})
			continue
		}

		tag := normalized[FieldAssetTag]
		if tag == "" {
			prefix := ResolvePrefix(normalized[FieldCategory], normalized[FieldSubcategory], imp.Prefixes)
			tag = alloc.Next(prefix)
		} else {
			key := strings.ToLower(tag)
			if persisted[key] || claimed[key] {
				result.ErrorCount++
				result.RowErrors = append(result.RowErrors, RowError{
					RowNumber: rowNumber,
					AssetTag:  tag,
					Errors:    []string{fmt.Sprintf("assetTag %q is already in use", tag)},
				})
				continue
			}
			claimed[key] = true
		}

		asset := models.Asset{
			ID:                  uuid.NewString(),
			AssetTag:            tag,
			Category:            normalized[FieldCategory],
			Subcategory:         normalized[FieldSubcategory],
			Site:                normalized[FieldSite],
			Location:            normalized[FieldLocation],
			Status:              NormalizeStatus(normalized[FieldStatus]),
			Brand:               normalized[FieldBrand],
			Model:               normalized[FieldModel],
			SerialNumber:        normalized[FieldSerialNumber],
			Description:         normalized[FieldDescription],
			Processor:           normalized[FieldProcessor],
			ProcessorGeneration: normalized[FieldProcessorGeneration],
			TotalRAM:            normalized[FieldTotalRAM],
			RAM1Size:            normalized[FieldRAM1Size],
			RAM2Size:            normalized[FieldRAM2Size],
			Graphics:            normalized[FieldGraphics],
			OSVersion:           normalized[FieldOSVersion],
			WarrantyStart:       normalized[FieldWarrantyStart],
			WarrantyMonths:      normalized[FieldWarrantyMonths],
			WarrantyExpire:      normalized[FieldWarrantyExpire],
			AssignedTo:          normalized[FieldAssignedTo],
			Department:          normalized[FieldDepartment],
			Notes:               normalized[FieldNotes],
			CompanyID:           companyID,
			// Tenant integrity: the company column of the workbook is
			// deliberately ignored here.
			Company:   company,
			CreatedAt: now,
			UpdatedAt: now,
		}

		result.Created = append(result.Created, asset)
		result.CreatedCount++
	}

	return result, nil
}

// mapColumns resolves each header to its canonical field. A header that two
// columns normalize to keeps the first column (first-wins); unrecognized
// headers are dropped and logged, never fatal.
func (imp *Importer) mapColumns(header []string) []string {
	columns := make([]string, len(header))
	claimed := make(map[string]int)
	var dropped []string

	for j, h := range header {
		field, ok := NormalizeColumn(h)
		if !ok {
			if strings.TrimSpace(h) != "" {
				dropped = append(dropped, h)
			}
			continue
		}
		if first, dup := claimed[field]; dup {
			log.Printf("import: duplicate column %q for field %s, keeping column %d", h, field, first+1)
			continue
		}
		claimed[field] = j
		columns[j] = field
	}

	if len(dropped) > 0 {
		log.Printf("import: ignoring unrecognized columns: %s", strings.Join(dropped, ", "))
	}
	return columns
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
