// importer/columns.go
package importer

import "strings"

// Canonical field names for an imported asset row.
const (
	FieldAssetTag            = "assetTag"
	FieldCategory            = "category"
	FieldSubcategory         = "subcategory"
	FieldSite                = "site"
	FieldLocation            = "location"
	FieldStatus              = "status"
	FieldBrand               = "brand"
	FieldModel               = "model"
	FieldSerialNumber        = "serialNumber"
	FieldDescription         = "description"
	FieldProcessor           = "processor"
	FieldProcessorGeneration = "processorGeneration"
	FieldTotalRAM            = "totalRAM"
	FieldRAM1Size            = "ram1Size"
	FieldRAM2Size            = "ram2Size"
	FieldGraphics            = "graphics"
	FieldOSVersion           = "osVersion"
	FieldWarrantyStart       = "warrantyStart"
	FieldWarrantyMonths      = "warrantyMonths"
	FieldWarrantyExpire      = "warrantyExpire"
	FieldAssignedTo          = "assignedTo"
	FieldDepartment          = "department"
	FieldNotes               = "notes"
	FieldCompany             = "company"
)

type columnAlias struct {
	header string
	field  string
}

// columnAliases maps workbook header spellings to canonical fields. Built
// once, ordered, so every lookup pass is deterministic. The company value is
// mapped here but ignored at write time; the tenant always comes from the
// caller.
var columnAliases = []columnAlias{
	{"assetTag", FieldAssetTag},
	{"Asset Tag", FieldAssetTag},
	{"category", FieldCategory},
	{"subcategory", FieldSubcategory},
	{"Sub Category", FieldSubcategory},
	{"site", FieldSite},
	{"location", FieldLocation},
	{"status", FieldStatus},
	{"brand", FieldBrand},
	{"model", FieldModel},
	{"serialNumber", FieldSerialNumber},
	{"Serial Number", FieldSerialNumber},
	{"description", FieldDescription},
	{"processor", FieldProcessor},
	{"processorGeneration", FieldProcessorGeneration},
	{"Processor Generation", FieldProcessorGeneration},
	{"totalRAM", FieldTotalRAM},
	{"Total RAM", FieldTotalRAM},
	{"ram1Size", FieldRAM1Size},
	{"Ram Size", FieldRAM1Size},
	{"ramSize", FieldRAM1Size},
	{"ram2Size", FieldRAM2Size},
	{"graphics", FieldGraphics},
	{"osVersion", FieldOSVersion},
	{"OS Version", FieldOSVersion},
	{"warrantyStart", FieldWarrantyStart},
	{"Warranty Start", FieldWarrantyStart},
	{"warrantyMonths", FieldWarrantyMonths},
	{"Warranty Months", FieldWarrantyMonths},
	{"warrantyExpire", FieldWarrantyExpire},
	{"Warranty Expire", FieldWarrantyExpire},
	{"assignedTo", FieldAssignedTo},
	{"Assigned To", FieldAssignedTo},
	{"department", FieldDepartment},
	{"notes", FieldNotes},
	{"Remark", FieldNotes},
	{"company", FieldCompany},
	{"Company", FieldCompany},
	{"Buy By", FieldCompany},
	{"buyBy", FieldCompany},
	{"BuyBy", FieldCompany},
}

func stripSpaces(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// NormalizeColumn maps one workbook header to its canonical field. Matching
// order: exact, then case-insensitive, then whitespace-stripped
// case-insensitive. Unrecognized headers return ok=false and their column is
// dropped by the orchestrator.
func NormalizeColumn(header string) (string, bool) {
	trimmed := strings.TrimSpace(header)
	if trimmed == "" {
		return "", false
	}

	for _, a := range columnAliases {
		if a.header == trimmed {
			return a.field, true
		}
	}

	lower := strings.ToLower(trimmed)
	for _, a := range columnAliases {
		if strings.ToLower(a.header) == lower {
			return a.field, true
		}
	}

	stripped := strings.ToLower(stripSpaces(trimmed))
	for _, a := range columnAliases {
		if strings.ToLower(stripSpaces(a.header)) == stripped {
			return a.field, true
		}
	}

	return "", false
}
