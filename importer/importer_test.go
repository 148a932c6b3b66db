package importer

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &rows[i]))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

var testHeader = []string{"category", "subcategory", "site", "location", "brand", "model", "serialNumber", "assetTag", "status", "company"}

func dataRow(serial, tag, status, company string) []string {
	return []string{"Computer Assets", "Laptop", "Head Office", "India", "Dell", "Latitude", serial, tag, status, company}
}

func newTestImporter(existing []string) *Importer {
	imp := New(BuildPrefixMap(nil), existing)
	imp.Now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return imp
}

func TestRunCreatesAssets(t *testing.T) {
	wb := buildWorkbook(t, [][]string{
		testHeader,
		dataRow("SN1", "", "", ""),
		dataRow("SN2", "", "assigned", ""),
	})

	result, err := newTestImporter(nil).Run(wb, "Acme", "acme-1")
	require.NoError(t, err)

	assert.Equal(t, 2, result.CreatedCount)
	assert.Equal(t, 0, result.ErrorCount)
	require.Len(t, result.Created, 2)

	first := result.Created[0]
	assert.Equal(t, "CA-LAP-001", first.AssetTag)
	assert.Equal(t, "available", first.Status)
	assert.Equal(t, "assigned", result.Created[1].Status)
	assert.Equal(t, "acme-1", first.CompanyID)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "2025-06-01T12:00:00Z", first.CreatedAt)
	assert.Equal(t, first.CreatedAt, first.UpdatedAt)
}

// A failing row is reported under its sheet row number (header is row 1,
// data starts at row 2) and never aborts the batch.
func TestRunRowErrorReporting(t *testing.T) {
	wb := buildWorkbook(t, [][]string{
		testHeader,
		dataRow("SN1", "", "", ""),
		dataRow("SN2", "", "", ""),
		dataRow("", "", "", ""), // third data row: missing serialNumber
		dataRow("SN4", "", "", ""),
		dataRow("SN5", "", "", ""),
	})

	result, err := newTestImporter(nil).Run(wb, "Acme", "")
	require.NoError(t, err)

	assert.Equal(t, 4, result.CreatedCount)
	assert.Equal(t, 1, result.ErrorCount)
	require.Len(t, result.RowErrors, 1)
	assert.Equal(t, 4, result.RowErrors[0].RowNumber)
	assert.Equal(t, "Row 4", result.RowErrors[0].AssetTag)
	assert.Contains(t, result.RowErrors[0].Errors, "serialNumber is required")
}

func TestRunSkipsBlankRows(t *testing.T) {
	wb := buildWorkbook(t, [][]string{
		testHeader,
		dataRow("SN1", "", "", ""),
		{"", "", "", "", "", "", "", "", "", ""},
		dataRow("SN2", "", "", ""),
	})

	result, err := newTestImporter(nil).Run(wb, "Acme", "")
	require.NoError(t, err)

	// The blank row yields neither a record nor an error.
	assert.Equal(t, 2, result.CreatedCount)
	assert.Equal(t, 0, result.ErrorCount)
	assert.Empty(t, result.RowErrors)
}

// The company column of the workbook never overrides the caller's tenant.
func TestRunForcesTenantFromCaller(t *testing.T) {
	wb := buildWorkbook(t, [][]string{
		testHeader,
		dataRow("SN1", "", "", "Some Other Company"),
	})

	result, err := newTestImporter(nil).Run(wb, "Acme", "")
	require.NoError(t, err)

	require.Len(t, result.Created, 1)
	assert.Equal(t, "Acme", result.Created[0].Company)
}

func TestRunUnknownStatusIsRowError(t *testing.T) {
	wb := buildWorkbook(t, [][]string{
		testHeader,
		dataRow("SN1", "", "retired", ""),
	})

	result, err := newTestImporter(nil).Run(wb, "Acme", "")
	require.NoError(t, err)

	assert.Equal(t, 0, result.CreatedCount)
	assert.Equal(t, 1, result.ErrorCount)
	require.Len(t, result.RowErrors, 1)
	assert.Contains(t, result.RowErrors[0].Errors[0], "retired")
}

// Generated tags never collide with persisted ones, explicit ones later in
// the batch, or each other.
func TestRunTagUniquenessWithinBatch(t *testing.T) {
	wb := buildWorkbook(t, [][]string{
		testHeader,
		dataRow("SN1", "", "", ""),
		dataRow("SN2", "CA-LAP-004", "", ""),
		dataRow("SN3", "", "", ""),
	})

	result, err := newTestImporter([]string{"CA-LAP-003"}).Run(wb, "Acme", "")
	require.NoError(t, err)
	require.Len(t, result.Created, 3)

	// Seeded past CA-LAP-003; CA-LAP-004 is claimed by the explicit row.
	assert.Equal(t, "CA-LAP-005", result.Created[0].AssetTag)
	assert.Equal(t, "CA-LAP-004", result.Created[1].AssetTag)
	assert.Equal(t, "CA-LAP-006", result.Created[2].AssetTag)

	seen := map[string]bool{"ca-lap-003": true}
	for _, a := range result.Created {
		key := a.AssetTag
		assert.False(t, seen[key], "duplicate tag %s", key)
		seen[key] = true
	}
}

func TestRunDuplicateExplicitTagIsRowError(t *testing.T) {
	wb := buildWorkbook(t, [][]string{
		testHeader,
		dataRow("SN1", "CA-LAP-009", "", ""),
		dataRow("SN2", "CA-LAP-009", "", ""),
		dataRow("SN3", "ca-lap-009", "", ""), // case-insensitive duplicate
	})

	result, err := newTestImporter(nil).Run(wb, "Acme", "")
	require.NoError(t, err)

	// First claim wins; the two repeats are rejected, not buffered.
	require.Len(t, result.Created, 1)
	assert.Equal(t, "CA-LAP-009", result.Created[0].AssetTag)
	assert.Equal(t, 2, result.ErrorCount)
	require.Len(t, result.RowErrors, 2)
	assert.Equal(t, 3, result.RowErrors[0].RowNumber)
	assert.Contains(t, result.RowErrors[0].Errors[0], "already in use")
	assert.Equal(t, 4, result.RowErrors[1].RowNumber)
}

func TestRunExplicitTagCollidingWithStoreIsRowError(t *testing.T) {
	wb := buildWorkbook(t, [][]string{
		testHeader,
		dataRow("SN1", "CA-LAP-002", "", ""),
		dataRow("SN2", "", "", ""),
	})

	result, err := newTestImporter([]string{"CA-LAP-002"}).Run(wb, "Acme", "")
	require.NoError(t, err)

	require.Len(t, result.Created, 1)
	assert.Equal(t, "CA-LAP-003", result.Created[0].AssetTag)
	assert.Equal(t, 1, result.ErrorCount)
	require.Len(t, result.RowErrors, 1)
	assert.Equal(t, 2, result.RowErrors[0].RowNumber)
	assert.Equal(t, "CA-LAP-002", result.RowErrors[0].AssetTag)
	assert.Equal(t, []string{`assetTag "CA-LAP-002" is already in use`}, result.RowErrors[0].Errors)
}

func TestRunDerivesPrefixForUnconfiguredPair(t *testing.T) {
	wb := buildWorkbook(t, [][]string{
		testHeader,
		{"Office Supplies", "Printer", "Head Office", "India", "HP", "LaserJet", "HP1", "", "", ""},
		{"Furniture", "Couch", "Head Office", "India", "Ikea", "Klippan", "IK1", "", "", ""},
	})

	result, err := newTestImporter(nil).Run(wb, "Acme", "")
	require.NoError(t, err)
	require.Len(t, result.Created, 2)

	// Printer is in the default table; Couch falls back to derivation.
	assert.Equal(t, "OS-PRT-001", result.Created[0].AssetTag)
	assert.Equal(t, "FU-COU-001", result.Created[1].AssetTag)
}

func TestRunHeaderVariantsAndDroppedColumns(t *testing.T) {
	wb := buildWorkbook(t, [][]string{
		{"Category", "SUB CATEGORY", "Site", "Location", "Brand", "Model", "Serial Number", "Asset Tag", "Remark", "Mystery Column"},
		{"Computer Assets", "Laptop", "HQ", "India", "Dell", "XPS", "SN9", "CA-LAP-100", "spare unit", "ignored"},
	})

	result, err := newTestImporter(nil).Run(wb, "Acme", "")
	require.NoError(t, err)
	require.Len(t, result.Created, 1)

	a := result.Created[0]
	assert.Equal(t, "Laptop", a.Subcategory)
	assert.Equal(t, "SN9", a.SerialNumber)
	assert.Equal(t, "CA-LAP-100", a.AssetTag)
	assert.Equal(t, "spare unit", a.Notes)
}

func TestRunOptionalFieldsDefaultToEmptyString(t *testing.T) {
	wb := buildWorkbook(t, [][]string{
		{"category", "subcategory", "site", "location", "brand", "model", "serialNumber"},
		{"Computer Assets", "Laptop", "HQ", "India", "Dell", "XPS", "SN1"},
	})

	result, err := newTestImporter(nil).Run(wb, "Acme", "")
	require.NoError(t, err)
	require.Len(t, result.Created, 1)

	a := result.Created[0]
	assert.Equal(t, "", a.Description)
	assert.Equal(t, "", a.Processor)
	assert.Equal(t, "", a.AssignedTo)
	assert.Equal(t, "", a.WarrantyStart)
	assert.Equal(t, "", a.Notes)
}

func TestRunHeaderOnlyWorkbookFails(t *testing.T) {
	wb := buildWorkbook(t, [][]string{testHeader})

	_, err := newTestImporter(nil).Run(wb, "Acme", "")
	assert.Error(t, err)
}

func TestRunMalformedWorkbookFails(t *testing.T) {
	_, err := newTestImporter(nil).Run([]byte("this is not a workbook"), "Acme", "")
	assert.Error(t, err)
}
