package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeColumnExactMatch(t *testing.T) {
	field, ok := NormalizeColumn("serialNumber")
	assert.True(t, ok)
	assert.Equal(t, FieldSerialNumber, field)
}

func TestNormalizeColumnCaseInsensitive(t *testing.T) {
	cases := map[string]string{
		"CATEGORY":     FieldCategory,
		"Brand":        FieldBrand,
		"asset tag":    FieldAssetTag,
		"SUB CATEGORY": FieldSubcategory,
	}
	for header, want := range cases {
		field, ok := NormalizeColumn(header)
		assert.True(t, ok, "header %q should map", header)
		assert.Equal(t, want, field, "header %q", header)
	}
}

func TestNormalizeColumnStripsWhitespace(t *testing.T) {
	field, ok := NormalizeColumn("  Serial  Number ")
	assert.True(t, ok)
	assert.Equal(t, FieldSerialNumber, field)

	field, ok = NormalizeColumn("AssetTag")
	assert.True(t, ok)
	assert.Equal(t, FieldAssetTag, field)
}

func TestNormalizeColumnAliases(t *testing.T) {
	cases := map[string]string{
		"Ram Size": FieldRAM1Size,
		"ramSize":  FieldRAM1Size,
		"Remark":   FieldNotes,
		"Buy By":   FieldCompany,
		"BuyBy":    FieldCompany,
	}
	for header, want := range cases {
		field, ok := NormalizeColumn(header)
		assert.True(t, ok, "header %q should map", header)
		assert.Equal(t, want, field, "header %q", header)
	}
}

func TestNormalizeColumnUnknown(t *testing.T) {
	_, ok := NormalizeColumn("Favourite Colour")
	assert.False(t, ok)

	_, ok = NormalizeColumn("")
	assert.False(t, ok)

	_, ok = NormalizeColumn("   ")
	assert.False(t, ok)
}

// Normalizing twice yields the same field, and canonical names map to
// themselves.
func TestNormalizeColumnIdempotent(t *testing.T) {
	canonical := []string{
		FieldAssetTag, FieldCategory, FieldSubcategory, FieldSite,
		FieldLocation, FieldStatus, FieldBrand, FieldModel,
		FieldSerialNumber, FieldNotes, FieldCompany, FieldRAM1Size,
	}
	for _, name := range canonical {
		field, ok := NormalizeColumn(name)
		assert.True(t, ok, "canonical %q should map", name)
		assert.Equal(t, name, field)

		again, ok := NormalizeColumn(field)
		assert.True(t, ok)
		assert.Equal(t, field, again)
	}
}
