// handlers/import_handler.go
package handlers

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"assettracker/database"
	"assettracker/importer"
	"assettracker/models"
	"assettracker/utils"
)

const maxUploadBytes = 32 << 20

// ImportAssets handles the bulk workbook upload for one tenant. The company
// form value is the hard tenant key; rows never override it.
func ImportAssets(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	company := strings.TrimSpace(r.FormValue("company"))
	if company == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Company name is required")
		return
	}
	companyID := r.FormValue("companyId")

	file, _, err := r.FormFile("file")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Unable to read uploaded file")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	// Per-request state: the prefix map and the persisted tag set are
	// rebuilt for every import rather than cached across requests.
	prefixes := loadPrefixMap(ctx, company, companyID)

	existing, err := database.ExistingAssetTags(ctx, store.Assets(company))
	if err != nil {
		log.Printf("import: failed to load existing asset tags for %q: %v", company, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to load existing asset tags")
		return
	}

	imp := importer.New(prefixes, existing)
	result, err := imp.Run(data, company, companyID)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if len(result.Created) > 0 {
		docs := make([]interface{}, len(result.Created))
		for i, a := range result.Created {
			docs[i] = a
		}
		if _, err := store.Assets(company).InsertMany(ctx, docs); err != nil {
			// The batch may be partially persisted; InsertMany is not atomic.
			log.Printf("import: batch insert failed for %q: %v", company, err)
			utils.RespondWithError(w, http.StatusInternalServerError, "failed to save imported assets")
			return
		}
		log.Printf("import: saved %d assets for %q", len(result.Created), company)
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"created":      result.Created,
		"createdCount": result.CreatedCount,
		"errorCount":   result.ErrorCount,
		"rowErrors":    result.RowErrors,
		"message":      fmt.Sprintf("Processed %d rows: %d created, %d errors", result.RowsRead, result.CreatedCount, result.ErrorCount),
	})
}

// loadPrefixMap overlays the tenant's category configuration on the built-in
// defaults. Configuration is optional; any read problem falls back to the
// defaults and is logged, it never blocks the import.
func loadPrefixMap(ctx context.Context, company, companyID string) map[string]string {
	if companyID == "" {
		companyID = "default"
	}

	var settings models.CategorySettings
	err := store.Categories(company).FindOne(ctx, bson.M{"companyId": companyID}).Decode(&settings)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			log.Printf("import: failed to load category settings for %q: %v", company, err)
		}
		return importer.BuildPrefixMap(nil)
	}
	return importer.BuildPrefixMap(settings.Categories)
}

// templateColumns matches the canonical field set; required fields first.
var templateColumns = []string{
	"category", "subcategory", "site", "location", "brand", "model", "serialNumber",
	"assetTag", "status", "description", "processor", "processorGeneration",
	"totalRAM", "ram1Size", "ram2Size", "graphics", "osVersion",
	"warrantyStart", "warrantyMonths", "warrantyExpire",
	"assignedTo", "department", "notes",
}

var templateSample = []string{
	"Computer Assets", "Laptop", "Head Office", "India", "Dell", "Latitude 5520", "DL123456789",
	"", "available", "", "Intel i5", "11th Gen",
	"16GB", "8GB", "8GB", "", "",
	"2024-01-01", "36", "2027-01-01",
	"", "", "",
}

// DownloadTemplate returns an import workbook with the canonical header row
// and one example row.
func DownloadTemplate(w http.ResponseWriter, r *http.Request) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &templateColumns); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to build template")
		return
	}
	if err := f.SetSheetRow(sheet, "A2", &templateSample); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to build template")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="asset-import-template.xlsx"`)
	if err := f.Write(w); err != nil {
		log.Printf("template write error: %v", err)
	}
}
