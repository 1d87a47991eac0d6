package controller

import (
	"encoding/json"
	"log"
	"net/http"

	"cafedir/model"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// BulkImportCafes creates cafés from an uploaded xlsx file. Column layout:
// name, address, description, facilities (JSON object, optional). The first
// row is a header. Incomplete rows are skipped, not rejected.
func (cc *CafeController) BulkImportCafes(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Excel file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Unable to open Excel file"})
		return
	}
	defer file.Close()

	xl, err := excelize.OpenReader(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to parse Excel file"})
		return
	}
	defer xl.Close()

	rows, err := xl.GetRows(xl.GetSheetName(0))
	if err != nil || len(rows) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Excel must have at least one row of data"})
		return
	}

	var created []model.Cafe
	storeErr := cc.Store.Update(func(cafes []model.Cafe) ([]model.Cafe, error) {
		for rowIndex, row := range rows[1:] {
			if len(row) < 3 || row[0] == "" || row[1] == "" || row[2] == "" {
				log.Printf("skipping incomplete row %d", rowIndex+2)
				continue
			}

			facilities := map[string]any{}
			if len(row) > 3 && row[3] != "" {
				if err := json.Unmarshal([]byte(row[3]), &facilities); err != nil {
					log.Printf("skipping row %d: bad facilities: %v", rowIndex+2, err)
					continue
				}
			}

			cafe := model.Cafe{
				ID:          nextID(cafes),
				Name:        row[0],
				Address:     row[1],
				Description: row[2],
				Facilities:  facilities,
				Comments:    []model.Comment{},
				Photos:      []string{},
			}
			cafes = append(cafes, cafe)
			created = append(created, cafe)
		}
		return cafes, nil
	})
	if storeErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": storeErr.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"count":   len(created),
		"data":    created,
	})
}
