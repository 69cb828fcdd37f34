// server/internal/api/handlers/serial_handler.go
package handlers

import (
	"errors"
	"net/http"

	"warranty-cert-api-server/internal/serials"

	"github.com/gin-gonic/gin"
)

type SerialHandler struct{}

// ImportSerials parses an uploaded .xlsx workbook and returns the serial
// numbers from its first column, deduplicated against the list the form
// already holds. The response reports how many entries were filtered so the
// client can tell the user.
func (h *SerialHandler) ImportSerials(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "An Excel file is required"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer f.Close()

	parsed, err := serials.ParseWorkbook(f)
	if err != nil {
		if errors.Is(err, serials.ErrNoSerials) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No valid serial numbers found in the first column of the Excel file."})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error parsing Excel file. Please ensure it is a valid Excel file."})
		return
	}

	existing := c.PostFormArray("existing")
	added, filtered := serials.MergeNew(existing, parsed)

	c.JSON(http.StatusOK, gin.H{
		"serialNumbers": added,
		"filtered":      filtered,
	})
}
