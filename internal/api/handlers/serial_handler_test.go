package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func serialRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := &SerialHandler{}
	r.POST("/api/v1/serials/import", h.ImportSerials)
	return r
}

func workbookBytes(t *testing.T, col ...string) []byte {
	t.Helper()
	f := excelize.NewFile()
	for i, v := range col {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue("Sheet1", cell, v))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func postWorkbook(t *testing.T, r *gin.Engine, content []byte, existing ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", "serials.xlsx")
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	for _, e := range existing {
		require.NoError(t, w.WriteField("existing", e))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/serials/import", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestImportSerials(t *testing.T) {
	r := serialRouter()
	resp := postWorkbook(t, r, workbookBytes(t, "SN-100", "", "SN-101", "SN-100"))

	require.Equal(t, http.StatusOK, resp.Code)
	var body struct {
		SerialNumbers []string `json:"serialNumbers"`
		Filtered      int      `json:"filtered"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, []string{"SN-100", "SN-101"}, body.SerialNumbers)
	assert.Equal(t, 1, body.Filtered)
}

func TestImportSerials_FiltersAgainstExisting(t *testing.T) {
	r := serialRouter()
	resp := postWorkbook(t, r, workbookBytes(t, "SN-100", "SN-101"), "SN-100")

	require.Equal(t, http.StatusOK, resp.Code)
	var body struct {
		SerialNumbers []string `json:"serialNumbers"`
		Filtered      int      `json:"filtered"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, []string{"SN-101"}, body.SerialNumbers)
	assert.Equal(t, 1, body.Filtered)
}

func TestImportSerials_EmptyFirstColumn(t *testing.T) {
	r := serialRouter()
	resp := postWorkbook(t, r, workbookBytes(t))

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "No valid serial numbers")
}

func TestImportSerials_NotAWorkbook(t *testing.T) {
	r := serialRouter()
	resp := postWorkbook(t, r, []byte("plain text, not xlsx"))

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Error parsing Excel file")
}

func TestImportSerials_MissingFile(t *testing.T) {
	r := serialRouter()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/serials/import", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
