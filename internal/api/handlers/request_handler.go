// server/internal/api/handlers/request_handler.go
package handlers

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"warranty-cert-api-server/config"
	"warranty-cert-api-server/internal/idgen"
	"warranty-cert-api-server/internal/models"
	"warranty-cert-api-server/internal/s3"
	"warranty-cert-api-server/internal/serials"
	"warranty-cert-api-server/internal/store"

	"github.com/gin-gonic/gin"
)

// RequestStore is what the handlers need from the persistence layer.
type RequestStore interface {
	GetByID(ctx context.Context, id string) (*models.Request, error)
	Create(ctx context.Context, req *models.Request) (string, error)
	Update(ctx context.Context, req *models.Request) error
}

// ImageUploader pushes evidence images to the object store before any
// database write happens.
type ImageUploader interface {
	UploadAll(ctx context.Context, files []s3.File) ([]string, error)
}

type RequestHandler struct {
	Store    RequestStore
	Uploader ImageUploader
	Cfg      config.Config
}

// requiredFields are the form fields a submission cannot omit.
// customerAlternate and customerAlternateEmail stay optional.
var requiredFields = []string{
	"integratorName",
	"officeAddress",
	"contactPerson",
	"contactNo",
	"email",
	"customerProjectSite",
	"customerContact",
	"customerEmail",
}

func bindRequestFields(c *gin.Context) (models.Request, []string) {
	req := models.Request{
		IntegratorName:         strings.TrimSpace(c.PostForm("integratorName")),
		OfficeAddress:          strings.TrimSpace(c.PostForm("officeAddress")),
		ContactPerson:          strings.TrimSpace(c.PostForm("contactPerson")),
		ContactNo:              strings.TrimSpace(c.PostForm("contactNo")),
		Email:                  strings.TrimSpace(c.PostForm("email")),
		CustomerProjectSite:    strings.TrimSpace(c.PostForm("customerProjectSite")),
		CustomerContact:        strings.TrimSpace(c.PostForm("customerContact")),
		CustomerAlternate:      strings.TrimSpace(c.PostForm("customerAlternate")),
		CustomerEmail:          strings.TrimSpace(c.PostForm("customerEmail")),
		CustomerAlternateEmail: strings.TrimSpace(c.PostForm("customerAlternateEmail")),
	}

	var missing []string
	for _, field := range requiredFields {
		if strings.TrimSpace(c.PostForm(field)) == "" {
			missing = append(missing, field)
		}
	}
	return req, missing
}

// uploadEvidence opens every submitted site picture and uploads the batch in
// parallel. Nothing has touched the database yet when this runs.
func (h *RequestHandler) uploadEvidence(c *gin.Context, headers []*multipart.FileHeader) ([]string, bool) {
	files := make([]s3.File, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file " + fh.Filename})
			return nil, false
		}
		defer f.Close()
		files = append(files, s3.File{Name: fh.Filename, Body: f})
	}

	urls, err := h.Uploader.UploadAll(c.Request.Context(), files)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to upload site pictures", "details": err.Error()})
		return nil, false
	}
	return urls, true
}

// CreateRequest handles a new verification submission: validate locally,
// upload evidence, then mint the certificate number and persist atomically.
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	req, missing := bindRequestFields(c)
	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields", "fields": missing})
		return
	}

	serialNumbers := serials.Normalize(c.PostFormArray("serialNumbers"))
	if len(serialNumbers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one serial number is required"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form", "details": err.Error()})
		return
	}
	pictures := form.File["sitePictures"]
	if len(pictures) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please upload at least one site picture to proceed."})
		return
	}

	if h.Cfg.HasPlaceholderCredentials() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Missing API keys. Please update your .env file with valid MongoDB and S3 credentials."})
		return
	}

	urls, ok := h.uploadEvidence(c, pictures)
	if !ok {
		return
	}

	req.SerialNumbers = serialNumbers
	req.SitePictures = urls
	req.Status = models.StatusPending

	id, err := h.Store.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, idgen.ErrExhausted) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Unable to generate a unique Request ID after multiple attempts. Please try again."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create request", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "requestID": id})
}

// UpdateRequest resubmits an existing request under its original certificate
// number. The edit path never goes through the allocator, and it always
// resets status to pending, even if the request had been accepted.
func (h *RequestHandler) UpdateRequest(c *gin.Context) {
	id := c.Param("id")

	existing, err := h.Store.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Request not found for editing."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load request data."})
		return
	}

	req, missing := bindRequestFields(c)
	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields", "fields": missing})
		return
	}

	serialNumbers := serials.Normalize(c.PostFormArray("serialNumbers"))
	if len(serialNumbers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one serial number is required"})
		return
	}

	// On edit the client sends back the URLs it kept plus any new files.
	kept := make([]string, 0)
	for _, url := range c.PostFormArray("existingPictures") {
		if strings.HasPrefix(url, "http") {
			kept = append(kept, url)
		}
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form", "details": err.Error()})
		return
	}
	newPictures := form.File["sitePictures"]
	if len(kept) == 0 && len(newPictures) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please upload at least one site picture to proceed."})
		return
	}

	if h.Cfg.HasPlaceholderCredentials() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Missing API keys. Please update your .env file with valid MongoDB and S3 credentials."})
		return
	}

	uploaded := []string{}
	if len(newPictures) > 0 {
		urls, ok := h.uploadEvidence(c, newPictures)
		if !ok {
			return
		}
		uploaded = urls
	}

	req.ID = existing.ID
	req.WarrantyCertificateNo = existing.ID
	req.SerialNumbers = serialNumbers
	req.SitePictures = append(kept, uploaded...)
	// An edit invalidates any prior decision; the reviewers start over.
	req.Status = models.StatusPending
	req.RejectionReason = existing.RejectionReason
	req.CreatedAt = existing.CreatedAt
	req.UpdatedAt = time.Now()

	if err := h.Store.Update(c.Request.Context(), &req); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Request not found for editing."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update request", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "requestID": existing.ID})
}

// GetRequest returns one request, used by the form to prefill an edit.
func (h *RequestHandler) GetRequest(c *gin.Context) {
	id := c.Param("id")

	req, err := h.Store.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve request"})
		return
	}

	c.JSON(http.StatusOK, req)
}
