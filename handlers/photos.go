package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/photohub/photohub/internal/photos"
	"github.com/photohub/photohub/pkg/logger"
)

// PhotoHandler serves upload and listing on top of the photo pipeline.
type PhotoHandler struct {
	svc *photos.Service
}

func NewPhotoHandler(svc *photos.Service) *PhotoHandler {
	return &PhotoHandler{svc: svc}
}

// Register routes under the given group (mounted at /api in main).
func (h *PhotoHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/upload", h.Upload)
	rg.GET("/photos", h.List)
}

// Upload runs the receive -> compress -> replace pipeline for the single
// multipart field "image". A codec failure is reported as 500 even though
// the raw file was already saved and is listable; that mirrors the original
// behavior and is deliberate.
func (h *PhotoHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "no file uploaded"})
		return
	}

	name, err := h.svc.Receive(fh)
	if err != nil {
		if errors.Is(err, photos.ErrTooLarge) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "file too large"})
			return
		}
		logger.Errorf("store upload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to store file", "error": err.Error()})
		return
	}

	if err := h.svc.Process(c.Request.Context(), name); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to process file", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "file uploaded and compressed", "url": h.svc.URL(name)})
}

// List enumerates the upload directory and returns public URLs.
func (h *PhotoHandler) List(c *gin.Context) {
	list, err := h.svc.List()
	if err != nil {
		logger.Errorf("list photos: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to read files"})
		return
	}
	c.JSON(http.StatusOK, list)
}
