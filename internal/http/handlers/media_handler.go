package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/h2non/filetype"

	"github.com/marcus102/AGROVIE-sub002/internal/models"
	"github.com/marcus102/AGROVIE-sub002/internal/repository"
	"github.com/marcus102/AGROVIE-sub002/internal/storage"
)

var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// MediaHandler manages mission image uploads and removal.
type MediaHandler struct {
	repo    *repository.MediaRepository
	storage *storage.PhotoStorage
}

// NewMediaHandler creates a new handler.
func NewMediaHandler(repo *repository.MediaRepository, storage *storage.PhotoStorage) *MediaHandler {
	return &MediaHandler{repo: repo, storage: storage}
}

// Upload handles POST /api/media/photos. The file is verified by extension
// and by magic bytes; a spoofed extension does not get through.
func (h *MediaHandler) Upload(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
		return
	}
	if file.Size == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file must not be empty"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file extension, images only"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer src.Close()

	// Sniff the real content type from the first bytes.
	head := make([]byte, 512)
	n, err := src.Read(head)
	if err != nil && err != io.EOF {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}

	kind, err := filetype.Match(head[:n])
	if err != nil || kind == filetype.Unknown || !allowedMimeTypes[kind.MIME.Value] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file content is not a supported image"})
		return
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	path, size, err := h.storage.Save(c.Request.Context(), userID, file.Filename, src)
	if err != nil {
		c.Error(err)
		return
	}

	media := &models.MediaFile{
		UserID:   userID,
		FilePath: path,
		FileType: kind.MIME.Value,
		FileSize: size,
	}
	if err := h.repo.Create(c.Request.Context(), media); err != nil {
		// The row is the source of truth; remove the orphaned file.
		if delErr := h.storage.Delete(c.Request.Context(), path); delErr != nil {
			c.Error(fmt.Errorf("cleanup after failed insert: %w", delErr))
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, media)
}

// Delete handles DELETE /api/media/photos/:id. Only the uploader may
// delete a file.
func (h *MediaHandler) Delete(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	mediaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid media id"})
		return
	}

	path, err := h.repo.Delete(c.Request.Context(), mediaID, userID)
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.storage.Delete(c.Request.Context(), path); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "file deleted"})
}
