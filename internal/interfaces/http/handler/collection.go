package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	collectionapp "github.com/raqueto/backend/internal/application/collection"
	"github.com/raqueto/backend/internal/interfaces/http/dto"
)

const (
	collectionNotFound = "Collection not found"
	imageNotFound      = "Collection image not found"
)

// CollectionHandler handles collections and their images
type CollectionHandler struct {
	BaseHandler
	collections *collectionapp.CollectionService
}

// NewCollectionHandler creates a new CollectionHandler
func NewCollectionHandler(collections *collectionapp.CollectionService) *CollectionHandler {
	return &CollectionHandler{collections: collections}
}

type collectionEnvelope struct {
	Collection *collectionapp.CollectionResponse `json:"collection"`
}

// List handles GET /admin/collections
func (h *CollectionHandler) List(c *gin.Context) {
	var query collectionapp.ListCollectionsQuery
	if !h.bindQuery(c, &query) {
		return
	}
	resp, err := h.collections.List(c.Request.Context(), query)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create handles POST /admin/collections
func (h *CollectionHandler) Create(c *gin.Context) {
	var req collectionapp.CreateCollectionRequest
	if !h.bindJSON(c, &req) {
		return
	}
	col, err := h.collections.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, collectionEnvelope{Collection: col})
}

// Get handles GET /admin/collections/:id
func (h *CollectionHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id", collectionNotFound)
	if !ok {
		return
	}
	col, err := h.collections.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, collectionEnvelope{Collection: col})
}

// Delete handles DELETE /admin/collections/:id
func (h *CollectionHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id", collectionNotFound)
	if !ok {
		return
	}
	if err := h.collections.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeleteResponse{ID: id.String(), Object: "collection", Deleted: true})
}

// CreateImages handles POST /admin/collections/:id/images
func (h *CollectionHandler) CreateImages(c *gin.Context) {
	id, ok := h.pathID(c, "id", collectionNotFound)
	if !ok {
		return
	}
	var req collectionapp.CreateImagesRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.collections.CreateImages(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListImages serves both the admin and the store image listing
func (h *CollectionHandler) ListImages(c *gin.Context) {
	id, ok := h.pathID(c, "id", collectionNotFound)
	if !ok {
		return
	}
	resp, err := h.collections.ListImages(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteImage handles DELETE /admin/collections/:id/images/:image_id
func (h *CollectionHandler) DeleteImage(c *gin.Context) {
	id, ok := h.pathID(c, "id", collectionNotFound)
	if !ok {
		return
	}
	imageID, ok := h.pathID(c, "image_id", imageNotFound)
	if !ok {
		return
	}
	if err := h.collections.DeleteImage(c.Request.Context(), id, imageID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
