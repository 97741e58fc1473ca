package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	brandapp "github.com/raqueto/backend/internal/application/brand"
	"github.com/raqueto/backend/internal/interfaces/http/dto"
)

const brandNotFound = "Brand not found"

// BrandHandler serves the admin and store brand endpoints
type BrandHandler struct {
	BaseHandler
	brands *brandapp.BrandService
}

// NewBrandHandler creates a new BrandHandler
func NewBrandHandler(brands *brandapp.BrandService) *BrandHandler {
	return &BrandHandler{brands: brands}
}

// BrandEnvelope wraps a single brand
type BrandEnvelope struct {
	Brand *brandapp.BrandResponse `json:"brand"`
}

// List handles GET /admin/brands
func (h *BrandHandler) List(c *gin.Context) {
	var query brandapp.ListBrandsQuery
	if !h.bindQuery(c, &query) {
		return
	}
	resp, err := h.brands.List(c.Request.Context(), query)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create handles POST /admin/brands through the create-brand workflow
func (h *BrandHandler) Create(c *gin.Context) {
	var req brandapp.CreateBrandRequest
	if !h.bindJSON(c, &req) {
		return
	}
	b, err := h.brands.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, BrandEnvelope{Brand: b})
}

// Get handles GET /admin/brands/:id
func (h *BrandHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id", brandNotFound)
	if !ok {
		return
	}
	b, err := h.brands.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, BrandEnvelope{Brand: b})
}

// Update handles POST /admin/brands/:id through the update-brand workflow
func (h *BrandHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id", brandNotFound)
	if !ok {
		return
	}
	var req brandapp.UpdateBrandRequest
	if !h.bindJSON(c, &req) {
		return
	}
	b, err := h.brands.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, BrandEnvelope{Brand: b})
}

// Delete handles DELETE /admin/brands/:id through the delete-brand workflow
func (h *BrandHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id", brandNotFound)
	if !ok {
		return
	}
	if err := h.brands.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeleteResponse{ID: id.String(), Object: "brand", Deleted: true})
}

// StoreList handles GET /store/brands: active brands, optionally for one sport
func (h *BrandHandler) StoreList(c *gin.Context) {
	resp, err := h.brands.ListActive(c.Request.Context(), c.Query("sport"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// StoreGet handles GET /store/brands/:slug
func (h *BrandHandler) StoreGet(c *gin.Context) {
	b, err := h.brands.GetActiveBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	resp := brandapp.ToBrandResponse(b)
	c.JSON(http.StatusOK, BrandEnvelope{Brand: &resp})
}
