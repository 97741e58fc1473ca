package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	brandapp "github.com/raqueto/backend/internal/application/brand"
	linkapp "github.com/raqueto/backend/internal/application/link"
)

const productNotFound = "Product not found"

// ProductBrandHandler manages the product to brand link
type ProductBrandHandler struct {
	BaseHandler
	links *linkapp.ProductBrandService
}

// NewProductBrandHandler creates a new ProductBrandHandler
func NewProductBrandHandler(links *linkapp.ProductBrandService) *ProductBrandHandler {
	return &ProductBrandHandler{links: links}
}

type setBrandResponse struct {
	Success bool                    `json:"success"`
	Brand   *brandapp.BrandResponse `json:"brand"`
}

type removeBrandResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Get handles GET /admin/products/:id/brand; brand is null when unlinked
func (h *ProductBrandHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id", productNotFound)
	if !ok {
		return
	}
	b, err := h.links.GetBrand(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, BrandEnvelope{Brand: b})
}

// Set handles POST /admin/products/:id/brand
func (h *ProductBrandHandler) Set(c *gin.Context) {
	id, ok := h.pathID(c, "id", productNotFound)
	if !ok {
		return
	}
	var req linkapp.SetBrandRequest
	if !h.bindJSON(c, &req) {
		return
	}
	b, err := h.links.SetBrand(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, setBrandResponse{Success: true, Brand: b})
}

// Remove handles DELETE /admin/products/:id/brand
func (h *ProductBrandHandler) Remove(c *gin.Context) {
	id, ok := h.pathID(c, "id", productNotFound)
	if !ok {
		return
	}
	msg, err := h.links.RemoveBrand(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, removeBrandResponse{Success: true, Message: msg})
}

// BrandProducts handles GET /store/brands/:slug/products
func (h *ProductBrandHandler) BrandProducts(c *gin.Context) {
	resp, err := h.links.BrandProducts(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
