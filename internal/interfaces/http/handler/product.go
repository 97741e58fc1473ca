package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/raqueto/backend/internal/application/catalog"
	"github.com/raqueto/backend/internal/interfaces/http/dto"
)

// ProductHandler handles the admin product endpoints
type ProductHandler struct {
	BaseHandler
	products *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(products *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

type productEnvelope struct {
	Product *catalogapp.ProductResponse `json:"product"`
}

// List handles GET /admin/products
func (h *ProductHandler) List(c *gin.Context) {
	var query catalogapp.ListProductsQuery
	if !h.bindQuery(c, &query) {
		return
	}
	resp, err := h.products.List(c.Request.Context(), query)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create handles POST /admin/products
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if !h.bindJSON(c, &req) {
		return
	}
	p, err := h.products.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, productEnvelope{Product: p})
}

// Get handles GET /admin/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id", productNotFound)
	if !ok {
		return
	}
	p, err := h.products.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, productEnvelope{Product: p})
}

// Delete handles DELETE /admin/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id", productNotFound)
	if !ok {
		return
	}
	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeleteResponse{ID: id.String(), Object: "product", Deleted: true})
}
