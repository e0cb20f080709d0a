package api

import (
	"context"
	"net/http"

	"github.com/fsdevblog/botshop/internal/service"
	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogSvs CatalogServicer
}

func NewCatalogHandler(catalogSvs CatalogServicer) *CatalogHandler {
	return &CatalogHandler{
		catalogSvs: catalogSvs,
	}
}

type categoriesQuery struct {
	ParentID        *int64 `form:"parent_id" binding:"omitempty,gt=0"`
	IsActive        *bool  `form:"is_active"`
	IncludeChildren bool   `form:"include_children"`
}

// ListCategories GET RouteGroup + CategoriesRoute.
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	var query categoriesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortValidation(c, err)
		return
	}
	filter := service.CategoryFilter{
		ParentID: query.ParentID,
		IsActive: query.IsActive,
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if query.IncludeChildren {
		arena, err := h.catalogSvs.ListCategoryTree(reqCtx, filter)
		if err != nil {
			abortWithServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, newCategoryTreeResponse(arena))
		return
	}

	categories, err := h.catalogSvs.ListCategories(reqCtx, filter)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	response := make([]CategoryResponse, len(categories))
	for i, category := range categories {
		response[i] = newCategoryResponse(category)
	}
	c.JSON(http.StatusOK, response)
}

// GetCategory GET RouteGroup + CategoryRoute.
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	category, err := h.catalogSvs.GetCategory(reqCtx, id)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCategoryResponse(*category))
}

type productsQuery struct {
	CategoryID *int64 `form:"category_id" binding:"omitempty,gt=0"`
}

// ListProducts GET RouteGroup + ProductsRoute. Отдает только активные товары.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var query productsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortValidation(c, err)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	products, err := h.catalogSvs.ListProducts(reqCtx, service.ProductFilter{
		CategoryID: query.CategoryID,
		OnlyActive: true,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	response := make([]ProductResponse, len(products))
	for i, product := range products {
		response[i] = newProductResponse(product)
	}
	c.JSON(http.StatusOK, response)
}

// GetProduct GET RouteGroup + ProductRoute.
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	product, err := h.catalogSvs.GetProduct(reqCtx, id)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newProductResponse(*product))
}
