package controller

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storefeed/internal/app/model"
	"github.com/ikkim/storefeed/internal/app/service"
	"github.com/ikkim/storefeed/internal/errors"
	"github.com/ikkim/storefeed/internal/middleware"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
}

// ListProducts returns the whole catalog in insertion order
// GET /api/products
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	products, err := ctrl.productService.ListProducts()
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to list products", err)
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, products)
}

// ListCategories returns distinct categories in first-seen order
// GET /api/products/categories
func (ctrl *ProductController) ListCategories(c *gin.Context) {
	categories, err := ctrl.productService.ListCategories()
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to list categories", err)
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, categories)
}

// ListByCategory filters by a case-insensitive substring of the category
// GET /api/products/category/:name
func (ctrl *ProductController) ListByCategory(c *gin.Context) {
	products, err := ctrl.productService.ListByCategory(c.Param("name"))
	if err != nil {
		if stderrors.Is(err, service.ErrNoProductsInCategory) {
			errors.NotFound(c, errors.ProductCategoryNotFound, "No products found for this category.")
			return
		}
		middleware.GetLoggerFromContext(c).Error("Failed to list products by category", err, map[string]interface{}{
			"category": c.Param("name"),
		})
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct
// GET /api/products/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := ctrl.productService.GetProduct(id)
	if err != nil {
		ctrl.respondError(c, err, id)
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateProduct (admin)
// POST /api/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	product := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Stock:       req.Stock,
		Category:    req.Category,
	}
	if err := ctrl.productService.CreateProduct(product); err != nil {
		ctrl.respondError(c, err, 0)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct changes only the fields present in the body (admin)
// PUT /api/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.ProductUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	product, err := ctrl.productService.UpdateProduct(id, req)
	if err != nil {
		ctrl.respondError(c, err, id)
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct soft deletes a product (admin)
// DELETE /api/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.productService.DeleteProduct(id); err != nil {
		ctrl.respondError(c, err, id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

func (ctrl *ProductController) respondError(c *gin.Context, err error, id uint) {
	if stderrors.Is(err, service.ErrProductNotFound) {
		errors.NotFound(c, errors.ProductNotFound, "Product not found")
		return
	}
	if respondIfInvalid(c, err) {
		return
	}
	middleware.GetLoggerFromContext(c).Error("Product operation failed", err, map[string]interface{}{
		"product_id": id,
	})
	errors.InternalError(c, "")
}
