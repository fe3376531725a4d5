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

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{cartService: cartService}
}

type AddToCartRequest struct {
	ProductID uint `json:"productId"`
	Quantity  *int `json:"quantity"`
}

type UpdateCartRequest struct {
	Quantity *int `json:"quantity"`
}

// CartResponse is a cart with its live lines and current total
type CartResponse struct {
	ID     uint             `json:"id"`
	UserID uint             `json:"user_id"`
	Items  []model.CartItem `json:"items"`
	Total  float64          `json:"total"`
}

func newCartResponse(cart *model.Cart) CartResponse {
	items := cart.Items
	if items == nil {
		items = []model.CartItem{}
	}
	return CartResponse{
		ID:     cart.ID,
		UserID: cart.UserID,
		Items:  items,
		Total:  model.ToAmount(cart.Total()),
	}
}

// GetCart returns the caller's cart, or an empty item list when none exists
// GET /api/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	cart, err := ctrl.cartService.GetCart(userID)
	if err != nil {
		if stderrors.Is(err, service.ErrCartNotFound) {
			c.JSON(http.StatusOK, gin.H{"items": []model.CartItem{}})
			return
		}
		ctrl.respondError(c, err, userID)
		return
	}

	c.JSON(http.StatusOK, newCartResponse(cart))
}

// AddToCart adds a product, creating the cart on first use
// POST /api/cart
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}
	if req.ProductID == 0 {
		errors.BadRequest(c, errors.ValidationRequired, "Product ID is required")
		return
	}

	quantity := service.DefaultQuantity
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	cart, created, err := ctrl.cartService.AddToCart(userID, req.ProductID, quantity)
	if err != nil {
		ctrl.respondError(c, err, userID)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, newCartResponse(cart))
}

// UpdateQuantity sets the quantity of one line
// PUT /api/cart/:productId
func (ctrl *CartController) UpdateQuantity(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}

	var req UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		errors.BadRequest(c, errors.ValidationRequired, "Quantity is required")
		return
	}

	cart, err := ctrl.cartService.UpdateQuantity(userID, productID, *req.Quantity)
	if err != nil {
		ctrl.respondError(c, err, userID)
		return
	}
	c.JSON(http.StatusOK, newCartResponse(cart))
}

// RemoveItem deletes one line
// DELETE /api/cart/:productId
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}

	if err := ctrl.cartService.RemoveItem(userID, productID); err != nil {
		ctrl.respondError(c, err, userID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
}

func (ctrl *CartController) respondError(c *gin.Context, err error, userID uint) {
	switch {
	case stderrors.Is(err, service.ErrProductNotFound):
		errors.NotFound(c, errors.ProductNotFound, "Product not found")
	case stderrors.Is(err, service.ErrCartNotFound):
		errors.NotFound(c, errors.CartNotFound, "Cart not found")
	case stderrors.Is(err, service.ErrCartItemNotFound):
		errors.NotFound(c, errors.CartItemNotFound, "Item not found in cart")
	case stderrors.Is(err, service.ErrInvalidQuantity):
		errors.BadRequest(c, errors.ValidationInvalidInput, "Quantity must be at least 1")
	default:
		middleware.GetLoggerFromContext(c).Error("Cart operation failed", err, map[string]interface{}{
			"user_id": userID,
		})
		errors.InternalError(c, "")
	}
}
