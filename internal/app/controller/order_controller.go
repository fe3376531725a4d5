package controller

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storefeed/internal/app/service"
	"github.com/ikkim/storefeed/internal/errors"
	"github.com/ikkim/storefeed/internal/middleware"
)

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// Checkout turns the caller's cart into an order
// POST /api/orders
func (ctrl *OrderController) Checkout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	order, err := ctrl.orderService.Checkout(c.Request.Context(), userID)
	if err != nil {
		if stderrors.Is(err, service.ErrEmptyCart) {
			errors.BadRequest(c, errors.OrderEmptyCart, "Cart is empty, cannot create an order.")
			return
		}
		log.Error("Failed to create order", err, map[string]interface{}{
			"user_id": userID,
		})
		errors.InternalError(c, "")
		return
	}

	log.Info("Order created successfully", map[string]interface{}{
		"user_id":  userID,
		"order_id": order.ID,
	})
	c.JSON(http.StatusCreated, gin.H{
		"message": "Order created successfully",
		"order":   order,
	})
}

// History lists the caller's orders newest first
// GET /api/orders/history
func (ctrl *OrderController) History(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	orders, err := ctrl.orderService.History(userID)
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to fetch order history", err, map[string]interface{}{
			"user_id": userID,
		})
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, orders)
}
