package orders

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/AMechouate/Warenbuchung-App-sub002/internal/repository"
	"github.com/AMechouate/Warenbuchung-App-sub002/pkg/auditlog"
	custom_error "github.com/AMechouate/Warenbuchung-App-sub002/pkg/errors"
	"github.com/AMechouate/Warenbuchung-App-sub002/pkg/models"
	"github.com/AMechouate/Warenbuchung-App-sub002/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const fallbackUnit = "Stück"

type OrdersHandler struct {
	Repository OrderRepository
	AuditLog   auditlog.Logger
}

func NewHandler(r OrderRepository, a auditlog.Logger) *OrdersHandler {
	return &OrdersHandler{
		Repository: r,
		AuditLog:   a,
	}
}

func RegisterRoutes(router *gin.Engine, repo *repository.Repository, a auditlog.Logger) {
	handler := NewHandler(NewRepository(repo), a)

	protected := router.Group("/api/orders")
	protected.Use(security.JWTMiddleware())
	{
		protected.GET("", handler.GetOrders)
		protected.GET("/:id", handler.GetOrder)
		protected.POST("", handler.CreateOrder)
		protected.PUT("/:id", handler.UpdateOrder)
		protected.DELETE("/:id", handler.DeleteOrder)

		protected.GET("/:id/items", handler.GetAssignments)
		protected.POST("/:id/items", handler.CreateAssignment)
		protected.DELETE("/:id/items/:itemId", handler.DeleteAssignment)
	}
}

func (h *OrdersHandler) GetOrders(c *gin.Context) {
	views, err := h.Repository.GetOrders(strings.TrimSpace(c.Query("orderNumber")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not obtain list of orders", "details": err.Error()})
		return
	}

	if views == nil {
		views = []models.OrderView{}
	}

	c.JSON(http.StatusOK, views)
}

func (h *OrdersHandler) GetOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID", "details": err.Error()})
		return
	}

	view, err := h.Repository.GetOrder(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get order", "details": err.Error()})
		return
	}
	if view == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unable to find order"})
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *OrdersHandler) CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	orderDate := time.Now().UTC()
	if req.OrderDate != nil {
		orderDate = *req.OrderDate
	}

	order := &models.Order{
		OrderNumber: req.OrderNumber,
		OrderDate:   orderDate,
		Status:      req.Status,
		SupplierID:  req.SupplierID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := h.Repository.PersistOrder(order); err != nil {
		var uniqueViolation *custom_error.UniqueViolationError
		if errors.As(err, &uniqueViolation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order number already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order", "details": err.Error()})
		return
	}

	go h.AuditLog.Log(
		"create",
		map[string]interface{}{
			"order_number": order.OrderNumber,
			"msg":          "Order created",
		},
		order,
	)

	c.JSON(http.StatusCreated, order)
}

func (h *OrdersHandler) UpdateOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID", "details": err.Error()})
		return
	}

	var req models.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	updated, err := h.Repository.UpdateOrder(id, req)
	if err != nil {
		var uniqueViolation *custom_error.UniqueViolationError
		if errors.As(err, &uniqueViolation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order number already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order", "details": err.Error()})
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unable to find order"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *OrdersHandler) DeleteOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID", "details": err.Error()})
		return
	}

	deleted, err := h.Repository.DeleteOrder(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order", "details": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unable to find order"})
		return
	}

	go h.AuditLog.Log(
		"remove",
		map[string]interface{}{
			"msg": "Order removed",
		},
		&models.Order{ID: id},
	)

	c.Status(http.StatusNoContent)
}

func (h *OrdersHandler) GetAssignments(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID", "details": err.Error()})
		return
	}

	exists, err := h.Repository.OrderExists(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get order assignments", "details": err.Error()})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unable to find order"})
		return
	}

	views, err := h.Repository.GetAssignments(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get order assignments", "details": err.Error()})
		return
	}

	if views == nil {
		views = []models.OrderAssignmentView{}
	}

	c.JSON(http.StatusOK, views)
}

func (h *OrdersHandler) CreateAssignment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID", "details": err.Error()})
		return
	}

	var req models.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	exists, err := h.Repository.OrderExists(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign product", "details": err.Error()})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unable to find order"})
		return
	}

	productUnit, found, err := h.Repository.ProductUnit(req.ProductID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign product", "details": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unable to find product"})
		return
	}

	unit := fallbackUnit
	if req.Unit != nil && strings.TrimSpace(*req.Unit) != "" {
		unit = *req.Unit
	} else if productUnit != nil && strings.TrimSpace(*productUnit) != "" {
		unit = *productUnit
	}

	quantity := decimal.Zero
	if req.DefaultQuantity != nil {
		quantity = *req.DefaultQuantity
	}

	item := &models.OrderAssignedItem{
		OrderID:         id,
		ProductID:       req.ProductID,
		DefaultQuantity: quantity,
		Unit:            unit,
		CreatedAt:       time.Now().UTC(),
	}

	if err := h.Repository.PersistAssignment(item); err != nil {
		var uniqueViolation *custom_error.UniqueViolationError
		if errors.As(err, &uniqueViolation) {
			c.JSON(http.StatusConflict, gin.H{"error": "Product is already assigned to this order"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign product", "details": err.Error()})
		return
	}

	go h.AuditLog.Log(
		"create",
		map[string]interface{}{
			"order_id":   id,
			"product_id": item.ProductID,
			"msg":        "Product assigned to order",
		},
		item,
	)

	c.JSON(http.StatusCreated, item)
}

func (h *OrdersHandler) DeleteAssignment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID", "details": err.Error()})
		return
	}

	itemID, err := strconv.Atoi(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignment ID", "details": err.Error()})
		return
	}

	deleted, err := h.Repository.DeleteAssignment(id, itemID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order assignment", "details": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unable to find order assignment"})
		return
	}

	c.Status(http.StatusNoContent)
}
