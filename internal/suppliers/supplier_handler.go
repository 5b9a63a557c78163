package suppliers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/AMechouate/Warenbuchung-App-sub002/internal/repository"
	"github.com/AMechouate/Warenbuchung-App-sub002/pkg/auditlog"
	"github.com/AMechouate/Warenbuchung-App-sub002/pkg/models"
	"github.com/AMechouate/Warenbuchung-App-sub002/pkg/security"

	"github.com/gin-gonic/gin"
)

type SuppliersHandler struct {
	Repository SupplierRepository
	AuditLog   auditlog.Logger
}

func NewHandler(r SupplierRepository, a auditlog.Logger) *SuppliersHandler {
	return &SuppliersHandler{
		Repository: r,
		AuditLog:   a,
	}
}

func RegisterRoutes(router *gin.Engine, repo *repository.Repository, a auditlog.Logger) {
	handler := NewHandler(NewRepository(repo), a)

	protected := router.Group("/api/suppliers")
	protected.Use(security.JWTMiddleware())
	{
		protected.GET("", handler.GetSuppliers)
		protected.GET("/:id", handler.GetSupplier)
		protected.POST("", handler.CreateSupplier)
		protected.PUT("/:id", handler.UpdateSupplier)
		protected.DELETE("/:id", handler.DeleteSupplier)
	}
}

func (h *SuppliersHandler) GetSuppliers(c *gin.Context) {
	suppliers, err := h.Repository.GetSuppliers(strings.TrimSpace(c.Query("name")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not obtain list of suppliers", "details": err.Error()})
		return
	}

	if suppliers == nil {
		suppliers = []models.Supplier{}
	}

	c.JSON(http.StatusOK, suppliers)
}

func (h *SuppliersHandler) GetSupplier(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid supplier ID", "details": err.Error()})
		return
	}

	supplier, err := h.Repository.GetSupplier(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get supplier", "details": err.Error()})
		return
	}
	if supplier == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unable to find supplier"})
		return
	}

	c.JSON(http.StatusOK, supplier)
}

func (h *SuppliersHandler) CreateSupplier(c *gin.Context) {
	var req models.SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	supplier := &models.Supplier{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		CreatedAt:     time.Now().UTC(),
	}

	if err := h.Repository.PersistSupplier(supplier); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create supplier", "details": err.Error()})
		return
	}

	go h.AuditLog.Log(
		"create",
		map[string]interface{}{
			"name": supplier.Name,
			"msg":  "Supplier created",
		},
		supplier,
	)

	c.JSON(http.StatusCreated, supplier)
}

func (h *SuppliersHandler) UpdateSupplier(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid supplier ID", "details": err.Error()})
		return
	}

	var req models.SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	supplier := &models.Supplier{
		ID:            id,
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
	}

	updated, err := h.Repository.UpdateSupplier(supplier)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update supplier", "details": err.Error()})
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unable to find supplier"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *SuppliersHandler) DeleteSupplier(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid supplier ID", "details": err.Error()})
		return
	}

	// A supplier referenced by orders must not disappear from them.
	count, err := h.Repository.OrderCount(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete supplier", "details": err.Error()})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Supplier has orders and cannot be deleted"})
		return
	}

	deleted, err := h.Repository.DeleteSupplier(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete supplier", "details": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unable to find supplier"})
		return
	}

	go h.AuditLog.Log(
		"remove",
		map[string]interface{}{
			"msg": "Supplier removed",
		},
		&models.Supplier{ID: id},
	)

	c.Status(http.StatusNoContent)
}
