package projects

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

type ProjectsHandler struct {
	Repository ProjectRepository
	AuditLog   auditlog.Logger
}

func NewHandler(r ProjectRepository, a auditlog.Logger) *ProjectsHandler {
	return &ProjectsHandler{
		Repository: r,
		AuditLog:   a,
	}
}

func RegisterRoutes(router *gin.Engine, repo *repository.Repository, a auditlog.Logger) {
	handler := NewHandler(NewRepository(repo), a)

	protected := router.Group("/api/projects")
	protected.Use(security.JWTMiddleware())
	{
		protected.GET("/:projectKey/items", handler.GetAssignments)
		protected.POST("/:projectKey/items", handler.CreateAssignment)
		protected.DELETE("/:projectKey/items/:itemId", handler.DeleteAssignment)
	}
}

func (h *ProjectsHandler) GetAssignments(c *gin.Context) {
	projectKey := c.Param("projectKey")

	views, err := h.Repository.GetAssignments(projectKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get project assignments", "details": err.Error()})
		return
	}

	if views == nil {
		views = []models.ProjectAssignmentView{}
	}

	c.JSON(http.StatusOK, views)
}

func (h *ProjectsHandler) CreateAssignment(c *gin.Context) {
	projectKey := strings.TrimSpace(c.Param("projectKey"))
	if projectKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project key"})
		return
	}

	var req models.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
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

	item := &models.ProjectAssignedItem{
		ProjectKey:      projectKey,
		ProductID:       req.ProductID,
		DefaultQuantity: quantity,
		Unit:            unit,
		CreatedAt:       time.Now().UTC(),
	}

	if err := h.Repository.PersistAssignment(item); err != nil {
		var uniqueViolation *custom_error.UniqueViolationError
		if errors.As(err, &uniqueViolation) {
			c.JSON(http.StatusConflict, gin.H{"error": "Product is already assigned to this project"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign product", "details": err.Error()})
		return
	}

	go h.AuditLog.Log(
		"create",
		map[string]interface{}{
			"project_key": projectKey,
			"product_id":  item.ProductID,
			"msg":         "Product assigned to project",
		},
		item,
	)

	c.JSON(http.StatusCreated, item)
}

func (h *ProjectsHandler) DeleteAssignment(c *gin.Context) {
	projectKey := c.Param("projectKey")

	itemID, err := strconv.Atoi(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignment ID", "details": err.Error()})
		return
	}

	deleted, err := h.Repository.DeleteAssignment(projectKey, itemID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project assignment", "details": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unable to find project assignment"})
		return
	}

	c.Status(http.StatusNoContent)
}
