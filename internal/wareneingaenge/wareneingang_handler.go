package wareneingaenge

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/AMechouate/Warenbuchung-App-sub002/internal/repository"
	"github.com/AMechouate/Warenbuchung-App-sub002/internal/stock"
	"github.com/AMechouate/Warenbuchung-App-sub002/pkg/auditlog"
	custom_error "github.com/AMechouate/Warenbuchung-App-sub002/pkg/errors"
	"github.com/AMechouate/Warenbuchung-App-sub002/pkg/models"
	"github.com/AMechouate/Warenbuchung-App-sub002/pkg/security"

	"github.com/gin-gonic/gin"
)

type WareneingaengeHandler struct {
	Repository WareneingangRepository
	Service    *Service
	AuditLog   auditlog.Logger
}

func NewHandler(r WareneingangRepository, s *Service, a auditlog.Logger) *WareneingaengeHandler {
	return &WareneingaengeHandler{
		Repository: r,
		Service:    s,
		AuditLog:   a,
	}
}

func RegisterRoutes(router *gin.Engine, repo *repository.Repository, a auditlog.Logger) {
	ledger := NewRepository(repo)
	service := NewService(repo, ledger, stock.NewRepository())
	handler := NewHandler(ledger, service, a)

	protected := router.Group("/api/wareneingaenge")
	protected.Use(security.JWTMiddleware())
	{
		protected.GET("", handler.GetWareneingaenge)
		protected.GET("/:id", handler.GetWareneingang)
		protected.POST("", handler.CreateWareneingang)
		protected.PUT("/:id", handler.UpdateWareneingang)
		protected.DELETE("/:id", handler.DeleteWareneingang)
	}
}

func (h *WareneingaengeHandler) GetWareneingaenge(c *gin.Context) {
	groupByReferenz := c.Query("groupByReferenz") == "true"

	views, err := h.Repository.GetAll(groupByReferenz)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not obtain list of wareneingaenge", "details": err.Error()})
		return
	}

	if views == nil {
		views = []models.WareneingangView{}
	}

	c.JSON(http.StatusOK, views)
}

func (h *WareneingaengeHandler) GetWareneingang(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid wareneingang ID", "details": err.Error()})
		return
	}

	view, err := h.Repository.GetView(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get wareneingang", "details": err.Error()})
		return
	}
	if view == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unable to find wareneingang"})
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *WareneingaengeHandler) CreateWareneingang(c *gin.Context) {
	var req models.WareneingangRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	row, err := h.Service.Create(req)
	if err != nil {
		abortWithServiceError(c, err, "Failed to create wareneingang")
		return
	}

	go h.AuditLog.Log(
		"create",
		map[string]interface{}{
			"product_id": row.ProductID,
			"quantity":   row.Quantity,
			"msg":        "Wareneingang booked",
		},
		row,
	)

	view, err := h.Repository.GetView(row.ID)
	if err != nil || view == nil {
		c.JSON(http.StatusCreated, row)
		return
	}

	c.JSON(http.StatusCreated, view)
}

func (h *WareneingaengeHandler) UpdateWareneingang(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid wareneingang ID", "details": err.Error()})
		return
	}

	var req models.WareneingangRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if _, err := h.Service.Update(id, req); err != nil {
		abortWithServiceError(c, err, "Failed to update wareneingang")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *WareneingaengeHandler) DeleteWareneingang(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid wareneingang ID", "details": err.Error()})
		return
	}

	if err := h.Service.Delete(id); err != nil {
		abortWithServiceError(c, err, "Failed to delete wareneingang")
		return
	}

	go h.AuditLog.Log(
		"remove",
		map[string]interface{}{
			"msg": "Wareneingang removed",
		},
		&models.Wareneingang{ID: id},
	)

	c.Status(http.StatusNoContent)
}

func abortWithServiceError(c *gin.Context, err error, fallback string) {
	var notFound *custom_error.NotFoundError
	var validation *custom_error.ValidationError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Message})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback, "details": err.Error()})
	}
}
