package warenausgaenge

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

type WarenausgaengeHandler struct {
	Repository WarenausgangRepository
	Service    *Service
	AuditLog   auditlog.Logger
}

func NewHandler(r WarenausgangRepository, s *Service, a auditlog.Logger) *WarenausgaengeHandler {
	return &WarenausgaengeHandler{
		Repository: r,
		Service:    s,
		AuditLog:   a,
	}
}

func RegisterRoutes(router *gin.Engine, repo *repository.Repository, a auditlog.Logger) {
	ledger := NewRepository(repo)
	service := NewService(repo, ledger, stock.NewRepository())
	handler := NewHandler(ledger, service, a)

	protected := router.Group("/api/warenausgaenge")
	protected.Use(security.JWTMiddleware())
	{
		protected.GET("", handler.GetWarenausgaenge)
		protected.GET("/:id", handler.GetWarenausgang)
		protected.POST("", handler.CreateWarenausgang)
		protected.PUT("/:id", handler.UpdateWarenausgang)
		protected.DELETE("/:id", handler.DeleteWarenausgang)
	}
}

func (h *WarenausgaengeHandler) GetWarenausgaenge(c *gin.Context) {
	views, err := h.Repository.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not obtain list of warenausgaenge", "details": err.Error()})
		return
	}

	if views == nil {
		views = []models.WarenausgangView{}
	}

	c.JSON(http.StatusOK, views)
}

func (h *WarenausgaengeHandler) GetWarenausgang(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid warenausgang ID", "details": err.Error()})
		return
	}

	view, err := h.Repository.GetView(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get warenausgang", "details": err.Error()})
		return
	}
	if view == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unable to find warenausgang"})
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *WarenausgaengeHandler) CreateWarenausgang(c *gin.Context) {
	var req models.WarenausgangRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	row, err := h.Service.Create(req)
	if err != nil {
		abortWithServiceError(c, err, "Failed to create warenausgang")
		return
	}

	go h.AuditLog.Log(
		"create",
		map[string]interface{}{
			"product_id": row.ProductID,
			"quantity":   row.Quantity,
			"msg":        "Warenausgang booked",
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

func (h *WarenausgaengeHandler) UpdateWarenausgang(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid warenausgang ID", "details": err.Error()})
		return
	}

	var req models.WarenausgangRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if _, err := h.Service.Update(id, req); err != nil {
		abortWithServiceError(c, err, "Failed to update warenausgang")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *WarenausgaengeHandler) DeleteWarenausgang(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid warenausgang ID", "details": err.Error()})
		return
	}

	if err := h.Service.Delete(id); err != nil {
		abortWithServiceError(c, err, "Failed to delete warenausgang")
		return
	}

	go h.AuditLog.Log(
		"remove",
		map[string]interface{}{
			"msg": "Warenausgang removed",
		},
		&models.Warenausgang{ID: id},
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
