package settings

import (
	"net/http"
	"strconv"
	"time"

	"github.com/AMechouate/Warenbuchung-App-sub002/internal/repository"
	"github.com/AMechouate/Warenbuchung-App-sub002/pkg/auditlog"
	"github.com/AMechouate/Warenbuchung-App-sub002/pkg/models"
	"github.com/AMechouate/Warenbuchung-App-sub002/pkg/security"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	Repository SettingsRepository
	AuditLog   auditlog.Logger
}

func NewSettingsHandler(r SettingsRepository, a auditlog.Logger) *SettingsHandler {
	return &SettingsHandler{
		Repository: r,
		AuditLog:   a,
	}
}

// RegisterRoutes wires the settings surface. The active reason and
// justification lists stay public since the booking forms load them
// before anyone signs in; everything else is admin only.
func RegisterRoutes(router *gin.Engine, repo *repository.Repository, a auditlog.Logger) {
	settingsHandler := NewSettingsHandler(NewSettingsRepository(repo), a)
	usersHandler := NewUsersHandler(NewUserRepository(repo), a)

	settingsHandler.registerPublicRoutes(router)

	group := router.Group("/api/settings")
	group.Use(security.JWTMiddleware())

	usersHandler.registerRoutes(group, repo)

	reasons := group.Group("/reasons")
	reasons.Use(security.AdminRequired(repo))
	{
		reasons.GET("/all", settingsHandler.GetAllReasons)
		reasons.POST("", settingsHandler.CreateReason)
		reasons.PUT("/:id", settingsHandler.UpdateReason)
		reasons.DELETE("/:id", settingsHandler.DeleteReason)
	}

	justifications := group.Group("/justifications")
	justifications.Use(security.AdminRequired(repo))
	{
		justifications.GET("/all", settingsHandler.GetAllJustifications)
		justifications.POST("", settingsHandler.CreateJustification)
		justifications.PUT("/:id", settingsHandler.UpdateJustification)
		justifications.DELETE("/:id", settingsHandler.DeleteJustification)
	}
}

func (h *SettingsHandler) registerPublicRoutes(router *gin.Engine) {
	router.GET("/api/settings/reasons", h.GetActiveReasons)
	router.GET("/api/settings/justifications", h.GetActiveJustifications)
}

func (h *SettingsHandler) GetActiveReasons(c *gin.Context) {
	reasons, err := h.Repository.GetReasons(false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not obtain list of reasons", "details": err.Error()})
		return
	}

	if reasons == nil {
		reasons = []models.WarenausgangReason{}
	}

	c.JSON(http.StatusOK, reasons)
}

func (h *SettingsHandler) GetAllReasons(c *gin.Context) {
	reasons, err := h.Repository.GetReasons(true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not obtain list of reasons", "details": err.Error()})
		return
	}

	if reasons == nil {
		reasons = []models.WarenausgangReason{}
	}

	c.JSON(http.StatusOK, reasons)
}

func (h *SettingsHandler) CreateReason(c *gin.Context) {
	var req models.CreateReasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	reason := &models.WarenausgangReason{
		Name:       req.Name,
		OrderIndex: req.OrderIndex,
		IsActive:   true,
		CreatedAt:  time.Now().UTC(),
	}

	if err := h.Repository.PersistReason(reason); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reason", "details": err.Error()})
		return
	}

	go h.AuditLog.Log(
		"create",
		map[string]interface{}{
			"name": reason.Name,
			"msg":  "Warenausgang reason created",
		},
		reason,
	)

	c.JSON(http.StatusCreated, reason)
}

func (h *SettingsHandler) UpdateReason(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reason ID", "details": err.Error()})
		return
	}

	var req models.UpdateReasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	updated, err := h.Repository.UpdateReason(id, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reason", "details": err.Error()})
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unable to find reason"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *SettingsHandler) DeleteReason(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reason ID", "details": err.Error()})
		return
	}

	deleted, err := h.Repository.DeleteReason(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete reason", "details": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unable to find reason"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *SettingsHandler) GetActiveJustifications(c *gin.Context) {
	templates, err := h.Repository.GetJustifications(false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not obtain list of justifications", "details": err.Error()})
		return
	}

	if templates == nil {
		templates = []models.JustificationTemplate{}
	}

	c.JSON(http.StatusOK, templates)
}

func (h *SettingsHandler) GetAllJustifications(c *gin.Context) {
	templates, err := h.Repository.GetJustifications(true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not obtain list of justifications", "details": err.Error()})
		return
	}

	if templates == nil {
		templates = []models.JustificationTemplate{}
	}

	c.JSON(http.StatusOK, templates)
}

func (h *SettingsHandler) CreateJustification(c *gin.Context) {
	var req models.CreateJustificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	template := &models.JustificationTemplate{
		Text:       req.Text,
		OrderIndex: req.OrderIndex,
		IsActive:   true,
		CreatedAt:  time.Now().UTC(),
	}

	if err := h.Repository.PersistJustification(template); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create justification", "details": err.Error()})
		return
	}

	go h.AuditLog.Log(
		"create",
		map[string]interface{}{
			"text": template.Text,
			"msg":  "Justification template created",
		},
		template,
	)

	c.JSON(http.StatusCreated, template)
}

func (h *SettingsHandler) UpdateJustification(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid justification ID", "details": err.Error()})
		return
	}

	var req models.UpdateJustificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	updated, err := h.Repository.UpdateJustification(id, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update justification", "details": err.Error()})
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unable to find justification"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *SettingsHandler) DeleteJustification(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid justification ID", "details": err.Error()})
		return
	}

	deleted, err := h.Repository.DeleteJustification(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete justification", "details": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unable to find justification"})
		return
	}

	c.Status(http.StatusNoContent)
}
