package settings

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
	"golang.org/x/crypto/bcrypt"
)

type UsersHandler struct {
	Repository UserRepository
	AuditLog   auditlog.Logger
}

func NewUsersHandler(r UserRepository, a auditlog.Logger) *UsersHandler {
	return &UsersHandler{
		Repository: r,
		AuditLog:   a,
	}
}

func (h *UsersHandler) registerRoutes(group *gin.RouterGroup, repo *repository.Repository) {
	users := group.Group("/users")
	users.Use(security.AdminRequired(repo))
	{
		users.GET("", h.GetUsers)
		users.GET("/:id", h.GetUser)
		users.POST("", h.CreateUser)
		users.PUT("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeleteUser)
	}
}

func (h *UsersHandler) GetUsers(c *gin.Context) {
	filter := UserFilter{
		Search:          strings.TrimSpace(c.Query("search")),
		Role:            c.Query("role"),
		IncludeInactive: c.Query("includeInactive") == "true",
	}

	users, err := h.Repository.GetUsers(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not obtain list of users", "details": err.Error()})
		return
	}

	dtos := make([]models.SettingsUserDTO, 0, len(users))
	for i := range users {
		dtos = append(dtos, users[i].SettingsDTO())
	}

	c.JSON(http.StatusOK, dtos)
}

func (h *UsersHandler) GetUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID", "details": err.Error()})
		return
	}

	user, err := h.Repository.GetUser(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user", "details": err.Error()})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unable to find user"})
		return
	}

	c.JSON(http.StatusOK, user.SettingsDTO())
}

func (h *UsersHandler) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user", "details": err.Error()})
		return
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		IsActive:     true,
		IsAdmin:      req.IsAdmin,
		Locations:    req.Locations,
		CreatedAt:    time.Now().UTC(),
	}

	if err := h.Repository.PersistUser(user); err != nil {
		var uniqueViolation *custom_error.UniqueViolationError
		if errors.As(err, &uniqueViolation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username or email already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user", "details": err.Error()})
		return
	}

	go h.AuditLog.Log(
		"create",
		map[string]interface{}{
			"username": user.Username,
			"msg":      "User created",
		},
		user,
	)

	c.JSON(http.StatusCreated, user.SettingsDTO())
}

func (h *UsersHandler) UpdateUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID", "details": err.Error()})
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	var passwordHash *string
	if req.Password != nil && *req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user", "details": err.Error()})
			return
		}
		hashed := string(hash)
		passwordHash = &hashed
	}

	updated, err := h.Repository.UpdateUser(id, userUpdateRecord(req, passwordHash))
	if err != nil {
		var uniqueViolation *custom_error.UniqueViolationError
		if errors.As(err, &uniqueViolation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username or email already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user", "details": err.Error()})
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unable to find user"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UsersHandler) DeleteUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID", "details": err.Error()})
		return
	}

	current, ok := security.CurrentUserFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	if current.ID == id {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot delete your own account"})
		return
	}

	deleted, err := h.Repository.DeleteUser(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user", "details": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unable to find user"})
		return
	}

	go h.AuditLog.Log(
		"remove",
		map[string]interface{}{
			"msg": "User removed",
		},
		&models.User{ID: id},
	)

	c.Status(http.StatusNoContent)
}
