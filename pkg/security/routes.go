package security

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/AMechouate/Warenbuchung-App-sub002/internal/ratelimit"
	"github.com/AMechouate/Warenbuchung-App-sub002/internal/repository"
	"github.com/AMechouate/Warenbuchung-App-sub002/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	repo        *repository.Repository
	rateLimiter *ratelimit.RateLimiter
}

func NewAuthHandler(r *repository.Repository) *AuthHandler {
	return &AuthHandler{
		repo:        r,
		rateLimiter: ratelimit.NewRateLimiter(10, 5*time.Minute), // 10 attempts per 5 minutes
	}
}

func (h *AuthHandler) RegisterRoutes(router *gin.Engine) {
	auth := router.Group("/api/auth")
	auth.POST("/login", h.Login)
	auth.POST("/register", h.Register)
	auth.GET("/me", JWTMiddleware(), h.Me)
}

func (h *AuthHandler) Login(c *gin.Context) {
	clientIP := clientKey(c)

	if !h.rateLimiter.IsAllowed(clientIP) {
		remaining := h.rateLimiter.GetRemainingRequests(clientIP)
		c.Header("X-RateLimit-Limit", "10")
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", time.Now().Add(5*time.Minute).Format(time.RFC3339))
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":     "Too many login attempts. Try again later.",
			"remaining": remaining,
			"reset_at":  time.Now().Add(5 * time.Minute).Format(time.RFC3339),
		})
		return
	}

	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	user, err := AuthenticateUser(req.Username, req.Password, h.repo)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	now := time.Now().UTC()
	if _, err := h.repo.GoquDBWrapper.Update("users").
		Set(goqu.Record{"last_login_at": now}).
		Where(goqu.Ex{"id": user.ID}).
		Executor().Exec(); err == nil {
		user.LastLoginAt = &now
	}

	token, expires, err := GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, models.AuthResponse{
		Token:   token,
		Expires: expires,
		User:    user.DTO(),
	})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	var taken int
	if _, err := h.repo.GoquDBWrapper.Select(goqu.COUNT("id")).
		From("users").
		Where(goqu.Ex{"username": req.Username}).
		Executor().ScanVal(&taken); err == nil && taken > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
		return
	}
	if _, err := h.repo.GoquDBWrapper.Select(goqu.COUNT("id")).
		From("users").
		Where(goqu.Ex{"email": req.Email}).
		Executor().ScanVal(&taken); err == nil && taken > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}

	query := h.repo.GoquDBWrapper.Insert("users").
		Rows(goqu.Record{
			"username":      user.Username,
			"email":         user.Email,
			"password_hash": user.PasswordHash,
			"first_name":    user.FirstName,
			"last_name":     user.LastName,
			"is_active":     user.IsActive,
			"is_admin":      false,
			"created_at":    user.CreatedAt,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user", "details": err.Error()})
		return
	}

	token, expires, err := GenerateJWT(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, models.AuthResponse{
		Token:   token,
		Expires: expires,
		User:    user.DTO(),
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	current, ok := CurrentUserFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	user, err := GetUserByID(current.ID, h.repo)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user.DTO())
}

// clientKey extracts the best available client identity for rate
// limiting, preferring forwarded headers and mixing in the user agent
// for private addresses.
func clientKey(c *gin.Context) string {
	clientIP := c.GetHeader("X-Forwarded-For")
	if clientIP == "" {
		clientIP = c.GetHeader("X-Real-IP")
	}
	if clientIP == "" {
		clientIP = c.ClientIP()
	}

	if strings.Contains(clientIP, ",") {
		clientIP = strings.Split(clientIP, ",")[0]
	}

	if isPrivateIP(clientIP) {
		clientIP = clientIP + ":" + c.GetHeader("User-Agent")
	}

	return clientIP
}

func isPrivateIP(ip string) bool {
	privatePrefixes := []string{
		"10.", "172.16.", "172.17.", "172.18.", "172.19.", "172.20.",
		"172.21.", "172.22.", "172.23.", "172.24.", "172.25.", "172.26.",
		"172.27.", "172.28.", "172.29.", "172.30.", "172.31.",
		"192.168.", "127.", "169.254.", "::1", "fc00::", "fe80::",
	}

	for _, prefix := range privatePrefixes {
		if strings.HasPrefix(ip, prefix) {
			return true
		}
	}
	return false
}
