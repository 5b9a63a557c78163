package security

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AMechouate/Warenbuchung-App-sub002/internal/repository"
	"github.com/AMechouate/Warenbuchung-App-sub002/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func stubUserLookup(t *testing.T, user *models.User, lookupErr error) {
	t.Helper()
	original := getUserByUsername
	t.Cleanup(func() {
		getUserByUsername = original
	})
	getUserByUsername = func(username string, repo *repository.Repository) (*models.User, error) {
		return user, lookupErr
	}
}

func TestAuthenticateUserRejectsInactiveAccount(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	assert.NoError(t, err)

	stubUserLookup(t, &models.User{
		ID:           4,
		Username:     "mmeier",
		PasswordHash: string(hash),
		IsActive:     false,
	}, nil)

	_, err = AuthenticateUser("mmeier", "secret", nil)
	assert.ErrorIs(t, err, ErrInactiveAccount)
}

func TestAuthenticateUserRejectsWrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	assert.NoError(t, err)

	stubUserLookup(t, &models.User{
		ID:           4,
		Username:     "mmeier",
		PasswordHash: string(hash),
		IsActive:     true,
	}, nil)

	_, err = AuthenticateUser("mmeier", "wrong", nil)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateUserUnknownUser(t *testing.T) {
	stubUserLookup(t, nil, sql.ErrNoRows)

	_, err := AuthenticateUser("ghost", "secret", nil)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGenerateJWTRoundTrip(t *testing.T) {
	user := &models.User{
		ID:       7,
		Username: "mmeier",
		Email:    "mmeier@example.com",
	}

	signed, expires, err := GenerateJWT(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, signed)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expires, time.Minute)

	token, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	})
	assert.NoError(t, err)
	assert.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(7), claims["userID"])
	assert.Equal(t, "mmeier", claims["username"])
	assert.Equal(t, "mmeier@example.com", claims["email"])
}

func TestJWTMiddlewareAcceptsValidToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	user := &models.User{ID: 3, Username: "mmeier"}
	signed, _, err := GenerateJWT(user)
	assert.NoError(t, err)

	router := gin.New()
	router.GET("/protected", JWTMiddleware(), func(c *gin.Context) {
		current, ok := CurrentUserFrom(c)
		assert.True(t, ok)
		assert.Equal(t, 3, current.ID)
		assert.Equal(t, "mmeier", current.Username)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTMiddlewareRejectsMissingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/protected", JWTMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTMiddlewareRejectsGarbageToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/protected", JWTMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestClientKeySplitsForwardedList(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/auth/login", nil)
	c.Request.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")

	assert.Equal(t, "203.0.113.9", clientKey(c))
}

func TestClientKeyMixesUserAgentForPrivateIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/auth/login", nil)
	c.Request.Header.Set("X-Real-IP", "192.168.1.20")
	c.Request.Header.Set("User-Agent", "warenbuchung-app")

	assert.Equal(t, "192.168.1.20:warenbuchung-app", clientKey(c))
}
