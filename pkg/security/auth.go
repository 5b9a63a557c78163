package security

import (
	"database/sql"
	"errors"
	"log"
	"os"
	"time"

	"github.com/AMechouate/Warenbuchung-App-sub002/internal/repository"
	"github.com/AMechouate/Warenbuchung-App-sub002/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

var jwtSecret []byte

// Development fallback, overridden by JWT_SECRET in any real deployment.
const devSecret = "YourSecretKeyHere12345678901234567890"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInactiveAccount    = errors.New("user account is inactive")
)

func init() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if err := godotenv.Load(); err == nil {
			secret = os.Getenv("JWT_SECRET")
		}
	}
	if secret == "" {
		log.Println("Warning: JWT_SECRET not set, using development fallback key")
		secret = devSecret
	}

	jwtSecret = []byte(secret)
}

var getUserByUsername = GetUserByUsername

// AuthenticateUser verifies the password against the stored bcrypt hash
// and rejects inactive accounts.
func AuthenticateUser(username, password string, repo *repository.Repository) (*models.User, error) {
	user, err := getUserByUsername(username, repo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrInactiveAccount
	}

	return user, nil
}

func GetUserByUsername(username string, repo *repository.Repository) (*models.User, error) {
	var user models.User

	query := repo.GoquDBWrapper.
		Select("id", "username", "email", "password_hash", "first_name", "last_name", "is_active", "is_admin", "created_at", "last_login_at", "locations").
		From("users").
		Where(goqu.Ex{"username": username})

	found, err := query.Executor().ScanStruct(&user)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, sql.ErrNoRows
	}

	return &user, nil
}

func GetUserByID(id int, repo *repository.Repository) (*models.User, error) {
	var user models.User

	query := repo.GoquDBWrapper.
		Select("id", "username", "email", "password_hash", "first_name", "last_name", "is_active", "is_admin", "created_at", "last_login_at", "locations").
		From("users").
		Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&user)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, sql.ErrNoRows
	}

	return &user, nil
}

// GenerateJWT mints an HS256 bearer token carrying the user identity,
// valid for 24 hours.
func GenerateJWT(user *models.User) (string, time.Time, error) {
	expires := time.Now().Add(24 * time.Hour)
	claims := jwt.MapClaims{
		"userID":   user.ID,
		"username": user.Username,
		"email":    user.Email,
		"exp":      expires.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(jwtSecret)
	return signed, expires, err
}
