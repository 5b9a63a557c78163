package settings

import (
	"fmt"
	"time"

	"github.com/AMechouate/Warenbuchung-App-sub002/internal/repository"
	custom_error "github.com/AMechouate/Warenbuchung-App-sub002/pkg/errors"
	"github.com/AMechouate/Warenbuchung-App-sub002/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

// UserFilter narrows the admin user list. Role is "admin", "user" or
// empty for both; inactive accounts are hidden unless asked for.
type UserFilter struct {
	Search          string
	Role            string
	IncludeInactive bool
}

type UserRepository interface {
	GetUsers(filter UserFilter) ([]models.User, error)
	GetUser(userID int) (*models.User, error)
	PersistUser(user *models.User) error
	UpdateUser(userID int, record goqu.Record) (bool, error)
	DeleteUser(userID int) (bool, error)
}

type userRepositoryImpl struct {
	repository *repository.Repository
}

func NewUserRepository(r *repository.Repository) UserRepository {
	return &userRepositoryImpl{repository: r}
}

func (r *userRepositoryImpl) GetUsers(filter UserFilter) ([]models.User, error) {
	query := r.repository.GoquDBWrapper.
		From("users").
		Order(goqu.I("username").Asc())

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(goqu.Or(
			goqu.I("username").ILike(pattern),
			goqu.I("email").ILike(pattern),
			goqu.I("first_name").ILike(pattern),
			goqu.I("last_name").ILike(pattern),
		))
	}

	switch filter.Role {
	case "admin":
		query = query.Where(goqu.Ex{"is_admin": true})
	case "user":
		query = query.Where(goqu.Ex{"is_admin": false})
	}

	if !filter.IncludeInactive {
		query = query.Where(goqu.Ex{"is_active": true})
	}

	var users []models.User
	if err := query.Executor().ScanStructs(&users); err != nil {
		return nil, fmt.Errorf("error executing SQL statement for users: %w", err)
	}

	return users, nil
}

func (r *userRepositoryImpl) GetUser(userID int) (*models.User, error) {
	var user models.User
	query := r.repository.GoquDBWrapper.
		From("users").
		Where(goqu.Ex{"id": userID})

	found, err := query.Executor().ScanStruct(&user)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &user, nil
}

func (r *userRepositoryImpl) PersistUser(user *models.User) error {
	query := r.repository.GoquDBWrapper.
		Insert("users").
		Rows(goqu.Record{
			"username":      user.Username,
			"email":         user.Email,
			"password_hash": user.PasswordHash,
			"first_name":    user.FirstName,
			"last_name":     user.LastName,
			"is_active":     user.IsActive,
			"is_admin":      user.IsAdmin,
			"locations":     user.Locations,
			"created_at":    user.CreatedAt,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&user.ID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("Username or email already exists", string(pqErr.Code))
		}
		return fmt.Errorf("failed to insert user record: %w", err)
	}

	return nil
}

func (r *userRepositoryImpl) UpdateUser(userID int, record goqu.Record) (bool, error) {
	result, err := r.repository.GoquDBWrapper.
		Update("users").
		Set(record).
		Where(goqu.Ex{"id": userID}).
		Executor().Exec()
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return false, custom_error.WrapDBError("Username or email already exists", string(pqErr.Code))
		}
		return false, fmt.Errorf("failed to update user record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to update user record: %w", err)
	}

	return affected > 0, nil
}

func (r *userRepositoryImpl) DeleteUser(userID int) (bool, error) {
	result, err := r.repository.GoquDBWrapper.
		Delete("users").
		Where(goqu.Ex{"id": userID}).
		Executor().Exec()
	if err != nil {
		return false, fmt.Errorf("failed to delete user record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete user record: %w", err)
	}

	return affected > 0, nil
}

// userUpdateRecord builds the partial update from the request; empty
// requests still touch updated_at only.
func userUpdateRecord(req models.UpdateUserRequest, passwordHash *string) goqu.Record {
	record := goqu.Record{"updated_at": time.Now().UTC()}
	if req.Username != nil {
		record["username"] = *req.Username
	}
	if req.Email != nil {
		record["email"] = *req.Email
	}
	if passwordHash != nil {
		record["password_hash"] = *passwordHash
	}
	if req.FirstName != nil {
		record["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		record["last_name"] = *req.LastName
	}
	if req.IsAdmin != nil {
		record["is_admin"] = *req.IsAdmin
	}
	if req.IsActive != nil {
		record["is_active"] = *req.IsActive
	}
	if req.Locations != nil {
		record["locations"] = *req.Locations
	}
	return record
}
