package settings

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AMechouate/Warenbuchung-App-sub002/pkg/auditlog"
	"github.com/AMechouate/Warenbuchung-App-sub002/pkg/models"
	"github.com/AMechouate/Warenbuchung-App-sub002/pkg/security"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetUsers(filter UserFilter) ([]models.User, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) GetUser(userID int) (*models.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) PersistUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(userID int, record goqu.Record) (bool, error) {
	args := m.Called(userID, record)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) DeleteUser(userID int) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

type noopLogger struct{}

func (noopLogger) Log(action string, data interface{}, item auditlog.Auditable) {}

func newUserTestRouter(repo UserRepository, currentUserID int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewUsersHandler(repo, noopLogger{})

	router := gin.New()
	router.Use(func(c *gin.Context) {
		security.SetCurrentUserForTest(c, security.CurrentUser{ID: currentUserID, Username: "admin"})
	})
	router.GET("/api/settings/users", handler.GetUsers)
	router.DELETE("/api/settings/users/:id", handler.DeleteUser)
	return router
}

func TestGetUsersPassesFilter(t *testing.T) {
	mockRepo := new(MockUserRepository)
	expected := UserFilter{Search: "meier", Role: "admin", IncludeInactive: true}
	mockRepo.On("GetUsers", expected).Return([]models.User{}, nil).Once()

	router := newUserTestRouter(mockRepo, 1)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/settings/users?search=meier&role=admin&includeInactive=true", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockRepo.AssertExpectations(t)
}

func TestDeleteUserRejectsSelfDeletion(t *testing.T) {
	mockRepo := new(MockUserRepository)

	router := newUserTestRouter(mockRepo, 7)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/api/settings/users/7", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "cannot delete your own account")
	mockRepo.AssertNotCalled(t, "DeleteUser", mock.Anything)
}

func TestDeleteUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("DeleteUser", 3).Return(true, nil).Once()

	router := newUserTestRouter(mockRepo, 1)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/api/settings/users/3", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockRepo.AssertExpectations(t)
}

func TestDeleteUserNotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("DeleteUser", 99).Return(false, nil).Once()

	router := newUserTestRouter(mockRepo, 1)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/api/settings/users/99", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
