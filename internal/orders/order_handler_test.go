package orders

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AMechouate/Warenbuchung-App-sub002/pkg/auditlog"
	custom_error "github.com/AMechouate/Warenbuchung-App-sub002/pkg/errors"
	"github.com/AMechouate/Warenbuchung-App-sub002/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) GetOrders(orderNumber string) ([]models.OrderView, error) {
	args := m.Called(orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.OrderView), args.Error(1)
}

func (m *MockOrderRepository) GetOrder(orderID int) (*models.OrderView, error) {
	args := m.Called(orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrderView), args.Error(1)
}

func (m *MockOrderRepository) PersistOrder(order *models.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateOrder(orderID int, req models.UpdateOrderRequest) (bool, error) {
	args := m.Called(orderID, req)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) DeleteOrder(orderID int) (bool, error) {
	args := m.Called(orderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) OrderExists(orderID int) (bool, error) {
	args := m.Called(orderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) GetAssignments(orderID int) ([]models.OrderAssignmentView, error) {
	args := m.Called(orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.OrderAssignmentView), args.Error(1)
}

func (m *MockOrderRepository) PersistAssignment(item *models.OrderAssignedItem) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockOrderRepository) DeleteAssignment(orderID int, assignmentID int) (bool, error) {
	args := m.Called(orderID, assignmentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) ProductUnit(productID int) (*string, bool, error) {
	args := m.Called(productID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*string), args.Bool(1), args.Error(2)
}

type noopLogger struct{}

func (noopLogger) Log(action string, data interface{}, item auditlog.Auditable) {}

func newTestRouter(repo OrderRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewHandler(repo, noopLogger{})

	router := gin.New()
	router.GET("/api/orders", handler.GetOrders)
	router.POST("/api/orders", handler.CreateOrder)
	router.GET("/api/orders/:id/items", handler.GetAssignments)
	router.POST("/api/orders/:id/items", handler.CreateAssignment)
	router.DELETE("/api/orders/:id/items/:itemId", handler.DeleteAssignment)
	return router
}

func strPtr(s string) *string {
	return &s
}

func TestCreateAssignmentDefaultsToProductUnit(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	mockRepo.On("OrderExists", 5).Return(true, nil).Once()
	mockRepo.On("ProductUnit", 2).Return(strPtr("Karton"), true, nil).Once()
	mockRepo.On("PersistAssignment", mock.MatchedBy(func(item *models.OrderAssignedItem) bool {
		return item.OrderID == 5 && item.ProductID == 2 && item.Unit == "Karton"
	})).Return(nil).Once()

	router := newTestRouter(mockRepo)
	payload, _ := json.Marshal(models.CreateAssignmentRequest{ProductID: 2})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/orders/5/items", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockRepo.AssertExpectations(t)
}

func TestCreateAssignmentFallsBackToStueck(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	mockRepo.On("OrderExists", 5).Return(true, nil).Once()
	mockRepo.On("ProductUnit", 2).Return(nil, true, nil).Once()
	mockRepo.On("PersistAssignment", mock.MatchedBy(func(item *models.OrderAssignedItem) bool {
		return item.Unit == "Stück"
	})).Return(nil).Once()

	router := newTestRouter(mockRepo)
	payload, _ := json.Marshal(models.CreateAssignmentRequest{ProductID: 2})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/orders/5/items", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockRepo.AssertExpectations(t)
}

func TestCreateAssignmentDuplicateConflict(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	mockRepo.On("OrderExists", 5).Return(true, nil).Once()
	mockRepo.On("ProductUnit", 2).Return(strPtr("Stück"), true, nil).Once()
	mockRepo.On("PersistAssignment", mock.Anything).
		Return(custom_error.WrapDBError("duplicate key", "23505")).Once()

	router := newTestRouter(mockRepo)
	payload, _ := json.Marshal(models.CreateAssignmentRequest{ProductID: 2})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/orders/5/items", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateAssignmentUnknownOrder(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	mockRepo.On("OrderExists", 5).Return(false, nil).Once()

	router := newTestRouter(mockRepo)
	payload, _ := json.Marshal(models.CreateAssignmentRequest{ProductID: 2})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/orders/5/items", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockRepo.AssertNotCalled(t, "PersistAssignment", mock.Anything)
}

func TestCreateOrderDuplicateNumber(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	mockRepo.On("PersistOrder", mock.Anything).
		Return(custom_error.WrapDBError("duplicate key", "23505")).Once()

	router := newTestRouter(mockRepo)
	payload, _ := json.Marshal(models.CreateOrderRequest{OrderNumber: "B-2026-001"})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Order number already exists")
}

func TestGetOrdersPassesFilter(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	mockRepo.On("GetOrders", "B-2026").Return([]models.OrderView{}, nil).Once()

	router := newTestRouter(mockRepo)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/orders?orderNumber=B-2026", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockRepo.AssertExpectations(t)
}

func TestDeleteAssignmentNotFound(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	mockRepo.On("DeleteAssignment", 5, 9).Return(false, nil).Once()

	router := newTestRouter(mockRepo)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/api/orders/5/items/9", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
