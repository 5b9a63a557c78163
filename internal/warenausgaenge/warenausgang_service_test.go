package warenausgaenge

import (
	"testing"

	custom_error "github.com/AMechouate/Warenbuchung-App-sub002/pkg/errors"
	"github.com/AMechouate/Warenbuchung-App-sub002/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) GetAll() ([]models.WarenausgangView, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WarenausgangView), args.Error(1)
}

func (m *MockLedgerRepository) GetView(id int) (*models.WarenausgangView, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WarenausgangView), args.Error(1)
}

func (m *MockLedgerRepository) GetRow(tx *goqu.TxDatabase, id int) (*models.Warenausgang, error) {
	args := m.Called(tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Warenausgang), args.Error(1)
}

func (m *MockLedgerRepository) InsertRow(tx *goqu.TxDatabase, row *models.Warenausgang) error {
	args := m.Called(tx, row)
	return args.Error(0)
}

func (m *MockLedgerRepository) UpdateRow(tx *goqu.TxDatabase, row *models.Warenausgang) error {
	args := m.Called(tx, row)
	return args.Error(0)
}

func (m *MockLedgerRepository) DeleteRow(tx *goqu.TxDatabase, id int) error {
	args := m.Called(tx, id)
	return args.Error(0)
}

type MockStockRepository struct {
	mock.Mock
}

func (m *MockStockRepository) ProductExists(tx *goqu.TxDatabase, productID int) (bool, error) {
	args := m.Called(tx, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStockRepository) AdjustStock(tx *goqu.TxDatabase, productID int, delta int) error {
	args := m.Called(tx, productID, delta)
	return args.Error(0)
}

func newTestService(ledger *MockLedgerRepository, stockRepo *MockStockRepository) (*Service, *goqu.TxDatabase) {
	tx := new(goqu.TxDatabase)
	withTransaction = func(db *goqu.Database, fn func(tx *goqu.TxDatabase) error) error {
		return fn(tx)
	}
	return &Service{ledger: ledger, stock: stockRepo}, tx
}

func TestCreateSubtractsStock(t *testing.T) {
	ledger := new(MockLedgerRepository)
	stockRepo := new(MockStockRepository)
	service, tx := newTestService(ledger, stockRepo)

	stockRepo.On("ProductExists", tx, 1).Return(true, nil).Once()
	ledger.On("InsertRow", tx, mock.MatchedBy(func(row *models.Warenausgang) bool {
		return row.Quantity == 12 && row.TotalPrice.Equal(decimal.NewFromInt(36))
	})).Return(nil).Once()
	stockRepo.On("AdjustStock", tx, 1, -12).Return(nil).Once()

	row, err := service.Create(models.WarenausgangRequest{
		ProductID: 1,
		Quantity:  12,
		UnitPrice: decimal.NewFromInt(3),
	})

	assert.NoError(t, err)
	assert.Equal(t, 12, row.Quantity)
	ledger.AssertExpectations(t)
	stockRepo.AssertExpectations(t)
}

func TestCreateAllowsIssueBeyondStock(t *testing.T) {
	ledger := new(MockLedgerRepository)
	stockRepo := new(MockStockRepository)
	service, tx := newTestService(ledger, stockRepo)

	// Stock can go negative; the booking itself never checks the level.
	stockRepo.On("ProductExists", tx, 5).Return(true, nil).Once()
	ledger.On("InsertRow", tx, mock.Anything).Return(nil).Once()
	stockRepo.On("AdjustStock", tx, 5, -1000).Return(nil).Once()

	_, err := service.Create(models.WarenausgangRequest{
		ProductID: 5,
		Quantity:  1000,
	})

	assert.NoError(t, err)
	stockRepo.AssertExpectations(t)
}

func TestCreateMissingProduct(t *testing.T) {
	ledger := new(MockLedgerRepository)
	stockRepo := new(MockStockRepository)
	service, tx := newTestService(ledger, stockRepo)

	stockRepo.On("ProductExists", tx, 99).Return(false, nil).Once()

	_, err := service.Create(models.WarenausgangRequest{
		ProductID: 99,
		Quantity:  1,
	})

	var notFound *custom_error.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	ledger.AssertNotCalled(t, "InsertRow", mock.Anything, mock.Anything)
}

func TestUpdateReturnsDifferenceToStock(t *testing.T) {
	ledger := new(MockLedgerRepository)
	stockRepo := new(MockStockRepository)
	service, tx := newTestService(ledger, stockRepo)

	stored := &models.Warenausgang{
		ID:        4,
		ProductID: 1,
		Quantity:  10,
	}

	// Issuing 4 instead of 10 gives 6 units back.
	ledger.On("GetRow", tx, 4).Return(stored, nil).Once()
	stockRepo.On("ProductExists", tx, 1).Return(true, nil).Once()
	ledger.On("UpdateRow", tx, mock.Anything).Return(nil).Once()
	stockRepo.On("AdjustStock", tx, 1, 6).Return(nil).Once()

	_, err := service.Update(4, models.WarenausgangRequest{
		ProductID: 1,
		Quantity:  4,
	})

	assert.NoError(t, err)
	stockRepo.AssertExpectations(t)
}

func TestUpdateWithUnchangedQuantityIsStockNeutral(t *testing.T) {
	ledger := new(MockLedgerRepository)
	stockRepo := new(MockStockRepository)
	service, tx := newTestService(ledger, stockRepo)

	stored := &models.Warenausgang{
		ID:        4,
		ProductID: 1,
		Quantity:  10,
	}

	ledger.On("GetRow", tx, 4).Return(stored, nil).Once()
	stockRepo.On("ProductExists", tx, 1).Return(true, nil).Once()
	ledger.On("UpdateRow", tx, mock.Anything).Return(nil).Once()
	stockRepo.On("AdjustStock", tx, 1, 0).Return(nil).Once()

	_, err := service.Update(4, models.WarenausgangRequest{
		ProductID: 1,
		Quantity:  10,
	})

	assert.NoError(t, err)
	stockRepo.AssertExpectations(t)
}

func TestDeleteRestoresStock(t *testing.T) {
	ledger := new(MockLedgerRepository)
	stockRepo := new(MockStockRepository)
	service, tx := newTestService(ledger, stockRepo)

	stored := &models.Warenausgang{
		ID:        9,
		ProductID: 2,
		Quantity:  15,
	}

	ledger.On("GetRow", tx, 9).Return(stored, nil).Once()
	stockRepo.On("AdjustStock", tx, 2, 15).Return(nil).Once()
	ledger.On("DeleteRow", tx, 9).Return(nil).Once()

	err := service.Delete(9)

	assert.NoError(t, err)
	ledger.AssertExpectations(t)
	stockRepo.AssertExpectations(t)
}

func TestDeleteMissingRow(t *testing.T) {
	ledger := new(MockLedgerRepository)
	stockRepo := new(MockStockRepository)
	service, tx := newTestService(ledger, stockRepo)

	ledger.On("GetRow", tx, 404).Return(nil, nil).Once()

	err := service.Delete(404)

	var notFound *custom_error.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	stockRepo.AssertNotCalled(t, "AdjustStock", mock.Anything, mock.Anything, mock.Anything)
}
