package wareneingaenge

import (
	"errors"
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

func (m *MockLedgerRepository) GetAll(groupByReferenz bool) ([]models.WareneingangView, error) {
	args := m.Called(groupByReferenz)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WareneingangView), args.Error(1)
}

func (m *MockLedgerRepository) GetView(id int) (*models.WareneingangView, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WareneingangView), args.Error(1)
}

func (m *MockLedgerRepository) GetRow(tx *goqu.TxDatabase, id int) (*models.Wareneingang, error) {
	args := m.Called(tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wareneingang), args.Error(1)
}

func (m *MockLedgerRepository) InsertRow(tx *goqu.TxDatabase, row *models.Wareneingang) error {
	args := m.Called(tx, row)
	return args.Error(0)
}

func (m *MockLedgerRepository) UpdateRow(tx *goqu.TxDatabase, row *models.Wareneingang) error {
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

func TestCreateRejectsLagerWithoutNotes(t *testing.T) {
	ledger := new(MockLedgerRepository)
	stockRepo := new(MockStockRepository)
	service, _ := newTestService(ledger, stockRepo)

	_, err := service.Create(models.WareneingangRequest{
		ProductID:     1,
		Quantity:      decimal.NewFromInt(5),
		Erfassungstyp: strPtr("Lager"),
	})

	var validation *custom_error.ValidationError
	assert.ErrorAs(t, err, &validation)
	ledger.AssertNotCalled(t, "InsertRow", mock.Anything, mock.Anything)
	stockRepo.AssertNotCalled(t, "AdjustStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateAppliesPalletConversion(t *testing.T) {
	ledger := new(MockLedgerRepository)
	stockRepo := new(MockStockRepository)
	service, tx := newTestService(ledger, stockRepo)

	stockRepo.On("ProductExists", tx, 1).Return(true, nil).Once()
	ledger.On("InsertRow", tx, mock.MatchedBy(func(row *models.Wareneingang) bool {
		return row.Quantity.Equal(decimal.NewFromInt(200)) &&
			row.TotalPrice.Equal(decimal.NewFromInt(400))
	})).Return(nil).Once()
	stockRepo.On("AdjustStock", tx, 1, 200).Return(nil).Once()

	row, err := service.Create(models.WareneingangRequest{
		ProductID: 1,
		Quantity:  decimal.NewFromInt(5),
		UnitPrice: decimal.NewFromInt(2),
		Notes:     strPtr("Eingabe: 2,5 Paletten"),
	})

	assert.NoError(t, err)
	assert.True(t, row.Quantity.Equal(decimal.NewFromInt(200)))
	ledger.AssertExpectations(t)
	stockRepo.AssertExpectations(t)
}

func TestCreateMissingProduct(t *testing.T) {
	ledger := new(MockLedgerRepository)
	stockRepo := new(MockStockRepository)
	service, tx := newTestService(ledger, stockRepo)

	stockRepo.On("ProductExists", tx, 99).Return(false, nil).Once()

	_, err := service.Create(models.WareneingangRequest{
		ProductID: 99,
		Quantity:  decimal.NewFromInt(1),
	})

	var notFound *custom_error.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	ledger.AssertNotCalled(t, "InsertRow", mock.Anything, mock.Anything)
}

func TestUpdateAppliesDeltaAgainstStoredQuantity(t *testing.T) {
	ledger := new(MockLedgerRepository)
	stockRepo := new(MockStockRepository)
	service, tx := newTestService(ledger, stockRepo)

	stored := &models.Wareneingang{
		ID:        7,
		ProductID: 1,
		Quantity:  decimal.NewFromInt(10),
	}

	ledger.On("GetRow", tx, 7).Return(stored, nil).Once()
	stockRepo.On("ProductExists", tx, 1).Return(true, nil).Once()
	ledger.On("UpdateRow", tx, mock.Anything).Return(nil).Once()
	stockRepo.On("AdjustStock", tx, 1, -6).Return(nil).Once()

	_, err := service.Update(7, models.WareneingangRequest{
		ProductID: 1,
		Quantity:  decimal.NewFromInt(4),
	})

	assert.NoError(t, err)
	ledger.AssertExpectations(t)
	stockRepo.AssertExpectations(t)
}

func TestUpdateWithUnchangedQuantityIsStockNeutral(t *testing.T) {
	ledger := new(MockLedgerRepository)
	stockRepo := new(MockStockRepository)
	service, tx := newTestService(ledger, stockRepo)

	stored := &models.Wareneingang{
		ID:        7,
		ProductID: 1,
		Quantity:  decimal.NewFromInt(10),
	}

	ledger.On("GetRow", tx, 7).Return(stored, nil).Once()
	stockRepo.On("ProductExists", tx, 1).Return(true, nil).Once()
	ledger.On("UpdateRow", tx, mock.Anything).Return(nil).Once()
	stockRepo.On("AdjustStock", tx, 1, 0).Return(nil).Once()

	_, err := service.Update(7, models.WareneingangRequest{
		ProductID: 1,
		Quantity:  decimal.NewFromInt(10),
	})

	assert.NoError(t, err)
	stockRepo.AssertExpectations(t)
}

func TestUpdateMissingRow(t *testing.T) {
	ledger := new(MockLedgerRepository)
	stockRepo := new(MockStockRepository)
	service, tx := newTestService(ledger, stockRepo)

	ledger.On("GetRow", tx, 404).Return(nil, nil).Once()

	_, err := service.Update(404, models.WareneingangRequest{
		ProductID: 1,
		Quantity:  decimal.NewFromInt(1),
	})

	var notFound *custom_error.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestDeleteReversesTruncatedQuantity(t *testing.T) {
	ledger := new(MockLedgerRepository)
	stockRepo := new(MockStockRepository)
	service, tx := newTestService(ledger, stockRepo)

	stored := &models.Wareneingang{
		ID:        3,
		ProductID: 2,
		Quantity:  decimal.RequireFromString("7.9"),
	}

	ledger.On("GetRow", tx, 3).Return(stored, nil).Once()
	stockRepo.On("AdjustStock", tx, 2, -7).Return(nil).Once()
	ledger.On("DeleteRow", tx, 3).Return(nil).Once()

	err := service.Delete(3)

	assert.NoError(t, err)
	ledger.AssertExpectations(t)
	stockRepo.AssertExpectations(t)
}

func TestCreateRollsBackOnStockFailure(t *testing.T) {
	ledger := new(MockLedgerRepository)
	stockRepo := new(MockStockRepository)
	service, tx := newTestService(ledger, stockRepo)

	stockRepo.On("ProductExists", tx, 1).Return(true, nil).Once()
	ledger.On("InsertRow", tx, mock.Anything).Return(nil).Once()
	stockRepo.On("AdjustStock", tx, 1, 5).Return(errors.New("deadlock")).Once()

	_, err := service.Create(models.WareneingangRequest{
		ProductID: 1,
		Quantity:  decimal.NewFromInt(5),
	})

	assert.Error(t, err)
}
