package warenausgaenge

import (
	"time"

	"github.com/AMechouate/Warenbuchung-App-sub002/internal/repository"
	"github.com/AMechouate/Warenbuchung-App-sub002/internal/stock"
	custom_error "github.com/AMechouate/Warenbuchung-App-sub002/pkg/errors"
	"github.com/AMechouate/Warenbuchung-App-sub002/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/shopspring/decimal"
)

var withTransaction = repository.WithTransaction

// Service books goods issues against the product stock counter. A
// booking may drive the counter below zero; shortfalls surface in the
// product list instead of blocking the issue.
type Service struct {
	db     *goqu.Database
	ledger WarenausgangRepository
	stock  stock.Repository
}

func NewService(r *repository.Repository, ledger WarenausgangRepository, stockRepo stock.Repository) *Service {
	return &Service{
		db:     r.GoquDBWrapper,
		ledger: ledger,
		stock:  stockRepo,
	}
}

func (s *Service) Create(req models.WarenausgangRequest) (*models.Warenausgang, error) {
	row := &models.Warenausgang{
		ProductID:   req.ProductID,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
		TotalPrice:  req.UnitPrice.Mul(decimal.NewFromInt(int64(req.Quantity))),
		Customer:    req.Customer,
		OrderNumber: req.OrderNumber,
		Notes:       req.Notes,
		Attribut:    req.Attribut,
		ProjectName: req.ProjectName,
		Begruendung: req.Begruendung,
		CreatedAt:   time.Now().UTC(),
	}

	err := withTransaction(s.db, func(tx *goqu.TxDatabase) error {
		exists, err := s.stock.ProductExists(tx, req.ProductID)
		if err != nil {
			return err
		}
		if !exists {
			return custom_error.NewNotFoundError("product")
		}

		if err := s.ledger.InsertRow(tx, row); err != nil {
			return err
		}

		return s.stock.AdjustStock(tx, req.ProductID, -req.Quantity)
	})
	if err != nil {
		return nil, err
	}

	return row, nil
}

func (s *Service) Update(id int, req models.WarenausgangRequest) (*models.Warenausgang, error) {
	var row *models.Warenausgang
	err := withTransaction(s.db, func(tx *goqu.TxDatabase) error {
		var err error
		row, err = s.ledger.GetRow(tx, id)
		if err != nil {
			return err
		}
		if row == nil {
			return custom_error.NewNotFoundError("warenausgang")
		}

		exists, err := s.stock.ProductExists(tx, req.ProductID)
		if err != nil {
			return err
		}
		if !exists {
			return custom_error.NewNotFoundError("product")
		}

		// Issuing more than before takes the difference off the stock,
		// issuing less gives it back. Computed against the stored row
		// so replaying the same update changes nothing.
		delta := row.Quantity - req.Quantity
		now := time.Now().UTC()

		row.ProductID = req.ProductID
		row.Quantity = req.Quantity
		row.UnitPrice = req.UnitPrice
		row.TotalPrice = req.UnitPrice.Mul(decimal.NewFromInt(int64(req.Quantity)))
		row.Customer = req.Customer
		row.OrderNumber = req.OrderNumber
		row.Notes = req.Notes
		row.Attribut = req.Attribut
		row.ProjectName = req.ProjectName
		row.Begruendung = req.Begruendung
		row.UpdatedAt = &now

		if err := s.ledger.UpdateRow(tx, row); err != nil {
			return err
		}

		return s.stock.AdjustStock(tx, req.ProductID, delta)
	})
	if err != nil {
		return nil, err
	}

	return row, nil
}

func (s *Service) Delete(id int) error {
	return withTransaction(s.db, func(tx *goqu.TxDatabase) error {
		row, err := s.ledger.GetRow(tx, id)
		if err != nil {
			return err
		}
		if row == nil {
			return custom_error.NewNotFoundError("warenausgang")
		}

		if err := s.stock.AdjustStock(tx, row.ProductID, row.Quantity); err != nil {
			return err
		}

		return s.ledger.DeleteRow(tx, id)
	})
}
