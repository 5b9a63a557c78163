package wareneingaenge

import (
	"strings"
	"time"

	"github.com/AMechouate/Warenbuchung-App-sub002/internal/repository"
	"github.com/AMechouate/Warenbuchung-App-sub002/internal/stock"
	custom_error "github.com/AMechouate/Warenbuchung-App-sub002/pkg/errors"
	"github.com/AMechouate/Warenbuchung-App-sub002/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

var withTransaction = repository.WithTransaction

// Service keeps Product.StockQuantity consistent with the set of
// wareneingang rows. Every operation writes the ledger row and the
// product counter in one transaction.
type Service struct {
	db     *goqu.Database
	ledger WareneingangRepository
	stock  stock.Repository
}

func NewService(r *repository.Repository, ledger WareneingangRepository, stockRepo stock.Repository) *Service {
	return &Service{
		db:     r.GoquDBWrapper,
		ledger: ledger,
		stock:  stockRepo,
	}
}

// Capture mode "Lager" requires a note.
func validateRequest(req models.WareneingangRequest) error {
	if req.Erfassungstyp != nil && *req.Erfassungstyp == "Lager" {
		if req.Notes == nil || strings.TrimSpace(*req.Notes) == "" {
			return custom_error.NewValidationError("Bei Erfassungstyp 'Lager' muss eine Bemerkung angegeben werden.")
		}
	}
	return nil
}

func (s *Service) Create(req models.WareneingangRequest) (*models.Wareneingang, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	effective := palletQuantity(req.Notes, req.Quantity)

	row := &models.Wareneingang{
		ProductID:     req.ProductID,
		Quantity:      effective,
		UnitPrice:     req.UnitPrice,
		TotalPrice:    effective.Mul(req.UnitPrice),
		Erfassungstyp: req.Erfassungstyp,
		Referenz:      req.Referenz,
		Location:      req.Location,
		Supplier:      req.Supplier,
		BatchNumber:   req.BatchNumber,
		ExpiryDate:    req.ExpiryDate,
		Notes:         req.Notes,
		CreatedAt:     time.Now().UTC(),
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

		// Stock is counted in whole units, fractional quantities truncate.
		return s.stock.AdjustStock(tx, req.ProductID, int(effective.IntPart()))
	})
	if err != nil {
		return nil, err
	}

	return row, nil
}

func (s *Service) Update(id int, req models.WareneingangRequest) (*models.Wareneingang, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	effective := palletQuantity(req.Notes, req.Quantity)

	var row *models.Wareneingang
	err := withTransaction(s.db, func(tx *goqu.TxDatabase) error {
		var err error
		row, err = s.ledger.GetRow(tx, id)
		if err != nil {
			return err
		}
		if row == nil {
			return custom_error.NewNotFoundError("wareneingang")
		}

		exists, err := s.stock.ProductExists(tx, req.ProductID)
		if err != nil {
			return err
		}
		if !exists {
			return custom_error.NewNotFoundError("product")
		}

		// The delta is computed against the stored quantity read in
		// this transaction, so replaying the same update is a no-op.
		delta := effective.Sub(row.Quantity)
		now := time.Now().UTC()

		row.ProductID = req.ProductID
		row.Quantity = effective
		row.UnitPrice = req.UnitPrice
		row.TotalPrice = effective.Mul(req.UnitPrice)
		row.Erfassungstyp = req.Erfassungstyp
		row.Referenz = req.Referenz
		row.Location = req.Location
		row.Supplier = req.Supplier
		row.BatchNumber = req.BatchNumber
		row.ExpiryDate = req.ExpiryDate
		row.Notes = req.Notes
		row.UpdatedAt = &now

		if err := s.ledger.UpdateRow(tx, row); err != nil {
			return err
		}

		return s.stock.AdjustStock(tx, req.ProductID, int(delta.IntPart()))
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
			return custom_error.NewNotFoundError("wareneingang")
		}

		if err := s.stock.AdjustStock(tx, row.ProductID, -int(row.Quantity.IntPart())); err != nil {
			return err
		}

		return s.ledger.DeleteRow(tx, id)
	})
}
