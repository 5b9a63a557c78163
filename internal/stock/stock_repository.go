package stock

import (
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
)

// Repository applies ledger deltas to the product stock counter. The
// delta is added in SQL against the stored value, so two sequential
// updates never double-apply a cached quantity.
type Repository interface {
	ProductExists(tx *goqu.TxDatabase, productID int) (bool, error)
	AdjustStock(tx *goqu.TxDatabase, productID int, delta int) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) ProductExists(tx *goqu.TxDatabase, productID int) (bool, error) {
	var count int
	query := tx.Select(goqu.COUNT("id")).
		From("products").
		Where(goqu.Ex{"id": productID})

	if _, err := query.Executor().ScanVal(&count); err != nil {
		return false, fmt.Errorf("failed to check product %d: %w", productID, err)
	}

	return count > 0, nil
}

func (r *repositoryImpl) AdjustStock(tx *goqu.TxDatabase, productID int, delta int) error {
	query := tx.Update("products").
		Set(goqu.Record{
			"stock_quantity": goqu.L("stock_quantity + ?", delta),
			"updated_at":     time.Now().UTC(),
		}).
		Where(goqu.Ex{"id": productID})

	result, err := query.Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to adjust stock for product %d: %w", productID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected for product %d: %w", productID, err)
	}
	if affected == 0 {
		return fmt.Errorf("product %d does not exist", productID)
	}

	return nil
}
