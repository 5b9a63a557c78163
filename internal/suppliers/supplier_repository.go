package suppliers

import (
	"fmt"
	"time"

	"github.com/AMechouate/Warenbuchung-App-sub002/internal/repository"
	custom_error "github.com/AMechouate/Warenbuchung-App-sub002/pkg/errors"
	"github.com/AMechouate/Warenbuchung-App-sub002/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

type SupplierRepository interface {
	GetSuppliers(name string) ([]models.Supplier, error)
	GetSupplier(supplierID int) (*models.Supplier, error)
	PersistSupplier(supplier *models.Supplier) error
	UpdateSupplier(supplier *models.Supplier) (bool, error)
	DeleteSupplier(supplierID int) (bool, error)
	OrderCount(supplierID int) (int, error)
}

type supplierRepositoryImpl struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) SupplierRepository {
	return &supplierRepositoryImpl{repository: r}
}

func (r *supplierRepositoryImpl) GetSuppliers(name string) ([]models.Supplier, error) {
	query := r.repository.GoquDBWrapper.
		From("suppliers").
		Order(goqu.I("name").Asc())

	if name != "" {
		query = query.Where(goqu.I("name").ILike("%" + name + "%"))
	}

	var suppliers []models.Supplier
	if err := query.Executor().ScanStructs(&suppliers); err != nil {
		return nil, fmt.Errorf("error executing SQL statement for suppliers: %w", err)
	}

	return suppliers, nil
}

func (r *supplierRepositoryImpl) GetSupplier(supplierID int) (*models.Supplier, error) {
	var supplier models.Supplier
	query := r.repository.GoquDBWrapper.
		From("suppliers").
		Where(goqu.Ex{"id": supplierID})

	found, err := query.Executor().ScanStruct(&supplier)
	if err != nil {
		return nil, fmt.Errorf("failed to get supplier: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &supplier, nil
}

func (r *supplierRepositoryImpl) PersistSupplier(supplier *models.Supplier) error {
	query := r.repository.GoquDBWrapper.
		Insert("suppliers").
		Rows(goqu.Record{
			"name":           supplier.Name,
			"contact_person": supplier.ContactPerson,
			"email":          supplier.Email,
			"phone":          supplier.Phone,
			"address":        supplier.Address,
			"created_at":     supplier.CreatedAt,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&supplier.ID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("Supplier could not be saved", string(pqErr.Code))
		}
		return fmt.Errorf("failed to insert supplier record: %w", err)
	}

	return nil
}

func (r *supplierRepositoryImpl) UpdateSupplier(supplier *models.Supplier) (bool, error) {
	result, err := r.repository.GoquDBWrapper.
		Update("suppliers").
		Set(goqu.Record{
			"name":           supplier.Name,
			"contact_person": supplier.ContactPerson,
			"email":          supplier.Email,
			"phone":          supplier.Phone,
			"address":        supplier.Address,
			"updated_at":     time.Now().UTC(),
		}).
		Where(goqu.Ex{"id": supplier.ID}).
		Executor().Exec()
	if err != nil {
		return false, fmt.Errorf("failed to update supplier record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to update supplier record: %w", err)
	}

	return affected > 0, nil
}

func (r *supplierRepositoryImpl) DeleteSupplier(supplierID int) (bool, error) {
	result, err := r.repository.GoquDBWrapper.
		Delete("suppliers").
		Where(goqu.Ex{"id": supplierID}).
		Executor().Exec()
	if err != nil {
		return false, fmt.Errorf("failed to delete supplier record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete supplier record: %w", err)
	}

	return affected > 0, nil
}

func (r *supplierRepositoryImpl) OrderCount(supplierID int) (int, error) {
	var count int
	query := r.repository.GoquDBWrapper.
		Select(goqu.COUNT("id")).
		From("orders").
		Where(goqu.Ex{"supplier_id": supplierID})

	if _, err := query.Executor().ScanVal(&count); err != nil {
		return 0, fmt.Errorf("failed to count orders for supplier %d: %w", supplierID, err)
	}

	return count, nil
}
