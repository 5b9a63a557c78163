package projects

import (
	"database/sql"
	"fmt"

	"github.com/AMechouate/Warenbuchung-App-sub002/internal/repository"
	custom_error "github.com/AMechouate/Warenbuchung-App-sub002/pkg/errors"
	"github.com/AMechouate/Warenbuchung-App-sub002/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

type ProjectRepository interface {
	GetAssignments(projectKey string) ([]models.ProjectAssignmentView, error)
	PersistAssignment(item *models.ProjectAssignedItem) error
	DeleteAssignment(projectKey string, assignmentID int) (bool, error)
	ProductUnit(productID int) (*string, bool, error)
}

type projectRepositoryImpl struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) ProjectRepository {
	return &projectRepositoryImpl{repository: r}
}

func (r *projectRepositoryImpl) GetAssignments(projectKey string) ([]models.ProjectAssignmentView, error) {
	query := r.repository.GoquDBWrapper.
		Select(
			goqu.I("i.id").As("id"),
			goqu.I("i.project_key").As("project_key"),
			goqu.I("i.product_id").As("product_id"),
			goqu.I("p.name").As("product_name"),
			goqu.I("p.sku").As("product_sku"),
			goqu.I("i.default_quantity").As("default_quantity"),
			goqu.I("i.unit").As("unit"),
			goqu.I("i.created_at").As("created_at"),
			goqu.I("i.updated_at").As("updated_at"),
		).
		From(goqu.T("project_assigned_items").As("i")).
		Join(
			goqu.T("products").As("p"),
			goqu.On(goqu.Ex{"p.id": goqu.I("i.product_id")}),
		).
		Where(goqu.Ex{"i.project_key": projectKey}).
		Order(goqu.I("p.name").Asc())

	var views []models.ProjectAssignmentView
	if err := query.Executor().ScanStructs(&views); err != nil {
		return nil, fmt.Errorf("error executing SQL statement for project assignments: %w", err)
	}

	return views, nil
}

func (r *projectRepositoryImpl) PersistAssignment(item *models.ProjectAssignedItem) error {
	query := r.repository.GoquDBWrapper.
		Insert("project_assigned_items").
		Rows(goqu.Record{
			"project_key":      item.ProjectKey,
			"product_id":       item.ProductID,
			"default_quantity": item.DefaultQuantity,
			"unit":             item.Unit,
			"created_at":       item.CreatedAt,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&item.ID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("Product is already assigned to this project", string(pqErr.Code))
		}
		return fmt.Errorf("failed to insert project assignment record: %w", err)
	}

	return nil
}

func (r *projectRepositoryImpl) DeleteAssignment(projectKey string, assignmentID int) (bool, error) {
	result, err := r.repository.GoquDBWrapper.
		Delete("project_assigned_items").
		Where(goqu.Ex{"id": assignmentID, "project_key": projectKey}).
		Executor().Exec()
	if err != nil {
		return false, fmt.Errorf("failed to delete project assignment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete project assignment: %w", err)
	}

	return affected > 0, nil
}

func (r *projectRepositoryImpl) ProductUnit(productID int) (*string, bool, error) {
	var unit sql.NullString
	query := r.repository.GoquDBWrapper.
		Select("unit").
		From("products").
		Where(goqu.Ex{"id": productID})

	found, err := query.Executor().ScanVal(&unit)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get product unit: %w", err)
	}
	if !found {
		return nil, false, nil
	}
	if !unit.Valid {
		return nil, true, nil
	}

	return &unit.String, true, nil
}
