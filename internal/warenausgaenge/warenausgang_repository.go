package warenausgaenge

import (
	"fmt"

	"github.com/AMechouate/Warenbuchung-App-sub002/internal/repository"
	"github.com/AMechouate/Warenbuchung-App-sub002/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type WarenausgangRepository interface {
	GetAll() ([]models.WarenausgangView, error)
	GetView(id int) (*models.WarenausgangView, error)
	GetRow(tx *goqu.TxDatabase, id int) (*models.Warenausgang, error)
	InsertRow(tx *goqu.TxDatabase, row *models.Warenausgang) error
	UpdateRow(tx *goqu.TxDatabase, row *models.Warenausgang) error
	DeleteRow(tx *goqu.TxDatabase, id int) error
}

type warenausgangRepositoryImpl struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) WarenausgangRepository {
	return &warenausgangRepositoryImpl{repository: r}
}

func viewQuery(db *goqu.Database) *goqu.SelectDataset {
	return db.
		Select(
			goqu.I("w.id").As("id"),
			goqu.I("w.product_id").As("product_id"),
			goqu.I("p.name").As("product_name"),
			goqu.I("w.quantity").As("quantity"),
			goqu.I("w.unit_price").As("unit_price"),
			goqu.I("w.total_price").As("total_price"),
			goqu.I("w.customer").As("customer"),
			goqu.I("w.order_number").As("order_number"),
			goqu.I("w.notes").As("notes"),
			goqu.I("w.attribut").As("attribut"),
			goqu.I("w.project_name").As("project_name"),
			goqu.I("w.begruendung").As("begruendung"),
			goqu.I("w.created_at").As("created_at"),
			goqu.I("w.updated_at").As("updated_at"),
		).
		From(goqu.T("warenausgaenge").As("w")).
		Join(
			goqu.T("products").As("p"),
			goqu.On(goqu.Ex{"p.id": goqu.I("w.product_id")}),
		)
}

func (r *warenausgangRepositoryImpl) GetAll() ([]models.WarenausgangView, error) {
	query := viewQuery(r.repository.GoquDBWrapper).
		Order(goqu.I("w.created_at").Desc())

	var views []models.WarenausgangView
	if err := query.Executor().ScanStructs(&views); err != nil {
		return nil, fmt.Errorf("error executing SQL statement for warenausgaenge: %w", err)
	}

	return views, nil
}

func (r *warenausgangRepositoryImpl) GetView(id int) (*models.WarenausgangView, error) {
	var view models.WarenausgangView
	query := viewQuery(r.repository.GoquDBWrapper).Where(goqu.Ex{"w.id": id})

	found, err := query.Executor().ScanStruct(&view)
	if err != nil {
		return nil, fmt.Errorf("failed to get warenausgang: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &view, nil
}

func (r *warenausgangRepositoryImpl) GetRow(tx *goqu.TxDatabase, id int) (*models.Warenausgang, error) {
	var row models.Warenausgang
	query := tx.
		Select("id", "product_id", "quantity", "unit_price", "total_price", "customer",
			"order_number", "notes", "attribut", "project_name", "begruendung",
			"created_at", "updated_at").
		From("warenausgaenge").
		Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&row)
	if err != nil {
		return nil, fmt.Errorf("failed to get warenausgang row: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &row, nil
}

func (r *warenausgangRepositoryImpl) InsertRow(tx *goqu.TxDatabase, row *models.Warenausgang) error {
	query := tx.Insert("warenausgaenge").
		Rows(goqu.Record{
			"product_id":   row.ProductID,
			"quantity":     row.Quantity,
			"unit_price":   row.UnitPrice,
			"total_price":  row.TotalPrice,
			"customer":     row.Customer,
			"order_number": row.OrderNumber,
			"notes":        row.Notes,
			"attribut":     row.Attribut,
			"project_name": row.ProjectName,
			"begruendung":  row.Begruendung,
			"created_at":   row.CreatedAt,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&row.ID); err != nil {
		return fmt.Errorf("failed to insert warenausgang record: %w", err)
	}

	return nil
}

func (r *warenausgangRepositoryImpl) UpdateRow(tx *goqu.TxDatabase, row *models.Warenausgang) error {
	query := tx.Update("warenausgaenge").
		Set(goqu.Record{
			"product_id":   row.ProductID,
			"quantity":     row.Quantity,
			"unit_price":   row.UnitPrice,
			"total_price":  row.TotalPrice,
			"customer":     row.Customer,
			"order_number": row.OrderNumber,
			"notes":        row.Notes,
			"attribut":     row.Attribut,
			"project_name": row.ProjectName,
			"begruendung":  row.Begruendung,
			"updated_at":   row.UpdatedAt,
		}).
		Where(goqu.Ex{"id": row.ID})

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to update warenausgang record: %w", err)
	}

	return nil
}

func (r *warenausgangRepositoryImpl) DeleteRow(tx *goqu.TxDatabase, id int) error {
	if _, err := tx.Delete("warenausgaenge").
		Where(goqu.Ex{"id": id}).
		Executor().Exec(); err != nil {
		return fmt.Errorf("failed to delete warenausgang record: %w", err)
	}

	return nil
}
