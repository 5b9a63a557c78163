package wareneingaenge

import (
	"fmt"

	"github.com/AMechouate/Warenbuchung-App-sub002/internal/repository"
	"github.com/AMechouate/Warenbuchung-App-sub002/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type WareneingangRepository interface {
	GetAll(groupByReferenz bool) ([]models.WareneingangView, error)
	GetView(id int) (*models.WareneingangView, error)
	GetRow(tx *goqu.TxDatabase, id int) (*models.Wareneingang, error)
	InsertRow(tx *goqu.TxDatabase, row *models.Wareneingang) error
	UpdateRow(tx *goqu.TxDatabase, row *models.Wareneingang) error
	DeleteRow(tx *goqu.TxDatabase, id int) error
}

type wareneingangRepositoryImpl struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) WareneingangRepository {
	return &wareneingangRepositoryImpl{repository: r}
}

func viewQuery(db *goqu.Database) *goqu.SelectDataset {
	return db.
		Select(
			goqu.I("w.id").As("id"),
			goqu.I("w.product_id").As("product_id"),
			goqu.I("p.name").As("product_name"),
			goqu.I("p.sku").As("product_sku"),
			goqu.I("p.item_type").As("product_type"),
			goqu.I("w.quantity").As("quantity"),
			goqu.I("w.unit_price").As("unit_price"),
			goqu.I("w.total_price").As("total_price"),
			goqu.I("w.erfassungstyp").As("erfassungstyp"),
			goqu.I("w.referenz").As("referenz"),
			goqu.I("w.location").As("location"),
			goqu.I("w.supplier").As("supplier"),
			goqu.I("w.batch_number").As("batch_number"),
			goqu.I("w.expiry_date").As("expiry_date"),
			goqu.I("w.notes").As("notes"),
			goqu.I("w.created_at").As("created_at"),
			goqu.I("w.updated_at").As("updated_at"),
		).
		From(goqu.T("wareneingaenge").As("w")).
		Join(
			goqu.T("products").As("p"),
			goqu.On(goqu.Ex{"p.id": goqu.I("w.product_id")}),
		)
}

func (r *wareneingangRepositoryImpl) GetAll(groupByReferenz bool) ([]models.WareneingangView, error) {
	query := viewQuery(r.repository.GoquDBWrapper).
		Order(goqu.I("w.created_at").Desc())

	if groupByReferenz {
		// Keep rows with the same referenz adjacent for grouped display.
		query = query.Order(
			goqu.I("w.created_at").Desc(),
			goqu.L("COALESCE(w.referenz, '')").Asc(),
		)
	}

	var views []models.WareneingangView
	if err := query.Executor().ScanStructs(&views); err != nil {
		return nil, fmt.Errorf("error executing SQL statement for wareneingaenge: %w", err)
	}

	return views, nil
}

func (r *wareneingangRepositoryImpl) GetView(id int) (*models.WareneingangView, error) {
	var view models.WareneingangView
	query := viewQuery(r.repository.GoquDBWrapper).Where(goqu.Ex{"w.id": id})

	found, err := query.Executor().ScanStruct(&view)
	if err != nil {
		return nil, fmt.Errorf("failed to get wareneingang: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &view, nil
}

func (r *wareneingangRepositoryImpl) GetRow(tx *goqu.TxDatabase, id int) (*models.Wareneingang, error) {
	var row models.Wareneingang
	query := tx.
		Select("id", "product_id", "quantity", "unit_price", "total_price", "erfassungstyp",
			"referenz", "location", "supplier", "batch_number", "expiry_date", "notes",
			"created_at", "updated_at").
		From("wareneingaenge").
		Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&row)
	if err != nil {
		return nil, fmt.Errorf("failed to get wareneingang row: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &row, nil
}

func (r *wareneingangRepositoryImpl) InsertRow(tx *goqu.TxDatabase, row *models.Wareneingang) error {
	query := tx.Insert("wareneingaenge").
		Rows(goqu.Record{
			"product_id":    row.ProductID,
			"quantity":      row.Quantity,
			"unit_price":    row.UnitPrice,
			"total_price":   row.TotalPrice,
			"erfassungstyp": row.Erfassungstyp,
			"referenz":      row.Referenz,
			"location":      row.Location,
			"supplier":      row.Supplier,
			"batch_number":  row.BatchNumber,
			"expiry_date":   row.ExpiryDate,
			"notes":         row.Notes,
			"created_at":    row.CreatedAt,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&row.ID); err != nil {
		return fmt.Errorf("failed to insert wareneingang record: %w", err)
	}

	return nil
}

func (r *wareneingangRepositoryImpl) UpdateRow(tx *goqu.TxDatabase, row *models.Wareneingang) error {
	query := tx.Update("wareneingaenge").
		Set(goqu.Record{
			"product_id":    row.ProductID,
			"quantity":      row.Quantity,
			"unit_price":    row.UnitPrice,
			"total_price":   row.TotalPrice,
			"erfassungstyp": row.Erfassungstyp,
			"referenz":      row.Referenz,
			"location":      row.Location,
			"supplier":      row.Supplier,
			"batch_number":  row.BatchNumber,
			"expiry_date":   row.ExpiryDate,
			"notes":         row.Notes,
			"updated_at":    row.UpdatedAt,
		}).
		Where(goqu.Ex{"id": row.ID})

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to update wareneingang record: %w", err)
	}

	return nil
}

func (r *wareneingangRepositoryImpl) DeleteRow(tx *goqu.TxDatabase, id int) error {
	if _, err := tx.Delete("wareneingaenge").
		Where(goqu.Ex{"id": id}).
		Executor().Exec(); err != nil {
		return fmt.Errorf("failed to delete wareneingang record: %w", err)
	}

	return nil
}
