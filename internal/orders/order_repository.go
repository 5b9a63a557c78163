package orders

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/AMechouate/Warenbuchung-App-sub002/internal/repository"
	custom_error "github.com/AMechouate/Warenbuchung-App-sub002/pkg/errors"
	"github.com/AMechouate/Warenbuchung-App-sub002/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

type OrderRepository interface {
	GetOrders(orderNumber string) ([]models.OrderView, error)
	GetOrder(orderID int) (*models.OrderView, error)
	PersistOrder(order *models.Order) error
	UpdateOrder(orderID int, req models.UpdateOrderRequest) (bool, error)
	DeleteOrder(orderID int) (bool, error)
	OrderExists(orderID int) (bool, error)
	GetAssignments(orderID int) ([]models.OrderAssignmentView, error)
	PersistAssignment(item *models.OrderAssignedItem) error
	DeleteAssignment(orderID int, assignmentID int) (bool, error)
	ProductUnit(productID int) (*string, bool, error)
}

type orderRepositoryImpl struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) OrderRepository {
	return &orderRepositoryImpl{repository: r}
}

func (r *orderRepositoryImpl) ordersQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.
		Select(
			goqu.I("o.id").As("id"),
			goqu.I("o.order_number").As("order_number"),
			goqu.I("o.order_date").As("order_date"),
			goqu.I("o.status").As("status"),
			goqu.I("s.name").As("supplier_name"),
			goqu.I("o.supplier_id").As("supplier_id"),
			goqu.COUNT(goqu.I("i.id")).As("assigned_item_count"),
			goqu.I("o.created_at").As("created_at"),
			goqu.I("o.updated_at").As("updated_at"),
		).
		From(goqu.T("orders").As("o")).
		LeftJoin(
			goqu.T("suppliers").As("s"),
			goqu.On(goqu.Ex{"s.id": goqu.I("o.supplier_id")}),
		).
		LeftJoin(
			goqu.T("order_assigned_items").As("i"),
			goqu.On(goqu.Ex{"i.order_id": goqu.I("o.id")}),
		).
		GroupBy(goqu.I("o.id"), goqu.I("s.name"))
}

func (r *orderRepositoryImpl) GetOrders(orderNumber string) ([]models.OrderView, error) {
	query := r.ordersQuery().Order(goqu.I("o.order_date").Desc())

	if orderNumber != "" {
		query = query.Where(goqu.I("o.order_number").ILike("%" + orderNumber + "%"))
	}

	var views []models.OrderView
	if err := query.Executor().ScanStructs(&views); err != nil {
		return nil, fmt.Errorf("error executing SQL statement for orders: %w", err)
	}

	return views, nil
}

func (r *orderRepositoryImpl) GetOrder(orderID int) (*models.OrderView, error) {
	var view models.OrderView
	query := r.ordersQuery().Where(goqu.Ex{"o.id": orderID})

	found, err := query.Executor().ScanStruct(&view)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &view, nil
}

func (r *orderRepositoryImpl) PersistOrder(order *models.Order) error {
	query := r.repository.GoquDBWrapper.
		Insert("orders").
		Rows(goqu.Record{
			"order_number": order.OrderNumber,
			"order_date":   order.OrderDate,
			"status":       order.Status,
			"supplier_id":  order.SupplierID,
			"created_at":   order.CreatedAt,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&order.ID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("Order could not be saved", string(pqErr.Code))
		}
		return fmt.Errorf("failed to insert order record: %w", err)
	}

	return nil
}

func (r *orderRepositoryImpl) UpdateOrder(orderID int, req models.UpdateOrderRequest) (bool, error) {
	record := goqu.Record{"updated_at": time.Now().UTC()}
	if req.OrderNumber != nil {
		record["order_number"] = *req.OrderNumber
	}
	if req.OrderDate != nil {
		record["order_date"] = *req.OrderDate
	}
	if req.Status != nil {
		record["status"] = *req.Status
	}
	if req.SupplierID != nil {
		record["supplier_id"] = *req.SupplierID
	}

	result, err := r.repository.GoquDBWrapper.
		Update("orders").
		Set(record).
		Where(goqu.Ex{"id": orderID}).
		Executor().Exec()
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return false, custom_error.WrapDBError("Order could not be updated", string(pqErr.Code))
		}
		return false, fmt.Errorf("failed to update order record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to update order: %w", err)
	}

	return affected > 0, nil
}

func (r *orderRepositoryImpl) DeleteOrder(orderID int) (bool, error) {
	result, err := r.repository.GoquDBWrapper.
		Delete("orders").
		Where(goqu.Ex{"id": orderID}).
		Executor().Exec()
	if err != nil {
		return false, fmt.Errorf("failed to delete order: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete order: %w", err)
	}

	return affected > 0, nil
}

func (r *orderRepositoryImpl) OrderExists(orderID int) (bool, error) {
	var count int
	query := r.repository.GoquDBWrapper.
		Select(goqu.COUNT("id")).
		From("orders").
		Where(goqu.Ex{"id": orderID})

	if _, err := query.Executor().ScanVal(&count); err != nil {
		return false, fmt.Errorf("failed to check order %d: %w", orderID, err)
	}

	return count > 0, nil
}

func (r *orderRepositoryImpl) GetAssignments(orderID int) ([]models.OrderAssignmentView, error) {
	query := r.repository.GoquDBWrapper.
		Select(
			goqu.I("i.id").As("id"),
			goqu.I("i.order_id").As("order_id"),
			goqu.I("i.product_id").As("product_id"),
			goqu.I("p.name").As("product_name"),
			goqu.I("p.sku").As("product_sku"),
			goqu.I("i.default_quantity").As("default_quantity"),
			goqu.I("i.unit").As("unit"),
			goqu.I("i.created_at").As("created_at"),
			goqu.I("i.updated_at").As("updated_at"),
		).
		From(goqu.T("order_assigned_items").As("i")).
		Join(
			goqu.T("products").As("p"),
			goqu.On(goqu.Ex{"p.id": goqu.I("i.product_id")}),
		).
		Where(goqu.Ex{"i.order_id": orderID}).
		Order(goqu.I("p.name").Asc())

	var views []models.OrderAssignmentView
	if err := query.Executor().ScanStructs(&views); err != nil {
		return nil, fmt.Errorf("error executing SQL statement for order assignments: %w", err)
	}

	return views, nil
}

func (r *orderRepositoryImpl) PersistAssignment(item *models.OrderAssignedItem) error {
	query := r.repository.GoquDBWrapper.
		Insert("order_assigned_items").
		Rows(goqu.Record{
			"order_id":         item.OrderID,
			"product_id":       item.ProductID,
			"default_quantity": item.DefaultQuantity,
			"unit":             item.Unit,
			"created_at":       item.CreatedAt,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&item.ID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("Product is already assigned to this order", string(pqErr.Code))
		}
		return fmt.Errorf("failed to insert order assignment record: %w", err)
	}

	return nil
}

func (r *orderRepositoryImpl) DeleteAssignment(orderID int, assignmentID int) (bool, error) {
	result, err := r.repository.GoquDBWrapper.
		Delete("order_assigned_items").
		Where(goqu.Ex{"id": assignmentID, "order_id": orderID}).
		Executor().Exec()
	if err != nil {
		return false, fmt.Errorf("failed to delete order assignment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete order assignment: %w", err)
	}

	return affected > 0, nil
}

// ProductUnit reads the unit stored on the product so assignments can
// default to it when the request carries none.
func (r *orderRepositoryImpl) ProductUnit(productID int) (*string, bool, error) {
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
