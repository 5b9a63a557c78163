package products

import (
	"fmt"
	"time"

	"github.com/AMechouate/Warenbuchung-App-sub002/internal/repository"
	"github.com/AMechouate/Warenbuchung-App-sub002/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type ProductRepository interface {
	GetProducts() ([]models.Product, error)
	SearchProducts(query string) ([]models.Product, error)
	GetProduct(id int) (*models.Product, error)
	SkuExists(sku string, excludeID int) (bool, error)
	PersistProduct(req models.ProductRequest) (*models.Product, error)
	UpdateProduct(id int, req models.ProductRequest) error
	DeleteProduct(id int) (bool, error)
}

type productRepositoryImpl struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) ProductRepository {
	return &productRepositoryImpl{repository: r}
}

var productColumns = []interface{}{
	"id", "name", "description", "sku", "price", "item_type",
	"stock_quantity", "location_stock", "unit", "default_supplier",
	"created_at", "updated_at",
}

func (r *productRepositoryImpl) GetProducts() ([]models.Product, error) {
	var products []models.Product
	query := r.repository.GoquDBWrapper.Select(productColumns...).From("products")

	if err := query.Executor().ScanStructs(&products); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return products, nil
}

func (r *productRepositoryImpl) SearchProducts(search string) ([]models.Product, error) {
	var products []models.Product
	pattern := "%" + search + "%"
	query := r.repository.GoquDBWrapper.Select(productColumns...).
		From("products").
		Where(goqu.Or(
			goqu.C("sku").Like(pattern),
			goqu.C("name").Like(pattern),
		)).
		Order(goqu.C("name").Asc())

	if err := query.Executor().ScanStructs(&products); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return products, nil
}

func (r *productRepositoryImpl) GetProduct(id int) (*models.Product, error) {
	var product models.Product
	query := r.repository.GoquDBWrapper.Select(productColumns...).
		From("products").
		Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&product)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &product, nil
}

func (r *productRepositoryImpl) SkuExists(sku string, excludeID int) (bool, error) {
	var count int
	query := r.repository.GoquDBWrapper.Select(goqu.COUNT("id")).
		From("products").
		Where(goqu.Ex{"sku": sku})
	if excludeID != 0 {
		query = query.Where(goqu.C("id").Neq(excludeID))
	}

	if _, err := query.Executor().ScanVal(&count); err != nil {
		return false, fmt.Errorf("failed to check sku: %w", err)
	}

	return count > 0, nil
}

func (r *productRepositoryImpl) PersistProduct(req models.ProductRequest) (*models.Product, error) {
	itemType := req.ItemType
	if itemType == "" {
		itemType = "Gerät"
	}

	product := models.Product{
		Name:          req.Name,
		Description:   req.Description,
		SKU:           req.SKU,
		Price:         req.Price,
		ItemType:      itemType,
		StockQuantity: req.StockQuantity,
		LocationStock: req.LocationStock,
		Unit:          req.Unit,
		CreatedAt:     time.Now().UTC(),
	}

	query := r.repository.GoquDBWrapper.Insert("products").
		Rows(goqu.Record{
			"name":           product.Name,
			"description":    product.Description,
			"sku":            product.SKU,
			"price":          product.Price,
			"item_type":      product.ItemType,
			"stock_quantity": product.StockQuantity,
			"location_stock": product.LocationStock,
			"unit":           product.Unit,
			"created_at":     product.CreatedAt,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&product.ID); err != nil {
		return nil, fmt.Errorf("failed to insert product record: %w", err)
	}

	return &product, nil
}

func (r *productRepositoryImpl) UpdateProduct(id int, req models.ProductRequest) error {
	record := goqu.Record{
		"name":           req.Name,
		"description":    req.Description,
		"sku":            req.SKU,
		"price":          req.Price,
		"stock_quantity": req.StockQuantity,
		"location_stock": req.LocationStock,
		"unit":           req.Unit,
		"updated_at":     time.Now().UTC(),
	}
	if req.ItemType != "" {
		record["item_type"] = req.ItemType
	}

	query := r.repository.GoquDBWrapper.Update("products").
		Set(record).
		Where(goqu.Ex{"id": id})

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	return nil
}

func (r *productRepositoryImpl) DeleteProduct(id int) (bool, error) {
	result, err := r.repository.GoquDBWrapper.Delete("products").
		Where(goqu.Ex{"id": id}).
		Executor().Exec()
	if err != nil {
		return false, fmt.Errorf("failed to delete product: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}

	return affected > 0, nil
}
