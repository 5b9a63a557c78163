package products

import (
	"net/http"
	"strconv"

	"github.com/AMechouate/Warenbuchung-App-sub002/internal/repository"
	"github.com/AMechouate/Warenbuchung-App-sub002/pkg/auditlog"
	"github.com/AMechouate/Warenbuchung-App-sub002/pkg/models"
	"github.com/AMechouate/Warenbuchung-App-sub002/pkg/security"

	"github.com/gin-gonic/gin"
)

type ProductsHandler struct {
	Repository ProductRepository
	AuditLog   auditlog.Logger
}

func NewHandler(r ProductRepository, a auditlog.Logger) *ProductsHandler {
	return &ProductsHandler{
		Repository: r,
		AuditLog:   a,
	}
}

func RegisterRoutes(router *gin.Engine, repo *repository.Repository, a auditlog.Logger) {
	handler := NewHandler(NewRepository(repo), a)

	protected := router.Group("/api/products")
	protected.Use(security.JWTMiddleware())
	{
		protected.GET("", handler.GetProducts)
		protected.GET("/search", handler.SearchProducts)
		protected.GET("/:id", handler.GetProduct)
		protected.POST("", handler.CreateProduct)
		protected.PUT("/:id", handler.UpdateProduct)
		protected.DELETE("/:id", handler.DeleteProduct)
	}
}

func (h *ProductsHandler) GetProducts(c *gin.Context) {
	products, err := h.Repository.GetProducts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not obtain list of products", "details": err.Error()})
		return
	}

	if products == nil {
		products = []models.Product{}
	}

	c.JSON(http.StatusOK, products)
}

func (h *ProductsHandler) SearchProducts(c *gin.Context) {
	search := c.Query("query")
	if search == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required"})
		return
	}

	products, err := h.Repository.SearchProducts(search)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not search products", "details": err.Error()})
		return
	}

	if products == nil {
		products = []models.Product{}
	}

	c.JSON(http.StatusOK, products)
}

func (h *ProductsHandler) GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID", "details": err.Error()})
		return
	}

	product, err := h.Repository.GetProduct(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get product", "details": err.Error()})
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unable to find product", "code": "PRODUCT_NOT_FOUND"})
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductsHandler) CreateProduct(c *gin.Context) {
	var req models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	exists, err := h.Repository.SkuExists(req.SKU, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate SKU", "details": err.Error()})
		return
	}
	if exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "SKU already exists"})
		return
	}

	product, err := h.Repository.PersistProduct(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product", "details": err.Error()})
		return
	}

	go h.AuditLog.Log(
		"create",
		map[string]interface{}{
			"sku":  product.SKU,
			"name": product.Name,
			"msg":  "Product created successfully",
		},
		product,
	)

	c.JSON(http.StatusCreated, product)
}

func (h *ProductsHandler) UpdateProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID", "details": err.Error()})
		return
	}

	var req models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	product, err := h.Repository.GetProduct(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get product", "details": err.Error()})
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unable to find product", "code": "PRODUCT_NOT_FOUND"})
		return
	}

	exists, err := h.Repository.SkuExists(req.SKU, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate SKU", "details": err.Error()})
		return
	}
	if exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "SKU already exists"})
		return
	}

	if err := h.Repository.UpdateProduct(id, req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product", "details": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ProductsHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID", "details": err.Error()})
		return
	}

	product, err := h.Repository.GetProduct(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get product", "details": err.Error()})
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unable to find product", "code": "PRODUCT_NOT_FOUND"})
		return
	}

	if _, err := h.Repository.DeleteProduct(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product", "details": err.Error()})
		return
	}

	go h.AuditLog.Log(
		"remove",
		map[string]interface{}{
			"sku": product.SKU,
			"msg": "Product removed",
		},
		product,
	)

	c.Status(http.StatusNoContent)
}
