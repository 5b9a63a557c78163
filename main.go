package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/AMechouate/Warenbuchung-App-sub002/cmd"
	"github.com/AMechouate/Warenbuchung-App-sub002/internal/database"
	"github.com/AMechouate/Warenbuchung-App-sub002/internal/logger"
	"github.com/AMechouate/Warenbuchung-App-sub002/internal/orders"
	"github.com/AMechouate/Warenbuchung-App-sub002/internal/products"
	"github.com/AMechouate/Warenbuchung-App-sub002/internal/projects"
	"github.com/AMechouate/Warenbuchung-App-sub002/internal/repository"
	"github.com/AMechouate/Warenbuchung-App-sub002/internal/settings"
	"github.com/AMechouate/Warenbuchung-App-sub002/internal/suppliers"
	"github.com/AMechouate/Warenbuchung-App-sub002/internal/warenausgaenge"
	"github.com/AMechouate/Warenbuchung-App-sub002/internal/wareneingaenge"
	"github.com/AMechouate/Warenbuchung-App-sub002/pkg/auditlog"
	"github.com/AMechouate/Warenbuchung-App-sub002/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load .env file, but don't overwrite system environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, falling back to system environment variables.")
	}

	cmd.Execute(ctx)
}

func main() {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	zapLog := logger.NewLogger()
	defer zapLog.Sync()

	db, err := database.NewPostgresConnection(dbURL, zapLog)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	defer db.Close()

	repo := repository.NewRepository(db)
	auditLog := auditlog.NewAuditLog(repo)

	router := gin.Default()

	security.NewAuthHandler(repo).RegisterRoutes(router)
	products.RegisterRoutes(router, repo, auditLog)
	wareneingaenge.RegisterRoutes(router, repo, auditLog)
	warenausgaenge.RegisterRoutes(router, repo, auditLog)
	orders.RegisterRoutes(router, repo, auditLog)
	suppliers.RegisterRoutes(router, repo, auditLog)
	projects.RegisterRoutes(router, repo, auditLog)
	settings.RegisterRoutes(router, repo, auditLog)

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if err := router.Run(os.Getenv("APP_HOST")); err != nil {
		panic(err)
	}
}
