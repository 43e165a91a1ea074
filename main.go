package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"main/handler"
	"main/middleware"
	"main/repository"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Fatalf("Error loading .env file: %v", err)
	}

	// Check required environment variables
	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"USERS_COLLECTION",
		"SESSIONS_COLLECTION",
		"INVENTORY_COLLECTION",
		"CHECKLIST_COLLECTION",
		"ACTIVITIES_COLLECTION",
		"LOCATIONS_COLLECTION",
		"DOCUMENTS_COLLECTION",
		"JWT_SECRET_KEY",
		"PORT",
	}

	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()
	utils.InitJWT()
	utils.InitMongoClient()
}

// newCacheStore picks the jail backend. Redis when configured, an
// in-process store otherwise; the latter is fine for a single
// instance but not shared across replicas.
func newCacheStore() services.CacheStore {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		log.Printf("REDIS_URL not set, login throttling uses in-memory store")
		return services.NewMemoryStore()
	}

	store, err := services.NewRedisStore(redisURL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	return store
}

func setupRouter() *gin.Engine {
	router := gin.Default()

	// Repositories
	usersRepo := repository.GetUsersRepo(utils.MongoClient)
	sessionsRepo := repository.GetSessionsRepo(utils.MongoClient)
	inventoryRepo := repository.GetInventoryRepo(utils.MongoClient)
	checklistRepo := repository.GetChecklistRepo(utils.MongoClient)
	activitiesRepo := repository.GetActivitiesRepo(utils.MongoClient)
	locationsRepo := repository.GetLocationsRepo(utils.MongoClient)
	documentsRepo := repository.GetDocumentsRepo(utils.MongoClient)

	// The partial unique index on open sessions is what actually
	// prevents duplicate entries under concurrency.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := sessionsRepo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to ensure session indexes: %v", err)
	}
	if err := checklistRepo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to ensure checklist indexes: %v", err)
	}

	// Services
	jail := services.NewLoginJail(newCacheStore(), services.JailConfigFromEnv())
	zoneService := &services.ZoneService{
		Sessions:       sessionsRepo,
		Checklist:      checklistRepo,
		Activities:     activitiesRepo,
		Users:          usersRepo,
		Locations:      locationsRepo,
		Pipeline:       services.NewArchiveOnlyPipeline(documentsRepo),
		DefaultWorkday: utils.GetEnvAsDuration("DEFAULT_WORKDAY", 8*time.Hour),
	}
	checklistService := &services.ChecklistService{
		Entries:   checklistRepo,
		Inventory: inventoryRepo,
	}
	activityService := &services.ActivityService{
		Activities: activitiesRepo,
	}

	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.MetricsMiddleware())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes (no authentication required)
	public := router.Group("/api")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/login", func(c *gin.Context) {
				handler.LoginHandler(c, usersRepo, jail)
			})
		}
	}

	// Protected routes (authentication required)
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware(usersRepo))
	{
		zone := protected.Group("/zone")
		{
			zone.GET("/status", func(c *gin.Context) {
				handler.ZoneStatusHandler(c, zoneService)
			})
			zone.GET("/locations/resolve", func(c *gin.Context) {
				handler.ResolveLocationHandler(c, locationsRepo)
			})
			zone.GET("/documents", func(c *gin.Context) {
				handler.ListDocumentsHandler(c, documentsRepo)
			})
			zone.POST("/open", middleware.EntryGuard(sessionsRepo), func(c *gin.Context) {
				handler.OpenZoneHandler(c, zoneService)
			})

			// Personal equipment catalog
			zone.GET("/inventory", func(c *gin.Context) {
				handler.ListInventoryHandler(c, checklistService)
			})
			zone.POST("/inventory", func(c *gin.Context) {
				handler.CreateItemHandler(c, checklistService)
			})

			// Checklist routes need a session but must stay reachable
			// in PENDING_CHECKLIST, so no expiry guard here.
			checklist := zone.Group("/checklist", middleware.ActionGuard(sessionsRepo))
			{
				checklist.GET("", func(c *gin.Context) {
					handler.ListEntriesHandler(c, checklistService)
				})
				checklist.POST("/add", func(c *gin.Context) {
					handler.AddEntryHandler(c, checklistService)
				})
				checklist.POST("/remove", func(c *gin.Context) {
					handler.RemoveEntryHandler(c, checklistService)
				})
				checklist.POST("/bulk", func(c *gin.Context) {
					handler.BulkChecklistHandler(c, checklistService)
				})
				checklist.POST("/finalize", func(c *gin.Context) {
					handler.FinalizeChecklistHandler(c, zoneService)
				})
			}

			// In-zone routes: the expiry guard force-closes exhausted
			// sessions before the action guard resolves the current one.
			inside := zone.Group("", middleware.ExpiryGuard(zoneService), middleware.ActionGuard(sessionsRepo))
			{
				inside.GET("/activities", func(c *gin.Context) {
					handler.ListActivitiesHandler(c, activityService)
				})
				inside.POST("/activities/start", func(c *gin.Context) {
					handler.StartActivityHandler(c, activityService)
				})
				inside.POST("/activities/:id/finish", func(c *gin.Context) {
					handler.FinishActivityHandler(c, activityService)
				})
				inside.POST("/activities/:id/cancel", func(c *gin.Context) {
					handler.CancelActivityHandler(c, activityService)
				})
				inside.POST("/close", func(c *gin.Context) {
					handler.CloseZoneHandler(c, zoneService)
				})
			}
		}

		// Back office
		admin := protected.Group("/admin")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("/visitors", func(c *gin.Context) {
				handler.AdminListVisitorsHandler(c, usersRepo)
			})
			admin.GET("/sessions", func(c *gin.Context) {
				handler.AdminListSessionsHandler(c, sessionsRepo)
			})
			admin.POST("/sessions/:id/reactivate", func(c *gin.Context) {
				handler.AdminReactivateSessionHandler(c, zoneService)
			})
		}
	}

	return router
}

func main() {
	router := setupRouter()

	if utils.GetEnvAsBool("SYSTEM_METRICS", true) {
		utils.StartSystemMetrics(30 * time.Second)
	}

	port := utils.GetEnvAsString("PORT", "8080")

	serverAddr := fmt.Sprintf(":%s", port)
	log.Printf("Server starting on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
