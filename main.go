package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/omegonstudio/fotospatagonia-backend/config"
	"github.com/omegonstudio/fotospatagonia-backend/database"
	"github.com/omegonstudio/fotospatagonia-backend/handlers"
	"github.com/omegonstudio/fotospatagonia-backend/media"
	"github.com/omegonstudio/fotospatagonia-backend/permissions"
	"github.com/omegonstudio/fotospatagonia-backend/realtime"
	"github.com/omegonstudio/fotospatagonia-backend/repository"
	"github.com/omegonstudio/fotospatagonia-backend/services"
	"github.com/omegonstudio/fotospatagonia-backend/uploads"
	"github.com/omegonstudio/fotospatagonia-backend/workers"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	storagePaths := []string{cfg.OriginalsPath, cfg.WatermarksPath, cfg.ThumbnailsPath, cfg.ArchivesPath, filepath.Dir(cfg.DatabasePath)}
	for _, p := range storagePaths {
		log.Printf("Ensuring storage directory exists: %s", p)
		if err := os.MkdirAll(p, 0755); err != nil {
			log.Fatalf("FATAL: Failed to create storage directory %s: %v", p, err)
		}
	}

	db, err := database.InitGormDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	if err := database.AutoMigrateModels(db); err != nil {
		log.Fatalf("FATAL: Failed to migrate database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("FATAL: Failed to access underlying sql.DB: %v", err)
	}
	defer sqlDB.Close()

	mediaSubDirs := map[media.AssetType]string{
		media.AssetTypeOriginal:  filepath.Base(cfg.OriginalsPath),
		media.AssetTypeWatermark: filepath.Base(cfg.WatermarksPath),
		media.AssetTypeThumbnail: filepath.Base(cfg.ThumbnailsPath),
		media.AssetTypeArchive:   filepath.Base(cfg.ArchivesPath),
	}
	mediaStore, err := media.NewLocalStorage(cfg.MediaStoragePath, mediaSubDirs)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize media store: %v", err)
	}
	mediaProcessor := media.NewProcessor(mediaStore, cfg.WatermarkImagePath, cfg.WatermarkMaxSize, cfg.ThumbnailMaxSize)

	comboRepo := repository.NewComboRepository(db)
	albumRepo := repository.NewAlbumRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	photoRepo := repository.NewPhotoRepository(db)
	photographerRepo := repository.NewPhotographerRepository(db)
	tagRepo := repository.NewTagRepository(db)
	discountRepo := repository.NewDiscountRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	cartRepo := repository.NewCartRepository(db)
	savedCartRepo := repository.NewSavedCartRepository(db)

	tracker := uploads.NewStore()
	hub := realtime.NewHub()
	go hub.Run()

	log.Printf("Initializing upload worker pool (Workers: %d, Queue Size: %d)...", cfg.NumUploadWorkers, cfg.UploadQueueSize)
	uploadProcessor := workers.NewUploadProcessor(mediaStore, mediaProcessor, photoRepo, tracker, hub, cfg.UploadQueueSize, cfg.NumUploadWorkers)
	defer uploadProcessor.Stop()

	checkout := services.NewCheckoutService(orderRepo, photoRepo, comboRepo, discountRepo, photographerRepo, mediaStore, cfg.ArchivesPath, cfg.FullAlbumMinPhotos)
	cartService := services.NewCartService(cartRepo)

	jwtExpiration := time.Duration(cfg.JWTExpirationHours) * time.Hour
	authHandler := handlers.NewAuthHandler(userRepo, cartService, cfg.JWTSecret, jwtExpiration)
	comboHandler := handlers.NewComboHandler(comboRepo)
	albumHandler := handlers.NewAlbumHandler(albumRepo)
	sessionHandler := handlers.NewSessionHandler(sessionRepo, photoRepo)
	photoHandler := handlers.NewPhotoHandler(photoRepo, mediaStore)
	photographerHandler := handlers.NewPhotographerHandler(photographerRepo)
	tagHandler := handlers.NewTagHandler(tagRepo)
	discountHandler := handlers.NewDiscountHandler(discountRepo)
	pricingHandler := handlers.NewPricingHandler(comboRepo, photoRepo, discountRepo, cfg.FullAlbumMinPhotos)
	orderHandler := handlers.NewOrderHandler(orderRepo, checkout, cfg.ArchivesPath)
	uploadHandler := handlers.NewUploadHandler(tracker, uploadProcessor, sessionRepo, hub)
	statsHandler := handlers.NewStatsHandler(sqlDB)
	userHandler := handlers.NewUserHandler(userRepo)
	roleHandler := handlers.NewRoleHandler(roleRepo)
	cartHandler := handlers.NewCartHandler(cartService)
	savedCartHandler := handlers.NewSavedCartHandler(savedCartRepo, cartRepo)

	authenticate := func(next http.Handler) http.Handler {
		return handlers.AuthMiddleware(userRepo, []byte(cfg.JWTSecret), next)
	}
	maybeAuthenticate := func(next http.Handler) http.Handler {
		return handlers.OptionalAuthMiddleware(userRepo, []byte(cfg.JWTSecret), next)
	}
	requirePermission := func(permission string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return handlers.RequireGlobalPermission(permission, next)
		}
	}

	r := chi.NewRouter()

	corsOptions := cors.Options{
		AllowedOrigins:   []string{cfg.FrontendOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	corsHandler := cors.New(corsOptions)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsHandler.Handler)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/register", authHandler.Register)
			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Get("/me", authHandler.Me)
			})
		})

		r.Route("/combos", func(r chi.Router) {
			r.Get("/", comboHandler.ListActive)
			r.Get("/{id}", comboHandler.Get)
			r.Group(func(r chi.Router) {
				r.Use(authenticate, requirePermission(permissions.ManageCombos))
				r.Get("/all", comboHandler.ListAll)
				r.Post("/", comboHandler.Create)
				r.Put("/{id}", comboHandler.Update)
				r.Delete("/{id}", comboHandler.Delete)
			})
		})

		r.Route("/albums", func(r chi.Router) {
			r.Get("/", albumHandler.List)
			r.Get("/{id}", albumHandler.Get)
			r.Get("/{id}/photos", albumHandler.ListPhotos)
			r.Group(func(r chi.Router) {
				r.Use(authenticate, requirePermission(permissions.ManageAlbums))
				r.Post("/", albumHandler.Create)
				r.Put("/{id}", albumHandler.Update)
				r.Delete("/{id}", albumHandler.Delete)
			})
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", sessionHandler.List)
			r.Get("/{id}", sessionHandler.Get)
			r.Get("/{id}/photos", sessionHandler.ListPhotos)
			r.Group(func(r chi.Router) {
				r.Use(authenticate, requirePermission(permissions.ManageSessions))
				r.Post("/", sessionHandler.Create)
				r.Put("/{id}", sessionHandler.Update)
				r.Delete("/{id}", sessionHandler.Delete)
			})
		})

		r.Route("/photos", func(r chi.Router) {
			r.Get("/{id}", photoHandler.Get)
			r.Group(func(r chi.Router) {
				r.Use(authenticate, requirePermission(permissions.UploadPhotos))
				r.Put("/{id}", photoHandler.Update)
				r.Delete("/{id}", photoHandler.Delete)
			})
		})

		r.Route("/photographers", func(r chi.Router) {
			r.Get("/", photographerHandler.List)
			r.Get("/{id}", photographerHandler.Get)
			r.Group(func(r chi.Router) {
				r.Use(authenticate, requirePermission(permissions.ManagePhotographers))
				r.Post("/", photographerHandler.Create)
				r.Put("/{id}", photographerHandler.Update)
				r.Delete("/{id}", photographerHandler.Delete)
			})
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", tagHandler.List)
			r.Group(func(r chi.Router) {
				r.Use(authenticate, requirePermission(permissions.ManageAlbums))
				r.Post("/", tagHandler.Create)
				r.Put("/{id}", tagHandler.Update)
				r.Delete("/{id}", tagHandler.Delete)
			})
		})

		r.Route("/discounts", func(r chi.Router) {
			r.Get("/validate", discountHandler.Validate)
			r.Group(func(r chi.Router) {
				r.Use(authenticate, requirePermission(permissions.ManageDiscounts))
				r.Get("/", discountHandler.List)
				r.Post("/", discountHandler.Create)
				r.Put("/{id}", discountHandler.Update)
				r.Delete("/{id}", discountHandler.Delete)
			})
		})

		r.Post("/pricing/quote", pricingHandler.Quote)

		r.Route("/cart", func(r chi.Router) {
			r.Use(maybeAuthenticate)
			r.Get("/", cartHandler.Get)
			r.Put("/", cartHandler.Update)
			r.Delete("/", cartHandler.Empty)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{itemID}", cartHandler.UpdateItem)
			r.Delete("/items/{itemID}", cartHandler.RemoveItem)
		})

		r.Route("/saved-carts", func(r chi.Router) {
			r.Post("/sessions", savedCartHandler.CreateSession)
			r.Get("/sessions/{publicID}", savedCartHandler.GetSession)
			r.Group(func(r chi.Router) {
				r.Use(authenticate, requirePermission(permissions.ManageOrders))
				r.Get("/", savedCartHandler.List)
				r.Delete("/{id}", savedCartHandler.Delete)
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", orderHandler.Create)
			r.Get("/{publicID}", orderHandler.Get)
			r.Get("/{publicID}/zip", orderHandler.Archive)
			r.Group(func(r chi.Router) {
				r.Use(authenticate, requirePermission(permissions.ManageOrders))
				r.Get("/", orderHandler.List)
				r.Put("/{publicID}/status", orderHandler.UpdateStatus)
			})
			r.Group(func(r chi.Router) {
				r.Use(authenticate, requirePermission(permissions.ViewEarnings))
				r.Get("/{publicID}/earnings", orderHandler.Earnings)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticate, requirePermission(permissions.ViewEarnings))
			r.Get("/earnings/summary", statsHandler.EarningsSummary)
			r.Get("/earnings/photographers/{id}", statsHandler.PhotographerEarnings)
			r.Get("/stats/photo-sales", statsHandler.PhotoSales)
		})

		r.Route("/uploads", func(r chi.Router) {
			r.Use(authenticate, requirePermission(permissions.UploadPhotos))
			r.Post("/", uploadHandler.CreateBatch)
			r.Get("/", uploadHandler.List)
			r.Get("/{jobID}", uploadHandler.Get)
			r.Delete("/{jobID}", uploadHandler.Delete)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticate, requirePermission(permissions.ManageUsers))
			r.Get("/users/{id}", userHandler.Get)
			r.Put("/users/{id}/permissions", userHandler.SetPermissions)
			r.Get("/permissions", handlers.ListPermissionGroups)
		})

		r.Route("/roles", func(r chi.Router) {
			r.Use(authenticate, requirePermission(permissions.ManageRoles))
			r.Get("/", roleHandler.List)
			r.Post("/", roleHandler.Create)
			r.Get("/{id}", roleHandler.Get)
			r.Put("/{id}", roleHandler.Update)
			r.Delete("/{id}", roleHandler.Delete)
			r.Get("/{id}/users", roleHandler.Users)
			r.Put("/{id}/users/{userID}", roleHandler.AddUser)
			r.Delete("/{id}/users/{userID}", roleHandler.RemoveUser)
		})

		for _, assetPath := range []string{cfg.ThumbnailsPath, cfg.WatermarksPath, cfg.ArchivesPath} {
			subDir := filepath.Base(assetPath)
			r.Get("/"+subDir+"/*", handlers.AssetServer(cfg.MediaStoragePath, subDir))
			log.Printf("Registered asset server at /api/%s/*", subDir)
		}
	})

	r.Get("/ws", hub.ServeWS)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	serverAddr := ":" + port
	log.Printf("Server listening on %s", serverAddr)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}
