package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	_ "attendify/api/swagger" // swagger docs
	"attendify/internal/auth"
	"attendify/internal/database"
	"attendify/internal/handler"
	"attendify/internal/permission"
	"attendify/internal/repository"
	"attendify/internal/service"
	"attendify/internal/session"
	"attendify/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// newSessionStore picks the session backend from SESSION_STORE. The default
// is the database-backed store so sessions survive restarts; "memory" is for
// single-instance or development use.
func newSessionStore(db *gorm.DB, users repository.UserRepository, ttl time.Duration) session.Store {
	if getenv("SESSION_STORE", "database") != "memory" {
		return session.NewGormStore(db, ttl)
	}

	lookup := func(ctx context.Context, email string) (session.Identity, error) {
		user, err := users.GetByEmail(ctx, email)
		if err != nil {
			return session.Identity{}, err
		}
		return session.Identity{
			Email:       user.Email,
			Name:        user.Name,
			Role:        user.Role,
			Permissions: permission.Effective(user.Role, user.PermissionsAsBools()),
		}, nil
	}
	return session.NewMemoryStore(ttl, lookup)
}

// @title           Attendify API
// @version         1.0
// @description     Attendance, shift and admin management backend with cookie sessions and Google sign-in.
// @host            localhost:8080
// @BasePath        /
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dbHost := getenv("DB_HOST", "localhost")
	dbPort := getenv("DB_PORT", "5432")
	dbUser := getenv("DB_USER", "postgres")
	dbPassword := getenv("DB_PASSWORD", "postgres")
	dbName := getenv("DB_NAME", "attendify")
	dbSslMode := getenv("DB_SSLMODE", "disable")

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	holidayRepo := repository.NewHolidayRepository(db, txManager)
	shiftRepo := repository.NewShiftRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	sessionTTL := session.DefaultTTL
	if hours, err := strconv.Atoi(os.Getenv("SESSION_TTL_HOURS")); err == nil && hours > 0 {
		sessionTTL = time.Duration(hours) * time.Hour
	}
	store := newSessionStore(db, userRepo, sessionTTL)

	googleClient := auth.NewGoogleClient(auth.GoogleConfig{
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		StateSecret:  os.Getenv("OAUTH_STATE_SECRET"),
	})

	overwritePolicy := service.ParseOverwritePolicy(os.Getenv("OVERWRITE_POLICY"))

	authService := service.NewAuthService(userRepo, store, googleClient)
	userService := service.NewUserService(userRepo)
	employeeService := service.NewEmployeeService(employeeRepo)
	notificationService := service.NewNotificationService(notificationRepo, wsHub)
	attendanceService := service.NewAttendanceService(attendanceRepo, employeeRepo, holidayRepo, notificationService, overwritePolicy)
	holidayService := service.NewHolidayService(holidayRepo, notificationService)
	shiftService := service.NewShiftService(shiftRepo, employeeRepo, notificationService, overwritePolicy)

	// Seed the bootstrap superadmin so the first login works on a fresh
	// database. A no-op when the account already exists.
	seedEmail := os.Getenv("BOOTSTRAP_SUPERADMIN_EMAIL")
	seedPassword := os.Getenv("BOOTSTRAP_SUPERADMIN_PASSWORD")
	if seedEmail != "" && seedPassword != "" {
		if err := authService.SeedSuperadmin(context.Background(), seedEmail, seedPassword); err != nil {
			log.Fatalf("Superadmin seeding failed: %v", err)
		}
	} else {
		log.Println("BOOTSTRAP_SUPERADMIN_EMAIL/PASSWORD not set, skipping seed")
	}

	// Expired sessions are evicted lazily on access; the sweeper keeps the
	// store from accumulating rows for sessions that never come back.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if n, err := store.Sweep(context.Background()); err != nil {
				log.Printf("Session sweep failed: %v", err)
			} else if n > 0 {
				log.Printf("Session sweep removed %d expired sessions", n)
			}
		}
	}()

	// Initialize Handlers
	authHandler := handler.NewAuthHandler(authService, store, sessionTTL)
	adminHandler := handler.NewAdminHandler(userService, store)
	employeeHandler := handler.NewEmployeeHandler(employeeService, store)
	attendanceHandler := handler.NewAttendanceHandler(attendanceService, store)
	holidayHandler := handler.NewHolidayHandler(holidayService, store)
	shiftHandler := handler.NewShiftHandler(shiftService, store)
	notificationHandler := handler.NewNotificationHandler(notificationService, store)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration. Credentials must be allowed for the session cookie.
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(getenv("CORS_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173"), ",")
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, store)
	})

	// Register API Routes
	authHandler.RegisterRoutes(router.Group(""))
	adminHandler.RegisterRoutes(router.Group(""))
	employeeHandler.RegisterRoutes(router.Group(""))
	attendanceHandler.RegisterRoutes(router.Group(""))
	holidayHandler.RegisterRoutes(router.Group(""))
	shiftHandler.RegisterRoutes(router.Group(""))
	notificationHandler.RegisterRoutes(router.Group(""))

	port := getenv("PORT", "8080")

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
