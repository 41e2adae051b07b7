package server

import (
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/raindropsacademy/tuition-backend/internal/config"
	"github.com/raindropsacademy/tuition-backend/internal/handler"
	"github.com/raindropsacademy/tuition-backend/internal/middleware"
	"github.com/raindropsacademy/tuition-backend/internal/repository"
	"github.com/raindropsacademy/tuition-backend/internal/service"
	"github.com/raindropsacademy/tuition-backend/pkg/gateway"
	"github.com/raindropsacademy/tuition-backend/pkg/mailer"
	"github.com/raindropsacademy/tuition-backend/pkg/storage"
)

type Server struct {
	engine *gin.Engine
	cfg    *config.Config
}

func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	imageStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		log.Fatalf("failed to initialize cloudinary storage: %v", err)
	}

	meiliClient := meilisearch.New(cfg.MeiliSearchHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	searchSvc := service.NewCourseSearchService(meiliClient)

	var paymentGateway gateway.PaymentGateway
	if cfg.StripeSecretKey != "" {
		paymentGateway, err = gateway.NewStripeGateway()
		if err != nil {
			log.Fatalf("failed to initialize stripe gateway: %v", err)
		}
	} else {
		log.Println("STRIPE_SECRET_KEY not set, card payments disabled")
	}

	var mail mailer.Mailer
	if cfg.SMTPHost != "" {
		mail, err = mailer.NewSMTPMailer()
		if err != nil {
			log.Fatalf("failed to initialize SMTP mailer: %v", err)
		}
	} else {
		log.Println("SMTP_HOST not set, using console mailer")
		mail = mailer.NewConsoleMailer()
	}

	authService := service.NewAuthService(userRepo)
	authHandler := handler.NewAuthHandler(authService)

	adminService := service.NewAdminService(userRepo, courseRepo, enrollmentRepo)
	adminHandler := handler.NewAdminHandler(adminService)

	courseService := service.NewCourseService(courseRepo, enrollmentRepo, userRepo, imageStorage, searchSvc)
	courseHandler := handler.NewCourseHandler(courseService)

	enrollmentService := service.NewEnrollmentService(enrollmentRepo, courseRepo)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentService)

	paymentService := service.NewPaymentService(enrollmentRepo, paymentRepo, paymentGateway, redisClient)
	paymentHandler := handler.NewPaymentHandler(paymentService)

	reportService := service.NewReportService(enrollmentRepo)
	reminderService := service.NewReminderService(enrollmentRepo, mail)
	reportHandler := handler.NewReportHandler(reportService, reminderService)

	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.AllowedOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authMiddleware := middleware.NewAuthMiddleware(userRepo)

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)

		// Public catalog
		api.GET("/courses", courseHandler.GetAll)
		api.GET("/courses/search", courseHandler.Search)
		api.GET("/courses/:id", courseHandler.GetByID)
	}

	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/auth/me", authHandler.Me)

		protected.POST("/enrollments", enrollmentHandler.Enroll)
		protected.GET("/enrollments/me", enrollmentHandler.GetMine)
		protected.POST("/enrollments/:id/checkout", paymentHandler.Checkout)
		protected.POST("/enrollments/:id/payments", paymentHandler.Record)

		teacher := protected.Group("/teacher")
		teacher.Use(authMiddleware.RequireTeacher())
		{
			teacher.GET("/courses", courseHandler.MyCourses)
			teacher.GET("/reports", reportHandler.TeacherReport)
			teacher.PUT("/profile", authHandler.UpdateTeacherProfile)
		}

		admin := protected.Group("/admin")
		admin.Use(authMiddleware.RequireAdmin())
		{
			admin.POST("/users", adminHandler.CreateUser)
			admin.GET("/users", adminHandler.GetAllUsers)
			admin.PUT("/users/:id", adminHandler.UpdateUser)
			admin.DELETE("/users/:id", adminHandler.DeleteUser)

			admin.POST("/courses", courseHandler.Create)
			admin.PUT("/courses/:id", courseHandler.Update)
			admin.DELETE("/courses/:id", courseHandler.Delete)

			admin.PUT("/enrollments/:id/complete", enrollmentHandler.MarkCompleted)
			admin.GET("/reports", reportHandler.AdminReport)
			admin.POST("/enrollments/:id/reminder", reportHandler.SendReminder)
		}
	}

	return &Server{
		engine: router,
		cfg:    cfg,
	}
}

func (s *Server) Run() error {
	return s.engine.Run(":" + s.cfg.Port)
}
