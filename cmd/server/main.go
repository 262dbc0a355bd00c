package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/sivamiruthula/crime-management/internal/config"
	"github.com/sivamiruthula/crime-management/internal/controllers"
	"github.com/sivamiruthula/crime-management/internal/database"
	"github.com/sivamiruthula/crime-management/internal/idgen"
	"github.com/sivamiruthula/crime-management/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()
	logger := zlog.Sugar()

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatalw("failed to connect to database", "error", err)
	}

	if err := database.Migrate(db); err != nil {
		logger.Fatalw("migration failed", "error", err)
	}

	// Shared collaborators
	sink := services.NewSink()
	alloc := idgen.NewCaseAllocator()

	// Services
	sessionSvc := services.NewSessionService(db, sink, logger, cfg.SessionTimeoutMinutes)
	staffSvc := services.NewStaffService(db, sink, logger, cfg.BcryptCost)
	referenceSvc := services.NewReferenceService(db, sink, logger)
	caseSvc := services.NewCaseService(db, sink, alloc, logger)
	evidenceSvc := services.NewEvidenceService(db, sink, logger)
	investigationSvc := services.NewInvestigationService(db, sink, logger)
	notificationSvc := services.NewNotificationService(db)

	// Controllers
	authCtrl := controllers.NewAuthController(sessionSvc)
	staffCtrl := controllers.NewStaffController(staffSvc)
	referenceCtrl := controllers.NewReferenceController(referenceSvc)
	caseCtrl := controllers.NewCaseController(caseSvc)
	evidenceCtrl := controllers.NewEvidenceController(evidenceSvc)
	investigationCtrl := controllers.NewInvestigationController(investigationSvc)
	notificationCtrl := controllers.NewNotificationController(notificationSvc)

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Validator = controllers.NewRequestValidator()

	// Routes: login is public, everything else sits behind the session
	// middleware.
	public := e.Group("/api/v1")
	protected := e.Group("/api/v1", controllers.SessionAuth(sessionSvc))

	authCtrl.Register(public, protected)
	staffCtrl.Register(protected)
	referenceCtrl.Register(protected)
	caseCtrl.Register(protected)
	evidenceCtrl.Register(protected)
	investigationCtrl.Register(protected)
	notificationCtrl.Register(protected)

	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
