package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/registrar-dev/academic-records-api/api/swagger"
	"github.com/registrar-dev/academic-records-api/internal/handler"
	"github.com/registrar-dev/academic-records-api/internal/middleware"
	"github.com/registrar-dev/academic-records-api/internal/repository"
	"github.com/registrar-dev/academic-records-api/internal/service"
	"github.com/registrar-dev/academic-records-api/pkg/cache"
	"github.com/registrar-dev/academic-records-api/pkg/config"
	"github.com/registrar-dev/academic-records-api/pkg/database"
	"github.com/registrar-dev/academic-records-api/pkg/logger"
	corsmiddleware "github.com/registrar-dev/academic-records-api/pkg/middleware/cors"
	reqidmiddleware "github.com/registrar-dev/academic-records-api/pkg/middleware/requestid"
)

// @title Academic Records API
// @version 1.0.0
// @description University registrar service: rosters, catalog, enrollment and reporting
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	cascades := repository.NewCascadeRepository(db)
	students := repository.NewStudentRepository(db)
	instructors := repository.NewInstructorRepository(db)
	courses := repository.NewCourseRepository(db)
	departments := repository.NewDepartmentRepository(db)
	sections := repository.NewSectionRepository(db)
	enrollments := repository.NewEnrollmentRepository(db)
	reports := repository.NewReportRepository(db)
	users := repository.NewUserRepository(db)

	studentSvc := service.NewStudentService(students, cascades, validate, logr)
	instructorSvc := service.NewInstructorService(instructors, cascades, validate, logr)
	courseSvc := service.NewCourseService(courses, cascades, validate, logr)
	departmentSvc := service.NewDepartmentService(departments, cascades, validate, logr)
	sectionSvc := service.NewSectionService(sections, cascades, validate, logr)
	enrollmentSvc := service.NewEnrollmentService(enrollments, cascades, validate, logr)
	reportSvc := service.NewReportService(reports, students, metricsSvc, cfg.Reports.TopGPALimit, logr)
	authSvc := service.NewAuthService(users, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	studentH := handler.NewStudentHandler(studentSvc)
	instructorH := handler.NewInstructorHandler(instructorSvc)
	courseH := handler.NewCourseHandler(courseSvc)
	departmentH := handler.NewDepartmentHandler(departmentSvc)
	sectionH := handler.NewSectionHandler(sectionSvc)
	enrollmentH := handler.NewEnrollmentHandler(enrollmentSvc)
	reportH := handler.NewReportHandler(reportSvc)
	authH := handler.NewAuthHandler(authSvc)
	metricsH := handler.NewMetricsHandler(metricsSvc, db)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsH.Health)
	r.GET("/ready", metricsH.Ready)
	r.GET("/metrics", metricsH.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authH.Login)

	// Entity list GETs can optionally serve through the redis cache. Report
	// routes stay uncached so they always reflect committed state.
	listGroup := api.Group("")
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, list cache disabled", "error", err)
		} else {
			defer redisClient.Close()
			listGroup.Use(middleware.ListCache(redisClient, metricsSvc, cfg.Cache.TTL, logr))
		}
	}
	listGroup.GET("/students", studentH.List)
	listGroup.GET("/instructors", instructorH.List)
	listGroup.GET("/courses", courseH.List)
	listGroup.GET("/departments", departmentH.List)
	listGroup.GET("/sections", sectionH.List)
	listGroup.GET("/enrollments", enrollmentH.List)

	protected := api.Group("")
	protected.Use(middleware.JWT(authSvc))
	protected.GET("/auth/me", authH.Me)
	protected.POST("/students", studentH.Create)
	protected.DELETE("/students/:id", studentH.Delete)
	protected.POST("/instructors", instructorH.Create)
	protected.DELETE("/instructors/:id", instructorH.Delete)
	protected.POST("/courses", courseH.Create)
	protected.DELETE("/courses/:id", courseH.Delete)
	protected.POST("/departments", departmentH.Create)
	protected.DELETE("/departments/:id", departmentH.Delete)
	protected.POST("/sections", sectionH.Create)
	protected.DELETE("/sections/:id", sectionH.Delete)
	protected.POST("/enrollments", enrollmentH.Create)
	protected.DELETE("/enrollments/:id", enrollmentH.Delete)

	reportsGroup := api.Group("/reports")
	reportsGroup.GET("/busiest-sections", reportH.BusiestSections)
	reportsGroup.GET("/department-stats", reportH.DepartmentStats)
	reportsGroup.GET("/students-by-major", reportH.StudentsByMajor)
	reportsGroup.GET("/top-gpa", reportH.TopStudents)
	reportsGroup.GET("/top-gpa/export", reportH.TopStudentsCSV)
	reportsGroup.GET("/transcript/:id", reportH.Transcript)
	reportsGroup.GET("/transcript/:id/export", reportH.TranscriptPDF)
	reportsGroup.GET("/overview", reportH.Overview)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
