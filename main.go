package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"propcare/config"
	"propcare/database"
	casesRepo "propcare/database/repository/cases"
	eligibilityRepo "propcare/database/repository/eligibility"
	jobRepo "propcare/database/repository/job"
	orgRepo "propcare/database/repository/org"
	propertyRepo "propcare/database/repository/property"
	schedulerRepo "propcare/database/repository/scheduler"
	"propcare/handlers"
	"propcare/middleware"
	"propcare/routes"
	"propcare/services/access"
	"propcare/services/cases"
	"propcare/services/interval"
	"propcare/services/notification"
	"propcare/services/scheduling"
	"propcare/services/session"
	"propcare/services/triage"
	"propcare/utils"
	"propcare/worker"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	sessionClient := utils.GetSessionClient()
	eventsClient := utils.GetEventsClient()

	orgLocation, err := interval.LoadLocation(config.AppConfig.OrgTimezone)
	if err != nil {
		logger.Fatal("main: invalid ORG_TIMEZONE", zap.Error(err))
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(utils.RequestID())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	// repositories.
	caseRepo := casesRepo.NewMongoCaseRepo()
	propRepo := propertyRepo.NewMongoPropertyRepo()
	jobsRepo := jobRepo.NewMongoJobRepo()
	orgsRepo := orgRepo.NewMongoOrgRepo()
	eligRepo := eligibilityRepo.NewMongoEligibilityRepo()
	bookingRepo := schedulerRepo.NewMongoSchedulerRepo()

	// decision fan-out.
	queueClient := asynq.NewClient(worker.QueueRedisOpt())
	defer queueClient.Close()
	publisher := notification.NewAsynqPublisher(queueClient)
	fanoutServer := worker.StartFanoutWorker(worker.NewRedisChannelPublisher(eventsClient))

	// triage oracle.
	var oracle triage.Oracle = triage.NopOracle{}
	if key := config.AppConfig.GeminiAPIKey; key != "" {
		timeout := time.Duration(config.AppConfig.TriageTimeoutSeconds) * time.Second
		gemini, err := triage.NewGeminiOracle(context.Background(), key, config.AppConfig.TriageModel, timeout)
		if err != nil {
			logger.Warn("main: triage disabled", zap.Error(err))
		} else {
			defer gemini.Close()
			oracle = gemini
		}
	}

	// services.
	authorizer := access.NewAuthorizer(eligRepo)
	sessionService := session.NewService(
		session.NewRedisImpersonationStore(sessionClient),
		orgsRepo,
		time.Duration(config.AppConfig.ImpersonationTTLMinutes)*time.Minute,
	)
	caseService := cases.NewService(caseRepo, propRepo, authorizer, oracle, config.AppConfig.UrgencyThreshold)
	schedulingService := &scheduling.Service{
		Cases:       caseRepo,
		Jobs:        jobsRepo,
		Orgs:        orgsRepo,
		Bookings:    bookingRepo,
		Authorizer:  authorizer,
		Publisher:   publisher,
		Location:    orgLocation,
		GridMinutes: config.AppConfig.GridMinutes,
		Window: scheduling.Window{
			StartHour: config.AppConfig.DisplayStartHour,
			EndHour:   config.AppConfig.DisplayEndHour,
		},
		Now: time.Now,
	}

	handlerBundle := handlers.NewHandlerBundle(
		sessionService,
		handlers.NewCaseHandler(caseService),
		handlers.NewSchedulingHandler(schedulingService),
		handlers.NewAdminHandler(sessionService),
	)
	routes.RegisterRoutes(router, handlerBundle)

	healthCtx, stopHealth := context.WithCancel(context.Background())
	defer stopHealth()
	utils.StartHealthMonitor(healthCtx, 15*time.Second, []*redis.Client{sessionClient, eventsClient}, database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Info("Starting server", zap.String("addr", srv.Addr), zap.String("timezone", orgLocation.String()))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	fanoutServer.Shutdown()
	if err := database.Close(ctx); err != nil {
		logger.Warn("main: mongo disconnect failed", zap.Error(err))
	}

	logger.Info("main: server stopped gracefully")
}
