package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Azarenkov/aitu-web-app/config"
	"github.com/Azarenkov/aitu-web-app/cron"
	"github.com/Azarenkov/aitu-web-app/database"
	courseRepo "github.com/Azarenkov/aitu-web-app/database/repository/course"
	deadlineRepo "github.com/Azarenkov/aitu-web-app/database/repository/deadline"
	gradeRepo "github.com/Azarenkov/aitu-web-app/database/repository/grade"
	tokenRepo "github.com/Azarenkov/aitu-web-app/database/repository/token"
	userRepo "github.com/Azarenkov/aitu-web-app/database/repository/user"
	"github.com/Azarenkov/aitu-web-app/handlers"
	"github.com/Azarenkov/aitu-web-app/middleware"
	"github.com/Azarenkov/aitu-web-app/routes"
	"github.com/Azarenkov/aitu-web-app/services/data"
	"github.com/Azarenkov/aitu-web-app/services/moodle"
	"github.com/Azarenkov/aitu-web-app/services/notification"
	"github.com/Azarenkov/aitu-web-app/services/producer"
	"github.com/Azarenkov/aitu-web-app/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	tokens := tokenRepo.NewMongoTokenRepo()
	users := userRepo.NewMongoUserRepo()
	courses := courseRepo.NewMongoCourseRepo()
	grades := gradeRepo.NewMongoGradeRepo()
	deadlines := deadlineRepo.NewMongoDeadlineRepo()

	// services.
	moodleClient := moodle.NewClient(config.AppConfig.MoodleBaseURL)
	dataService := &data.DefaultDataService{
		Provider:  moodleClient,
		Tokens:    tokens,
		Users:     users,
		Courses:   courses,
		Grades:    grades,
		Deadlines: deadlines,
	}
	producerService := &producer.DefaultProducerService{
		Producer: notification.NewFCMProducer(),
		Provider: moodleClient,
		Data:     dataService,
	}

	userHandler := handlers.NewUserHandler(dataService)
	routes.RegisterRoutes(router, userHandler)

	utils.StartHealthMonitor(utils.GetQueueClient(), database.MongoClient)
	cron.InitPollWorker(producerService)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
