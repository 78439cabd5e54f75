package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"claimsync-service/internal/app/config"
	"claimsync-service/internal/app/delivery/http/controllers"
	"claimsync-service/internal/app/delivery/http/middlewares"
	"claimsync-service/internal/app/delivery/http/routers"
	"claimsync-service/internal/app/drivers/database"
	"claimsync-service/internal/app/drivers/logger"
	"claimsync-service/internal/app/drivers/messaging"
	"claimsync-service/internal/app/drivers/storage"
	"claimsync-service/internal/app/services/core/claims"
	"claimsync-service/internal/app/services/core/reconciliation"
	"claimsync-service/internal/app/services/shared/eventqueue"
	"claimsync-service/internal/app/services/shared/locker"
	"claimsync-service/internal/app/services/shared/redis"
	"claimsync-service/internal/app/services/shared/transport"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Version sets the default build version
var Version = "develop"

// Tag sets the default latest commit tag
var Tag = "0.0.1-rc"

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log.Printf("Version: %s, Tag: %s", Version, Tag)

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	postgresDB := database.NewPostgresDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	minioClient := storage.NewMinio(driverConfig)
	rabbitMQConnection := messaging.NewRabbitMQ(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		Postgres:       postgresDB,
		Redis:          redisClient,
		Minio:          minioClient,
		Logger:         zapLogger,
		RabbitMQ:       rabbitMQConnection,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	err := bootstrapingTheApp(bootstrap)
	if err != nil {
		log.Fatalf("Error bootstraping the app: %s", err.Error())
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", internalConfig.App.Port),
		Handler:           http.MaxBytesHandler(chiRouter, int64(internalConfig.App.RequestBodyLimitInMegabyte)<<20),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLogger.Info("Server started", zap.String("address", server.Addr), zap.String("env", internalConfig.App.Env))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Error shutting down app dependencies: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	cfg := bootstrap.InternalConfig

	// Shared infrastructure
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockService := locker.NewLockService(redisRepository, bootstrap.Logger)
	clearinghouseTransport := transport.NewMinioTransport(
		bootstrap.Minio,
		bootstrap.Logger,
		bootstrap.DriverConfig.Minio.BucketName,
		cfg.Transport.InboundPrefix,
		cfg.Transport.OutboundPrefix,
	)
	statusEventQueue, err := eventqueue.NewService(bootstrap.RabbitMQ, bootstrap.Logger, cfg.RabbitMQ.ClaimStatusEventQueue)
	if err != nil {
		return err
	}

	// Claims
	claimRepository := claims.NewClaimPostgresRepository(bootstrap.Postgres)
	responseFileRepository := claims.NewResponseFilePostgresRepository(bootstrap.Postgres)
	claimUsecase := claims.NewClaimUsecase(claimRepository, clearinghouseTransport, lockService, statusEventQueue, cfg, bootstrap.Logger)

	// Reconciliation
	engine := reconciliation.NewEngine(
		claimRepository,
		lockService,
		statusEventQueue,
		cfg.Reconciliation.ClaimLockTTL,
		cfg.Reconciliation.ClaimLockWait,
		bootstrap.Logger,
	)
	reconciliationUsecase := reconciliation.NewReconciliationUsecase(responseFileRepository, clearinghouseTransport, lockService, engine, cfg, bootstrap.Logger)

	worker := reconciliation.NewWorker(bootstrap.Logger, cfg, reconciliationUsecase)
	worker.Start(context.Background())
	bootstrap.WorkerStop = func() {
		worker.Stop()
		statusEventQueue.Close()
	}

	// HTTP
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, cfg)
	claimController := controllers.NewClaimController(bootstrap.Logger, claimUsecase)
	reconciliationController := controllers.NewReconciliationController(bootstrap.Logger, reconciliationUsecase, cfg)

	routers.SetupRoutes(bootstrap.Router, cfg, middlewares, claimController, reconciliationController)
	return nil
}
