package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codearena/internal/api"
	"codearena/internal/app/judge"
	"codearena/internal/app/service"
	"codearena/internal/app/worker"
	"codearena/internal/domain/repository"
	"codearena/internal/platform/config"
	"codearena/internal/platform/database"
	"codearena/internal/platform/queue"
)

func main() {
	config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	database.Connect()
	defer database.Close()

	queue.ConnectRedis()
	defer queue.CloseRedis()
	logger.Info("storage connected")

	contestRepo := repository.NewPgContestRepository(database.DB)
	problemRepo := repository.NewPgProblemRepository(database.DB)
	userRepo := repository.NewPgUserRepository(database.DB)
	submissionRepo := repository.NewPgSubmissionRepository(database.DB)

	judgeQueue := queue.NewRedisQueue(queue.RDB, config.AppConfig.JudgeQueueName)

	contestService := service.NewContestService(contestRepo, problemRepo, userRepo)
	submissionService := service.NewSubmissionService(submissionRepo, judgeQueue, logger)
	leaderboardService := service.NewLeaderboardService(userRepo, submissionRepo)

	seed := config.AppConfig.JudgeRandSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	grader := judge.New(judge.NewRand(seed))

	judgeWorker := worker.New(judgeQueue, submissionRepo, problemRepo, grader, worker.Config{
		CompileDelay:  config.AppConfig.CompileDelay,
		ExecuteDelay:  config.AppConfig.ExecuteDelay,
		MaxConcurrent: config.AppConfig.MaxConcurrentJudges,
	}, logger)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	go judgeWorker.Start(workerCtx)

	router := api.NewRouter(contestService, submissionService, leaderboardService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", "port", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v", config.AppConfig.APIPort, err)
		}
	}()

	<-stop

	logger.Info("shutting down")
	workerCancel()
	judgeWorker.Wait()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	logger.Info("server and worker stopped")
}
