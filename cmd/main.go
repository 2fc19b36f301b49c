package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mzielinska/timetable-change-backend/internal/config"
	"github.com/mzielinska/timetable-change-backend/internal/domain"
	"github.com/mzielinska/timetable-change-backend/internal/infrastructure/db"
	"github.com/mzielinska/timetable-change-backend/internal/infrastructure/repository"
	"github.com/mzielinska/timetable-change-backend/internal/transport"
	"github.com/mzielinska/timetable-change-backend/internal/transport/handler"
	"github.com/mzielinska/timetable-change-backend/internal/usecase/service"
	"github.com/mzielinska/timetable-change-backend/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.NewLogger(cfg.App.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	slots, err := domain.ParseSlotTable(cfg.Schedule.TimeSlots)
	if err != nil {
		log.Fatal("invalid TIME_SLOTS configuration", zap.Error(err))
	}
	log.Info("slot table loaded", zap.Int("slots", slots.Len()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewDatabase(ctx, cfg.Database.URL, log)
	if err != nil {
		log.Fatal("database init failed", zap.Error(err))
	}
	defer pool.Close()

	changeRequestRepo := repository.NewChangeRequestRepository(pool, log)
	proposalRepo := repository.NewProposalRepository(pool, log)
	courseEventRepo := repository.NewCourseEventRepository(pool, log)
	recommendationRepo := repository.NewRecommendationRepository(pool, log)

	changeRequestService := service.NewChangeRequestService(changeRequestRepo, courseEventRepo, log)
	proposalService := service.NewProposalService(proposalRepo, changeRequestRepo, slots, log)
	taskService := service.NewTaskService(changeRequestRepo, proposalRepo, log)
	recommendationService := service.NewRecommendationService(recommendationRepo, changeRequestRepo, proposalRepo, log)
	calendarService := service.NewCalendarService(courseEventRepo, slots, log)

	router := transport.NewRouter(
		handler.NewChangeRequestHandler(changeRequestService, log),
		handler.NewProposalHandler(proposalService, log),
		handler.NewTaskHandler(taskService, log),
		handler.NewRecommendationHandler(recommendationService, log),
		handler.NewCalendarHandler(calendarService, log),
		handler.NewHealthHandler(log),
		log,
	)

	server := transport.NewServer(cfg.App.Port, router, log)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
