package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flashcard-srs/internal/application/usecases"
	"flashcard-srs/internal/domain/card"
	"flashcard-srs/internal/infrastructure/persistence"
	"flashcard-srs/internal/interfaces/rest"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env when present; environment variables still win
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env: %v", err)
	}

	// Initialize database
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "flashcards.db"
	}
	db, err := persistence.NewSQLiteDB(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize repository and scheduler
	cardRepo := persistence.NewCardRepository(db)
	scheduler := card.NewScheduler(card.DefaultSchedulerConfig())

	// Initialize use cases
	cardUseCase := usecases.NewCardUseCase(cardRepo)
	studyUseCase := usecases.NewStudyUseCase(cardRepo, usecases.DefaultSessionConfig())
	reviewUseCase := usecases.NewReviewUseCase(cardRepo, scheduler)
	statsUseCase := usecases.NewStatsUseCase(cardRepo, scheduler.Config())

	// Initialize HTTP handler
	handler := rest.NewHandler(cardUseCase, studyUseCase, reviewUseCase, statsUseCase, scheduler.Config())

	router := gin.Default()
	handler.RegisterRoutes(router)

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}
	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Handle graceful shutdown
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		log.Println("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Printf("Starting flashcard scheduler on %s...", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server error: %v", err)
	}
}
