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

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/srgjo27/hostel_booking/internal/adapter/external"
	"github.com/srgjo27/hostel_booking/internal/adapter/handler"
	"github.com/srgjo27/hostel_booking/internal/adapter/repository/postgres"
	"github.com/srgjo27/hostel_booking/internal/core/services"
	"github.com/srgjo27/hostel_booking/internal/platform/database"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using OS environment.")
	}

	dbConfig := database.Config{
		Host:     envOr("DB_HOST", "localhost"),
		Port:     envOr("DB_PORT", "5432"),
		User:     envOr("DB_USER", "postgres"),
		Password: envOr("DB_PASSWORD", ""),
		DBName:   envOr("DB_NAME", "hostel_booking"),
	}

	db, err := database.NewPostgresDB(dbConfig)
	if err != nil {
		log.Fatalf("Failed to connect to db after retries: %v", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	defer db.Close()

	redisAddr := fmt.Sprintf("%s:%s", envOr("REDIS_HOST", "localhost"), envOr("REDIS_PORT", "6379"))
	log.Printf("Connecting to Redis at %s...", redisAddr)

	redisClient := redis.NewClient(&redis.Options{
		Addr: redisAddr,
		DB:   0,
	})

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Redis connected successfully!")

	platformClient := external.NewClient(envOr("PLATFORM_API_URL", "http://localhost:9000"))
	clock := services.NewSystemClock()

	bookingRepo := postgres.NewBookingRepository(db)
	bedRepo := postgres.NewBedRepository(db)
	assignmentRepo := postgres.NewAssignmentRepository(db)
	policyRepo := postgres.NewPolicyRepository(db)
	cancellationRepo := postgres.NewCancellationRepository(db)
	studentRepo := postgres.NewStudentRepository(db)
	guestRepo := postgres.NewGuestRepository(db)

	availabilityService := services.NewAvailabilityService(bookingRepo, redisClient)
	assignmentService := services.NewAssignmentService(assignmentRepo, bedRepo, redisClient, clock)
	bookingService := services.NewBookingService(
		bookingRepo, availabilityService, assignmentService, policyRepo, cancellationRepo,
		platformClient, redisClient, clock,
	)
	refundService := services.NewRefundService(cancellationRepo, clock)
	onboardingService := services.NewOnboardingService(
		bookingService, assignmentService, guestRepo, studentRepo, bedRepo,
		platformClient, platformClient, platformClient, platformClient, platformClient,
		clock,
	)

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()

	go bookingService.RunExpirySweep(sweepCtx)

	mux := http.NewServeMux()

	handler.NewBookingHandler(bookingService, refundService).Register(mux)
	handler.NewAvailabilityHandler(availabilityService).Register(mux)
	handler.NewOnboardingHandler(onboardingService, assignmentService).Register(mux)

	server := &http.Server{
		Addr:         ":" + envOr("PORT", "8080"),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")
	stopSweep()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
