package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Shahad2004/Medical-Backend/config"
	"github.com/Shahad2004/Medical-Backend/controllers"
	"github.com/Shahad2004/Medical-Backend/routes"
	"github.com/Shahad2004/Medical-Backend/services"
)

func main() {
	cfg := config.Load()

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("DB connection error: %v", err)
	}
	defer db.Close()
	log.Println("Connected to Postgres with connection pooling")

	authCtrl := controllers.NewAuthController(services.NewAuthService(db), cfg.JWTSecret)
	patientCtrl := controllers.NewPatientController(services.NewPatientService(db))
	appointmentCtrl := controllers.NewAppointmentController(services.NewAppointmentService(db))

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:    []string{"Content-Type", "Authorization", "Accept", "Origin"},
		MaxAge:          24 * time.Hour,
	}))

	api := r.Group("/api")
	api.GET("/health", controllers.HealthCheck(db))
	routes.AuthRoutes(api.Group("/auth"), authCtrl)
	routes.PatientRoutes(api.Group("/patients"), patientCtrl, cfg.JWTSecret)
	routes.AppointmentRoutes(api.Group("/appointments"), appointmentCtrl, cfg.JWTSecret)

	srv := &http.Server{
		Addr:    ":" + cfg.ListenPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.ListenPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
