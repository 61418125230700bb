package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"

	"carrental/internal/api"
	"carrental/internal/auth"
	"carrental/internal/repository"
	"carrental/internal/service"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	database, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := database.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	userRepo := repository.NewUserRepository(database)
	vehicleRepo := repository.NewVehicleRepository(database)
	bookingRepo := repository.NewBookingRepository(database)

	sender := service.NewSenderService()
	authSvc := service.NewAuthService(userRepo)
	vehicleSvc := service.NewVehicleService(vehicleRepo, service.DefaultVehicleRules())
	bookingSvc := service.NewBookingService(bookingRepo, vehicleRepo, userRepo, sender, service.DefaultBookingRules())

	authHandler := api.NewAuthHandler(authSvc)
	vehicleHandler := api.NewVehicleHandler(vehicleSvc)
	bookingHandler := api.NewBookingHandler(bookingSvc)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")

	// Authenticated endpoints
	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(auth.Middleware)
	protected.HandleFunc("/vehicles", vehicleHandler.Create).Methods("POST")
	protected.HandleFunc("/vehicles", vehicleHandler.List).Methods("GET")
	protected.HandleFunc("/vehicles/{id}", vehicleHandler.Get).Methods("GET")
	protected.HandleFunc("/vehicles/{id}", vehicleHandler.Update).Methods("PUT")
	protected.HandleFunc("/vehicles/{id}", vehicleHandler.Delete).Methods("DELETE")
	protected.HandleFunc("/bookings", bookingHandler.Create).Methods("POST")
	protected.HandleFunc("/bookings", bookingHandler.List).Methods("GET")

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handlers.LoggingHandler(os.Stdout, cors(r))))
}
