package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/encorebooking/api-agency/internal/auth"
	"github.com/encorebooking/api-agency/internal/customer"
	"github.com/encorebooking/api-agency/internal/negotiation"
	"github.com/encorebooking/api-agency/internal/negotiationlog"
	"github.com/encorebooking/api-agency/internal/quote"
	"github.com/encorebooking/api-agency/internal/reminder"
	"github.com/encorebooking/api-agency/internal/singer"
	"github.com/encorebooking/api-agency/internal/staff"
	"github.com/encorebooking/api-agency/internal/storage"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	_ = godotenv.Load()

	db, err := storage.FromEnv()
	if err != nil {
		log.Fatal("could not connect to database: ", err)
	}

	if err := db.AutoMigrate(
		&staff.Staff{},
		&customer.Customer{},
		&singer.Singer{},
		&negotiation.Negotiation{},
		&quote.Quote{},
		&negotiationlog.NegotiationLog{},
	); err != nil {
		log.Fatal("migration failed: ", err)
	}

	staffHandler := staff.NewHandler(db)
	customerHandler := customer.NewHandler(db)
	singerHandler := singer.NewHandler(db)
	negotiationHandler := negotiation.NewHandler(db)

	r := mux.NewRouter()
	r.HandleFunc("/login", staffHandler.Login).Methods("POST")

	api := r.NewRoute().Subrouter()
	api.Use(auth.Middleware)

	api.Handle("/staff", auth.RequireAdmin(http.HandlerFunc(staffHandler.Create))).Methods("POST")

	api.HandleFunc("/customers", customerHandler.Create).Methods("POST")
	api.HandleFunc("/customers", customerHandler.List).Methods("GET")
	api.HandleFunc("/customers/{id}", customerHandler.FindByID).Methods("GET")
	api.HandleFunc("/customers/{id}", customerHandler.Update).Methods("PUT")
	api.HandleFunc("/customers/{id}", customerHandler.Delete).Methods("DELETE")

	api.HandleFunc("/singers", singerHandler.Create).Methods("POST")
	api.HandleFunc("/singers", singerHandler.List).Methods("GET")
	api.HandleFunc("/singers/{id}", singerHandler.FindByID).Methods("GET")
	api.HandleFunc("/singers/{id}", singerHandler.Update).Methods("PUT")
	api.HandleFunc("/singers/{id}", singerHandler.Delete).Methods("DELETE")

	api.HandleFunc("/negotiations", negotiationHandler.Create).Methods("POST")
	api.HandleFunc("/negotiations", negotiationHandler.List).Methods("GET")
	api.HandleFunc("/negotiations/{id}", negotiationHandler.FindByID).Methods("GET")
	api.HandleFunc("/negotiations/{id}", negotiationHandler.Update).Methods("PUT")
	api.HandleFunc("/negotiations/{id}", negotiationHandler.Delete).Methods("DELETE")

	api.HandleFunc("/quotes", negotiationHandler.CreateQuote).Methods("POST")
	api.HandleFunc("/quotes/{id}", negotiationHandler.FindQuoteByID).Methods("GET")
	api.HandleFunc("/quotes/{id}", negotiationHandler.UpdateQuote).Methods("PUT")
	api.HandleFunc("/quotes/{id}", negotiationHandler.DeleteQuote).Methods("DELETE")
	api.HandleFunc("/negotiations/{id}/quotes", negotiationHandler.ListQuotes).Methods("GET")

	api.HandleFunc("/negotiations/{id}/logs", negotiationHandler.ListLogs).Methods("GET")
	api.HandleFunc("/negotiations/{id}/logs", negotiationHandler.CreateLog).Methods("POST")

	sweeper := reminder.NewService(db)
	sweeper.StartScheduler()

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Println("server listening on http://localhost:" + port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
