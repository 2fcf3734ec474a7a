package http

import (
	"net/http"

	"chem-backend/internal/handlers"
	"chem-backend/internal/middleware"
	"chem-backend/pkg/utils"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	userHandler *handlers.UserHandler,
	chemicalHandler *handlers.ChemicalHandler,
	purchaseHandler *handlers.PurchaseHandler,
	saleHandler *handlers.SaleHandler,
	safetyHandler *handlers.SafetyHandler,
	reportHandler *handlers.ReportHandler,
	alertHandler *handlers.AlertHandler,
	healthHandler *handlers.HealthHandler,
	alertFeed http.Handler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware)

	// Health and metrics
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Users
	usersAPI := r.PathPrefix("/api/users").Subrouter()
	usersAPI.HandleFunc("/register", userHandler.Register).Methods("POST")
	usersAPI.HandleFunc("/login", userHandler.Login).Methods("POST")
	usersAPI.Handle("/logout", authMiddleware.Authenticate(http.HandlerFunc(userHandler.Logout))).Methods("POST")
	usersAPI.Handle("/staff_add", authMiddleware.Authenticate(http.HandlerFunc(userHandler.CreateStaff))).Methods("POST")
	usersAPI.Handle("/totp/setup", authMiddleware.Authenticate(http.HandlerFunc(userHandler.SetupTOTP))).Methods("POST")
	usersAPI.Handle("/totp/enable", authMiddleware.Authenticate(http.HandlerFunc(userHandler.EnableTOTP))).Methods("POST")

	// Chemicals - reads are open, mutations pass the caller's session to the service
	chemicalsAPI := r.PathPrefix("/api/chemicals").Subrouter()
	chemicalsAPI.HandleFunc("", chemicalHandler.ListChemicals).Methods("GET")
	chemicalsAPI.HandleFunc("/search", chemicalHandler.SearchChemicals).Methods("GET")
	chemicalsAPI.HandleFunc("/{id}", chemicalHandler.GetChemical).Methods("GET")
	chemicalsAPI.Handle("", authMiddleware.OptionalAuth(http.HandlerFunc(chemicalHandler.CreateChemical))).Methods("POST")
	chemicalsAPI.Handle("/{id}", authMiddleware.OptionalAuth(http.HandlerFunc(chemicalHandler.UpdateChemical))).Methods("PUT")
	chemicalsAPI.Handle("/{id}", authMiddleware.OptionalAuth(http.HandlerFunc(chemicalHandler.DeleteChemical))).Methods("DELETE")

	// Purchases
	purchasesAPI := r.PathPrefix("/api/purchases").Subrouter()
	purchasesAPI.HandleFunc("", purchaseHandler.ListPurchases).Methods("GET")
	purchasesAPI.HandleFunc("", purchaseHandler.CreatePurchase).Methods("POST")
	purchasesAPI.HandleFunc("/{id}", purchaseHandler.GetPurchase).Methods("GET")
	purchasesAPI.HandleFunc("/{id}", purchaseHandler.UpdatePurchase).Methods("PUT")
	purchasesAPI.HandleFunc("/{id}", purchaseHandler.DeletePurchase).Methods("DELETE")
	purchasesAPI.HandleFunc("/{id}/payment-status", purchaseHandler.UpdatePaymentStatus).Methods("PATCH")

	// Sales
	salesAPI := r.PathPrefix("/api/sales").Subrouter()
	salesAPI.HandleFunc("", saleHandler.ListSales).Methods("GET")
	salesAPI.HandleFunc("", saleHandler.CreateSale).Methods("POST")
	salesAPI.HandleFunc("/{id}", saleHandler.GetSale).Methods("GET")
	salesAPI.HandleFunc("/{id}", saleHandler.UpdateSale).Methods("PUT")
	salesAPI.HandleFunc("/{id}", saleHandler.DeleteSale).Methods("DELETE")

	// Safety
	safetyAPI := r.PathPrefix("/api/safety").Subrouter()
	safetyAPI.HandleFunc("", safetyHandler.ListSafety).Methods("GET")
	safetyAPI.HandleFunc("", safetyHandler.CreateSafety).Methods("POST")
	safetyAPI.HandleFunc("/{id}", safetyHandler.UpdateSafety).Methods("PUT")
	safetyAPI.HandleFunc("/{id}", safetyHandler.DeleteSafety).Methods("DELETE")

	// Alerts
	r.HandleFunc("/api/alerts", alertHandler.GetAlerts).Methods("GET")
	if alertFeed != nil {
		r.Handle("/ws/alerts", alertFeed)
	}

	// Reports
	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.HandleFunc("/detailed", reportHandler.DetailedReport).Methods("GET")
	reportsAPI.HandleFunc("/detailed/csv", reportHandler.DownloadCSV).Methods("GET")
	reportsAPI.HandleFunc("/detailed/pdf", reportHandler.DownloadPDF).Methods("GET")
	reportsAPI.HandleFunc("/detailed/xlsx", reportHandler.DownloadXLSX).Methods("GET")
	reportsAPI.HandleFunc("/summary", reportHandler.Summary).Methods("GET")

	archiveAPI := reportsAPI.PathPrefix("/archive").Subrouter()
	archiveAPI.Use(authMiddleware.Authenticate)
	archiveAPI.Use(authMiddleware.RequireAdmin)
	archiveAPI.HandleFunc("", reportHandler.ArchiveReport).Methods("POST")
	archiveAPI.HandleFunc("", reportHandler.ListArchives).Methods("GET")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.Error(w, http.StatusNotFound, "Route not found")
	})

	return r
}
