package http

import (
	"net/http"

	"interpaws-backend/internal/delivery/http/handler"
	"interpaws-backend/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router           *mux.Router
	authHandler      *handler.AuthHandler
	clinicHandler    *handler.ClinicHandler
	schedulerHandler *handler.SchedulerHandler
	feedbackHandler  *handler.FeedbackHandler
	auditLogHandler  *handler.AuditLogHandler
	authMiddleware   *middleware.AuthMiddleware
	corsMiddleware   *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	clinicHandler *handler.ClinicHandler,
	schedulerHandler *handler.SchedulerHandler,
	feedbackHandler *handler.FeedbackHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:           mux.NewRouter(),
		authHandler:      authHandler,
		clinicHandler:    clinicHandler,
		schedulerHandler: schedulerHandler,
		feedbackHandler:  feedbackHandler,
		auditLogHandler:  auditLogHandler,
		authMiddleware:   authMiddleware,
		corsMiddleware:   corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Clinic onboarding (protected - admin only)
	onboarding := api.PathPrefix("/clinics/onboarding").Subrouter()
	onboarding.Use(r.authMiddleware.Authenticate)
	onboarding.Use(middleware.RequireAdmin)
	onboarding.HandleFunc("", r.clinicHandler.Onboard).Methods(http.MethodPost)

	// Staff routes (protected - staff and admin)
	staff := api.PathPrefix("").Subrouter()
	staff.Use(r.authMiddleware.Authenticate)
	staff.Use(middleware.RequireStaff)

	// Clinic lookup
	staff.HandleFunc("/clinics", r.clinicHandler.GetAllClinics).Methods(http.MethodGet)
	staff.HandleFunc("/clinics/{id}", r.clinicHandler.GetClinic).Methods(http.MethodGet)

	// Slot search and booking
	staff.HandleFunc("/scheduler/find-slots", r.schedulerHandler.FindSlots).Methods(http.MethodPost)
	staff.HandleFunc("/scheduler/appointments", r.schedulerHandler.BookAppointment).Methods(http.MethodPost)
	staff.HandleFunc("/scheduler/appointments/{id}", r.schedulerHandler.CancelAppointment).Methods(http.MethodDelete)
	staff.HandleFunc("/clinics/{id}/appointments", r.schedulerHandler.GetAppointments).Methods(http.MethodGet)

	// Suggestion feedback
	staff.HandleFunc("/feedback", r.feedbackHandler.CreateFeedback).Methods(http.MethodPost)
	staff.HandleFunc("/clinics/{id}/feedback", r.feedbackHandler.GetClinicFeedback).Methods(http.MethodGet)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
