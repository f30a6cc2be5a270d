package http

import (
	"net/http"

	"smarthealth/internal/delivery/http/handler"
	"smarthealth/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	availabilityHandler *handler.AvailabilityHandler
	appointmentHandler  *handler.AppointmentHandler
	leaveHandler        *handler.LeaveHandler
	adminHandler        *handler.AdminHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	availabilityHandler *handler.AvailabilityHandler,
	appointmentHandler *handler.AppointmentHandler,
	leaveHandler *handler.LeaveHandler,
	adminHandler *handler.AdminHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		availabilityHandler: availabilityHandler,
		appointmentHandler:  appointmentHandler,
		leaveHandler:        leaveHandler,
		adminHandler:        adminHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register/patient", r.authHandler.RegisterPatient).Methods(http.MethodPost)
	auth.HandleFunc("/register/doctor", r.authHandler.RegisterDoctor).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Doctor routes (protected - doctor only)
	doctor := api.PathPrefix("/doctor").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)

	doctor.HandleFunc("/availability/generate", r.availabilityHandler.Generate).Methods(http.MethodPost)
	doctor.HandleFunc("/availability/preference", r.availabilityHandler.GetPreference).Methods(http.MethodGet)
	doctor.HandleFunc("/availability/preference/activate", r.availabilityHandler.ActivatePreference).Methods(http.MethodPut)
	doctor.HandleFunc("/availability/slots", r.availabilityHandler.ListMySlots).Methods(http.MethodGet)
	doctor.HandleFunc("/availability/slots/{id}", r.availabilityHandler.DeleteSlot).Methods(http.MethodDelete)
	doctor.HandleFunc("/availability/slots/bulk-delete", r.availabilityHandler.BulkDeleteSlots).Methods(http.MethodPost)
	doctor.HandleFunc("/appointments/status", r.appointmentHandler.ChangeStatusBySlot).Methods(http.MethodPut)
	doctor.HandleFunc("/leaves", r.leaveHandler.Apply).Methods(http.MethodPost)
	doctor.HandleFunc("/leaves", r.leaveHandler.List).Methods(http.MethodGet)

	// Patient routes (protected - patient only)
	patient := api.PathPrefix("/patient").Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.Use(middleware.RequirePatient)

	patient.HandleFunc("/doctors/{doctorId}/slots", r.availabilityHandler.ListDoctorSlots).Methods(http.MethodGet)
	patient.HandleFunc("/appointments", r.appointmentHandler.Book).Methods(http.MethodPost)
	patient.HandleFunc("/appointments", r.appointmentHandler.List).Methods(http.MethodGet)
	patient.HandleFunc("/appointments/{id}/status", r.appointmentHandler.ChangeStatus).Methods(http.MethodPut)

	// Appointment status changes shared by doctors and admins
	appointment := api.PathPrefix("/appointments").Subrouter()
	appointment.Use(r.authMiddleware.Authenticate)
	appointment.Use(middleware.RequireAdminOrDoctor)
	appointment.HandleFunc("/{id}/status", r.appointmentHandler.ChangeStatus).Methods(http.MethodPut)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/holidays", r.adminHandler.AddHoliday).Methods(http.MethodPost)
	admin.HandleFunc("/holidays", r.adminHandler.ListHolidays).Methods(http.MethodGet)
	admin.HandleFunc("/holidays/{id}", r.adminHandler.DeleteHoliday).Methods(http.MethodDelete)
	admin.HandleFunc("/leaves/{role}/{id}/status", r.adminHandler.ChangeLeaveStatus).Methods(http.MethodPut)
	admin.HandleFunc("/appointments/{id}/status", r.appointmentHandler.ChangeStatus).Methods(http.MethodPut)
	admin.HandleFunc("/appointments/status", r.appointmentHandler.ChangeStatusBySlot).Methods(http.MethodPut)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
