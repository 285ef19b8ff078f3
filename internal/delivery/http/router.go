package http

import (
	"net/http"

	"calmseek-backend/internal/delivery/http/handler"
	"calmseek-backend/internal/delivery/http/middleware"
	"calmseek-backend/internal/domain/entity"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	accountHandler     *handler.AccountHandler
	providerHandler    *handler.ProviderHandler
	timeSlotHandler    *handler.TimeSlotHandler
	appointmentHandler *handler.AppointmentHandler
	contactHandler     *handler.ContactHandler
	groupHandler       *handler.GroupHandler
	auditLogHandler    *handler.AuditLogHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	accountHandler *handler.AccountHandler,
	providerHandler *handler.ProviderHandler,
	timeSlotHandler *handler.TimeSlotHandler,
	appointmentHandler *handler.AppointmentHandler,
	contactHandler *handler.ContactHandler,
	groupHandler *handler.GroupHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        authHandler,
		accountHandler:     accountHandler,
		providerHandler:    providerHandler,
		timeSlotHandler:    timeSlotHandler,
		appointmentHandler: appointmentHandler,
		contactHandler:     contactHandler,
		groupHandler:       groupHandler,
		auditLogHandler:    auditLogHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register/client", r.authHandler.RegisterClient).Methods(http.MethodPost)
	auth.HandleFunc("/register/provider", r.authHandler.RegisterProvider).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)
	auth.HandleFunc("/password-reset", r.authHandler.RequestPasswordReset).Methods(http.MethodPost)
	auth.HandleFunc("/password-reset/confirm", r.authHandler.ResetPassword).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Profile routes (protected, role-specific)
	clientProfile := api.PathPrefix("/profile/client").Subrouter()
	clientProfile.Use(r.authMiddleware.Authenticate)
	clientProfile.Use(middleware.RequireClient)
	clientProfile.HandleFunc("", r.accountHandler.UpdateClientProfile).Methods(http.MethodPut)

	providerProfile := api.PathPrefix("/profile/provider").Subrouter()
	providerProfile.Use(r.authMiddleware.Authenticate)
	providerProfile.Use(middleware.RequireProvider)
	providerProfile.HandleFunc("", r.accountHandler.UpdateProviderProfile).Methods(http.MethodPut)

	// Authenticated routes shared by every role
	protected := api.PathPrefix("").Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	// Provider directory
	protected.HandleFunc("/providers", r.providerHandler.ListProviders).Methods(http.MethodGet)
	protected.HandleFunc("/providers/{id}", r.providerHandler.GetProvider).Methods(http.MethodGet)

	// Favorites
	protected.HandleFunc("/favorites", r.accountHandler.ListFavorites).Methods(http.MethodGet)
	protected.HandleFunc("/favorites/{id}", r.accountHandler.AddFavorite).Methods(http.MethodPost)
	protected.HandleFunc("/favorites/{id}", r.accountHandler.RemoveFavorite).Methods(http.MethodDelete)

	// Available slot browsing
	protected.HandleFunc("/slots", r.timeSlotHandler.ListAvailableSlots).Methods(http.MethodGet)

	// Contacts and direct messages
	protected.HandleFunc("/contacts/requests", r.contactHandler.SendFriendRequest).Methods(http.MethodPost)
	protected.HandleFunc("/contacts/requests", r.contactHandler.ListPendingRequests).Methods(http.MethodGet)
	protected.HandleFunc("/contacts/requests/{id}/accept", r.contactHandler.AcceptFriendRequest).Methods(http.MethodPost)
	protected.HandleFunc("/contacts/requests/{id}/reject", r.contactHandler.RejectFriendRequest).Methods(http.MethodPost)
	protected.HandleFunc("/contacts/friends", r.contactHandler.ListFriends).Methods(http.MethodGet)
	protected.HandleFunc("/contacts/friends/{id}", r.contactHandler.RemoveFriend).Methods(http.MethodDelete)
	protected.HandleFunc("/messages", r.contactHandler.SendMessage).Methods(http.MethodPost)
	protected.HandleFunc("/messages/{id}", r.contactHandler.GetConversation).Methods(http.MethodGet)

	// Groups and invitations
	protected.HandleFunc("/groups", r.groupHandler.CreateGroup).Methods(http.MethodPost)
	protected.HandleFunc("/groups", r.groupHandler.ListMyGroups).Methods(http.MethodGet)
	protected.HandleFunc("/groups/{id}", r.groupHandler.GetGroup).Methods(http.MethodGet)
	protected.HandleFunc("/groups/{id}", r.groupHandler.DeleteGroup).Methods(http.MethodDelete)
	protected.HandleFunc("/groups/{id}/leave", r.groupHandler.LeaveGroup).Methods(http.MethodPost)
	protected.HandleFunc("/groups/{id}/invitations", r.groupHandler.InviteUsers).Methods(http.MethodPost)
	protected.HandleFunc("/groups/{id}/messages", r.groupHandler.PostMessage).Methods(http.MethodPost)
	protected.HandleFunc("/groups/{id}/messages", r.groupHandler.GetMessages).Methods(http.MethodGet)
	protected.HandleFunc("/invitations", r.groupHandler.ListMyInvitations).Methods(http.MethodGet)
	protected.HandleFunc("/invitations/{id}", r.groupHandler.RespondToInvitation).Methods(http.MethodPut)

	// Appointment cancellation is shared: the booking client or the
	// slot's provider may cancel.
	protected.HandleFunc("/appointments/{id:[0-9]+}", r.appointmentHandler.Cancel).Methods(http.MethodDelete)

	// Provider routes (protected - provider only)
	provider := api.PathPrefix("/slots").Subrouter()
	provider.Use(r.authMiddleware.Authenticate)
	provider.Use(middleware.RequireProvider)
	provider.HandleFunc("", r.timeSlotHandler.CreateSlot).Methods(http.MethodPost)
	provider.HandleFunc("/recurring", r.timeSlotHandler.CreateRecurringSlots).Methods(http.MethodPost)
	provider.HandleFunc("/mine", r.timeSlotHandler.ListMySlots).Methods(http.MethodGet)
	provider.HandleFunc("/{id:[0-9]+}", r.timeSlotHandler.DeleteSlot).Methods(http.MethodDelete)

	providerAppointments := api.PathPrefix("/appointments/provider").Subrouter()
	providerAppointments.Use(r.authMiddleware.Authenticate)
	providerAppointments.Use(middleware.RequireProvider)
	providerAppointments.HandleFunc("", r.appointmentHandler.ListForProvider).Methods(http.MethodGet)

	// Client routes (protected - client only)
	client := api.PathPrefix("/appointments").Subrouter()
	client.Use(r.authMiddleware.Authenticate)
	client.Use(middleware.RequireClient)
	client.HandleFunc("", r.appointmentHandler.Book).Methods(http.MethodPost)
	client.HandleFunc("", r.appointmentHandler.ListMine).Methods(http.MethodGet)
	client.HandleFunc("/{id:[0-9]+}/reschedule", r.appointmentHandler.Reschedule).Methods(http.MethodPut)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireRole(entity.RoleIDAdmin))
	admin.HandleFunc("/providers/{id}/activate", r.providerHandler.ActivateProvider).Methods(http.MethodPost)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetByID).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
