package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"p9e.in/homepro/handlers"
	"p9e.in/homepro/middleware"
	"p9e.in/homepro/models"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	// =====================================================
	// Public Routes (no authentication)
	// =====================================================
	r.HandleFunc("/register", handlers.Register).Methods("POST")
	r.HandleFunc("/login", handlers.Login).Methods("POST")
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir("./uploads"))),
	)

	// =====================================================
	// Protected API Routes (require JWT authentication)
	// =====================================================
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.JWTMiddleware)

	// Profile
	api.HandleFunc("/me", handlers.GetCurrentUser).Methods("GET")
	api.HandleFunc("/change-password", handlers.ChangePassword).Methods("POST")
	api.HandleFunc("/profile", handlers.UpdateProfile).Methods("PUT")

	// Categories
	api.HandleFunc("/categories", handlers.ListServiceCategories).Methods("GET")

	// Jobs
	api.HandleFunc("/jobs", handlers.ListOpenJobs).Methods("GET")
	api.HandleFunc("/jobs", handlers.CreateJob).Methods("POST")
	api.HandleFunc("/jobs/mine", handlers.ListMyJobs).Methods("GET")
	api.HandleFunc("/jobs/{id}", handlers.GetJob).Methods("GET")
	api.HandleFunc("/jobs/{id}/cancel", handlers.CancelJob).Methods("POST")
	api.HandleFunc("/jobs/{id}/status", handlers.UpdateJobStatus).Methods("POST")

	// Quotes
	api.HandleFunc("/jobs/{id}/quotes", handlers.SubmitQuote).Methods("POST")
	api.HandleFunc("/jobs/{id}/quotes", handlers.ListJobQuotes).Methods("GET")
	api.HandleFunc("/jobs/{id}/quotes/{quoteId}/accept", handlers.AcceptQuote).Methods("POST")
	api.HandleFunc("/quotes/mine", handlers.ListMyQuotes).Methods("GET")
	api.HandleFunc("/quotes/{id}/withdraw", handlers.WithdrawQuote).Methods("POST")

	// Bookings
	api.HandleFunc("/bookings", handlers.ListBookings).Methods("GET")
	api.HandleFunc("/bookings", handlers.CreateBooking).Methods("POST")
	api.HandleFunc("/bookings/{id}/status", handlers.UpdateBookingStatus).Methods("POST")

	// Contractors
	api.HandleFunc("/contractors", handlers.ListContractors).Methods("GET")
	api.HandleFunc("/contractors/onboard", handlers.OnboardContractor).Methods("POST")
	api.HandleFunc("/contractors/dashboard", handlers.ContractorDashboard).Methods("GET")
	api.HandleFunc("/contractors/services", handlers.ListContractorServices).Methods("GET")
	api.HandleFunc("/contractors/services", handlers.AddContractorService).Methods("POST")
	api.HandleFunc("/contractors/services/{id}", handlers.RemoveContractorService).Methods("DELETE")
	api.HandleFunc("/contractors/{id}", handlers.GetContractor).Methods("GET")
	api.HandleFunc("/contractors/{id}/reviews", handlers.ListContractorReviews).Methods("GET")

	// Reviews
	api.HandleFunc("/reviews", handlers.SubmitReview).Methods("POST")

	// Messaging
	api.HandleFunc("/conversations", handlers.ListConversations).Methods("GET")
	api.HandleFunc("/conversations/{jobId}/{otherId}", handlers.GetThread).Methods("GET")
	api.HandleFunc("/conversations/{jobId}/{otherId}", handlers.DeleteConversation).Methods("DELETE")
	api.HandleFunc("/messages", handlers.SendMessage).Methods("POST")
	api.HandleFunc("/messages/{id}", handlers.EditMessage).Methods("PUT")
	api.HandleFunc("/messages/{id}", handlers.DeleteMessage).Methods("DELETE")

	// Notifications
	api.HandleFunc("/notifications", handlers.GetNotifications).Methods("GET")
	api.HandleFunc("/notifications/unread-count", handlers.GetUnreadNotificationCount).Methods("GET")
	api.HandleFunc("/notifications/read-all", handlers.ReadAllNotifications).Methods("POST")
	api.HandleFunc("/notifications/{id}/read", handlers.ReadNotification).Methods("POST")

	// Uploads
	api.HandleFunc("/uploads/project-image", handlers.UploadProjectImageHandler).Methods("POST")
	api.HandleFunc("/uploads/project-image", handlers.DeleteProjectImage).Methods("DELETE")

	// =====================================================
	// Admin Routes (require admin user type)
	// =====================================================
	admin := api.PathPrefix("/admin").Subrouter()
	adminOnly := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireUserType([]string{string(models.UserTypeAdmin)}, h)
	}
	admin.Handle("/contractors", adminOnly(handlers.AdminListContractors)).Methods("GET")
	admin.Handle("/contractors/{id}/status", adminOnly(handlers.AdminSetContractorStatus)).Methods("POST")
	admin.Handle("/export/bookings", adminOnly(handlers.ExportBookingsToExcel)).Methods("GET")
	admin.Handle("/users", adminOnly(handlers.GetAllUsers)).Methods("GET")

	return r
}
