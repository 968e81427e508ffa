package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/stylewise/wardrobe-api/api"
	"github.com/stylewise/wardrobe-api/config"
	"github.com/stylewise/wardrobe-api/models"
	"github.com/stylewise/wardrobe-api/utils"
)

func main() {
	config.LoadConfig()

	// Initialize MongoDB
	if err := utils.ConnectMongo(config.MongoURI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	// S3 is only needed for image upload and presigning; the API still
	// works without it.
	if err := utils.InitS3(); err != nil {
		log.Printf("S3 not configured, image upload disabled: %v", err)
	}

	api.Init()

	// CORS Middleware
	corsMiddleware := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS, PUT, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
			next(w, r)
		}
	}

	auth := api.AuthMiddleware
	admin := api.RequireRole(models.RoleAdmin)
	styler := api.RequireRole(models.RoleStyler)

	// Auth Routes
	http.HandleFunc("/api/auth/register", corsMiddleware(api.RegisterHandler))
	http.HandleFunc("/api/auth/login", corsMiddleware(api.LoginHandler))
	http.HandleFunc("/api/auth/logout", corsMiddleware(api.LogoutHandler))
	http.HandleFunc("/api/auth/profile", corsMiddleware(auth(api.ProfileHandler)))
	http.HandleFunc("/api/auth/pending", corsMiddleware(auth(admin(api.PendingUsersHandler))))
	http.HandleFunc("/api/auth/approve/{id}", corsMiddleware(auth(admin(api.ApproveUserHandler))))
	http.HandleFunc("/api/auth/reject/{id}", corsMiddleware(auth(admin(api.RejectUserHandler))))

	// Garment Routes. Listing is public, creating requires auth.
	http.HandleFunc("/api/garments", corsMiddleware(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			auth(api.CreateGarmentHandler)(w, r)
			return
		}
		api.ListGarmentsHandler(w, r)
	}))
	http.HandleFunc("/api/garments/mine", corsMiddleware(auth(api.MyGarmentsHandler)))
	http.HandleFunc("/api/garments/suggestions", corsMiddleware(auth(styler(api.BrowseSuggestionsHandler))))
	http.HandleFunc("/api/garments/{id}", corsMiddleware(auth(api.GarmentByIDHandler)))

	// Occasion Routes (stylers only)
	http.HandleFunc("/api/occasions", corsMiddleware(auth(styler(api.OccasionsHandler))))
	http.HandleFunc("/api/occasions/{id}", corsMiddleware(auth(styler(api.OccasionByIDHandler))))
	http.HandleFunc("/api/occasions/{id}/suggestions", corsMiddleware(auth(styler(api.OccasionSuggestionsHandler))))

	// Analytics Routes
	http.HandleFunc("/api/analytics/wear", corsMiddleware(auth(styler(api.RecordWearHandler))))
	http.HandleFunc("/api/analytics/health", corsMiddleware(auth(styler(api.ClosetHealthHandler))))
	http.HandleFunc("/api/analytics/admin", corsMiddleware(auth(admin(api.AdminAnalyticsHandler))))
	http.HandleFunc("/api/analytics/partners", corsMiddleware(auth(admin(api.PartnerAnalyticsHandler))))

	// Partner Routes. Reads are public, writes require auth.
	http.HandleFunc("/api/partners", corsMiddleware(api.ListPartnersHandler))
	http.HandleFunc("/api/partners/{id}", corsMiddleware(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			api.PartnerByIDHandler(w, r)
			return
		}
		auth(api.PartnerByIDHandler)(w, r)
	}))

	// Payment Routes
	http.HandleFunc("/api/payments", corsMiddleware(auth(api.PaymentsHandler)))
	http.HandleFunc("/api/payments/{id}", corsMiddleware(auth(api.PaymentByIDHandler)))

	// AI Routes
	http.HandleFunc("/api/ai/skin-tone", corsMiddleware(auth(api.DetectSkinToneHandler)))
	http.HandleFunc("/api/ai/colors", corsMiddleware(auth(api.SuggestColorsHandler)))

	// Upload Route
	http.HandleFunc("/api/upload", corsMiddleware(auth(api.UploadImageHandler)))

	port := config.Port
	fmt.Printf("Server starting on port %s...\n", port)
	if err := http.ListenAndServe(":"+port, utils.LatencyMiddleware(http.DefaultServeMux)); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
