package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/swaggo/swag"

	_ "innsikt/docs"
	"innsikt/internal/metrics"
	"innsikt/internal/query"
	"innsikt/internal/service"
	"innsikt/internal/transport/rest/handler"
	"innsikt/internal/transport/rest/middleware"
	"innsikt/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService     *service.AuthService
	StatsService    handler.StatsReporter
	FeedbackService handler.FeedbackSubmitter
	ThemeService    handler.ThemeManager
	SurveyService   handler.SurveyCatalog
	Normalizer      *query.Normalizer
	WSHub           *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	statsHandler := handler.NewStatsHandler(c.StatsService, c.Normalizer)
	feedbackHandler := handler.NewFeedbackHandler(c.FeedbackService)
	themeHandler := handler.NewThemeHandler(c.ThemeService)
	surveyHandler := handler.NewSurveyHandler(c.SurveyService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware, middleware.RequestID, middleware.HTTPLogger)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/feedback", feedbackHandler.Submit).Methods("POST", "OPTIONS")

	// WebSocket routes (public with token in query param)
	v1.HandleFunc("/ws/teams/{team}", wsHandler.TeamWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")
	r.Handle("/metrics", metrics.Handler()).Methods("GET")
	r.HandleFunc("/swagger/doc.json", swaggerDoc).Methods("GET")

	// Dashboard routes (require a token granting the requested team)
	teamRoutes := v1.NewRoute().Subrouter()
	teamRoutes.Use(authMW.RequireTeam)

	teamRoutes.HandleFunc("/stats/ratings", statsHandler.Ratings).Methods("GET", "OPTIONS")
	teamRoutes.HandleFunc("/stats/tasks", statsHandler.Tasks).Methods("GET", "OPTIONS")
	teamRoutes.HandleFunc("/stats/themes", statsHandler.Themes).Methods("GET", "OPTIONS")
	teamRoutes.HandleFunc("/stats/blockers", statsHandler.Blockers).Methods("GET", "OPTIONS")
	teamRoutes.HandleFunc("/stats/words", statsHandler.Words).Methods("GET", "OPTIONS")
	teamRoutes.HandleFunc("/stats/priority", statsHandler.Priority).Methods("GET", "OPTIONS")
	teamRoutes.HandleFunc("/stats/overview", statsHandler.Overview).Methods("GET", "OPTIONS")

	teamRoutes.HandleFunc("/themes", themeHandler.List).Methods("GET", "OPTIONS")
	teamRoutes.HandleFunc("/themes", themeHandler.Create).Methods("POST", "OPTIONS")
	teamRoutes.HandleFunc("/themes/{id}", themeHandler.Update).Methods("PUT", "OPTIONS")
	teamRoutes.HandleFunc("/themes/{id}", themeHandler.Delete).Methods("DELETE", "OPTIONS")

	teamRoutes.HandleFunc("/surveys", surveyHandler.Create).Methods("POST", "OPTIONS")
	teamRoutes.HandleFunc("/surveys", surveyHandler.List).Methods("GET", "OPTIONS")
	teamRoutes.HandleFunc("/surveys/{surveyId}", surveyHandler.Get).Methods("GET", "OPTIONS")

	return r
}

func swaggerDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		http.Error(w, `{"error":"api docs not available"}`, http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(doc))
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization, X-Request-Id"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
