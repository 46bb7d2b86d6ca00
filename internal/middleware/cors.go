package middleware

import (
	"net/http"

	"cropadvisor-be/internal/logger"

	"github.com/go-chi/cors"
)

// CORS allows the listed frontend origins, with credentials for the access_token cookie.
func CORS(origins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", logger.RequestIDHeader, "X-Device-ID"},
		ExposedHeaders:   []string{logger.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
