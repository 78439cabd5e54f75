package routers

import (
	"fmt"
	"net/http"

	"claimsync-service/internal/app/config"
	"claimsync-service/internal/app/delivery/http/controllers"
	"claimsync-service/internal/app/delivery/http/middlewares"
	"claimsync-service/internal/pkg/constvars"
	"claimsync-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	claimController *controllers.ClaimController,
	reconciliationController *controllers.ReconciliationController,
) {

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", constvars.HeaderAPIKey, constvars.HeaderXRequestID},
		ExposedHeaders:   []string{constvars.HeaderXRequestID},
		AllowCredentials: false,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	normalLimiter, apiKeyLimiter := middlewares.CreateRateLimiters()
	router.Use(normalLimiter)

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.ErrorHandler)

	router.Get("/healthz", healthz)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Use(middlewares.RequireAPIKey)
			r.Use(apiKeyLimiter)

			r.Route("/claims", func(r chi.Router) {
				attachClaimRoutes(r, middlewares, claimController)
			})

			r.Route("/reconciliation", func(r chi.Router) {
				attachReconciliationRoutes(r, middlewares, reconciliationController)
			})
		})
	})
}

func healthz(w http.ResponseWriter, r *http.Request) {
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseSuccess, nil)
}
