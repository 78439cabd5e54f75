package routers

import (
	"claimsync-service/internal/app/delivery/http/controllers"
	"claimsync-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachClaimRoutes(router chi.Router, middlewares *middlewares.Middlewares, claimController *controllers.ClaimController) {
	router.Post("/{claimID}/submissions", claimController.SubmitClaim)
	router.Get("/{claimID}/status-events", claimController.FindStatusEvents)
}
