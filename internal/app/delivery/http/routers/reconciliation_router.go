package routers

import (
	"claimsync-service/internal/app/delivery/http/controllers"
	"claimsync-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachReconciliationRoutes(router chi.Router, middlewares *middlewares.Middlewares, reconciliationController *controllers.ReconciliationController) {
	router.Post("/runs", reconciliationController.RunOnce)
}
