package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobtrack/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, auth *handlers.AuthHandler, health *handlers.HealthHandler,
	jobs *handlers.JobHandler, cv *handlers.CVHandler, authMW fiber.Handler) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", health.Health)
	v1.Get("/ready", health.Ready)

	a := v1.Group("/auth")
	a.Post("/register", auth.Register)
	a.Post("/login", auth.Login)

	// Job entries; everything here is owner-scoped
	jg := v1.Group("/jobs", authMW)
	jg.Get("/", jobs.List)
	jg.Post("/", jobs.Create)
	jg.Get("/:id", jobs.GetByID)
	jg.Patch("/:id", jobs.Update)
	jg.Delete("/:id", jobs.Delete)
	jg.Post("/:id/cv", cv.Upload)
}
