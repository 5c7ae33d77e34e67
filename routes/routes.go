package routes

import (
	"solenne/auth"
	"solenne/availability"
	"solenne/middleware"
	"solenne/notifications"
	"solenne/planner"
	"solenne/plans"
	"solenne/ratelim"
	"solenne/settings"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/auth/token/refresh", rl.Limit(middleware.Authenticate(auth.RefreshToken)))
}

func AddPlanRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/plans/build", rl.Limit(middleware.OptionalAuth(planner.BuildPlanHandler)))
	router.POST("/api/plans/check-availability", rl.Limit(middleware.OptionalAuth(availability.CheckAvailability)))

	router.GET("/api/plans/plans", middleware.Authenticate(plans.GetPlans))
	router.POST("/api/plans/plan", rl.Limit(middleware.Authenticate(plans.CreatePlan)))
	router.GET("/api/plans/plan/:planid", middleware.Authenticate(plans.GetPlan))
	router.PUT("/api/plans/plan/:planid", middleware.Authenticate(plans.UpdatePlan))
	router.POST("/api/plans/plan/:planid/cancel", middleware.Authenticate(plans.CancelPlan))
	router.POST("/api/plans/plan/:planid/complete", middleware.Authenticate(plans.CompletePlan))
	router.POST("/api/plans/plan/:planid/share-response", rl.Limit(middleware.Authenticate(plans.RespondToShare)))
	router.GET("/api/plans/plan/:planid/print", rl.Limit(middleware.Authenticate(plans.PrintPlan)))

	router.POST("/api/plans/plan/:planid/notifications", rl.Limit(middleware.Authenticate(notifications.GenerateForPlan)))
}

func AddNotificationRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, hub *notifications.Hub) {
	router.GET("/api/notifications", middleware.Authenticate(notifications.GetNotifications))
	router.POST("/api/notifications/dispatch", rl.Limit(notifications.DispatchHandler))
	router.GET("/api/notifications/stream", middleware.Authenticate(notifications.StreamHandler(hub)))
}

func AddSettingsRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/settings", middleware.Authenticate(settings.GetUserSettings))
	router.GET("/api/settings/quiet-hours", middleware.Authenticate(settings.GetQuietHours))
	router.PUT("/api/settings/quiet-hours", rl.Limit(middleware.Authenticate(settings.UpdateQuietHours)))
}
