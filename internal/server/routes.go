package server

import (
	"github.com/labstack/echo/v4"

	"example.com/expense-tracker/backend/internal/handlers"
)

func registerRoutes(
	e *echo.Echo,
	expenseHandler *handlers.ExpenseHandler,
	statsHandler *handlers.StatsHandler,
	chatHandler *handlers.ChatHandler,
	notificationHandler *handlers.NotificationHandler,
	chatRateLimiter echo.MiddlewareFunc,
) {
	e.GET("/health", handlers.Health)

	api := e.Group("/api/v1")

	expenses := api.Group("/expenses")
	expenses.GET("", expenseHandler.List)
	expenses.GET("/trash", expenseHandler.Trash)
	expenses.POST("", expenseHandler.Create)
	expenses.PUT("/:id", expenseHandler.Update)
	expenses.DELETE("/:id", expenseHandler.Delete)
	expenses.POST("/:id/restore", expenseHandler.Restore)
	expenses.PATCH("/:id/toggle", expenseHandler.Toggle)

	stats := api.Group("/stats")
	stats.GET("/summary", statsHandler.Summary)
	stats.GET("/by-category", statsHandler.ByCategory)
	stats.GET("/by-month", statsHandler.ByMonth)

	chatGroup := api.Group("/chat", chatRateLimiter)
	chatGroup.POST("/start", chatHandler.Start)
	chatGroup.POST("/start-with-text", chatHandler.StartWithText)
	chatGroup.POST("/messages", chatHandler.Submit)
	chatGroup.GET("/transcript", chatHandler.Transcript)

	notificationsGroup := api.Group("/notifications")
	notificationsGroup.GET("/stream", notificationHandler.Stream)
}
