package handlers

import "github.com/labstack/echo/v4"

// Register mounts every route on e. write wraps the routes that mutate data.
func (h *Handler) Register(e *echo.Echo, write ...echo.MiddlewareFunc) {
	e.GET("/health", h.Health)
	e.POST("/signin", h.Signin)

	cg := e.Group("/categories")
	cg.GET("", h.Categories)
	cg.GET("/:id", h.Category)
	cg.POST("", h.CreateCategory, write...)

	tg := e.Group("/training-centers")
	tg.GET("", h.TrainingCenters)
	tg.GET("/:id", h.TrainingCenter)
	tg.POST("", h.CreateTrainingCenter, write...)

	ag := e.Group("/athletes")
	ag.GET("", h.Athletes)
	ag.GET("/:id", h.Athlete)
	ag.GET("/document/:document", h.AthleteByDocument)
	ag.POST("", h.CreateAthlete, write...)
	ag.PATCH("/:id", h.UpdateAthlete, write...)
}
