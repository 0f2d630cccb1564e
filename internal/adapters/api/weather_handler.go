package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"weatherview.app/internal/core/weather"
)

// WeatherQueryParams binds GET /api/weather query parameters
type WeatherQueryParams struct {
	City string `form:"city" binding:"required,city"`
}

// getWeather handles GET /api/weather requests. The lookup is bound to the
// request context and the response status reflects the failure class.
func (s *HTTPServerAdapter) getWeather(c *gin.Context) {
	var params WeatherQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		s.rejectLookup(c, err)
		return
	}

	slog.Debug("Getting weather for city", "city", params.City)

	model := s.weatherUseCase.Lookup(c.Request.Context(), weather.Query{City: params.City})

	slog.Debug("Weather result", "city", params.City, "ok", model.OK, "failure", model.Failure)
	c.JSON(statusForDisplay(model), model)
}
