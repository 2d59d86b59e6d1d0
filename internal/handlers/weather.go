package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/namefreezers/weather-lookup/internal/form"
	"github.com/namefreezers/weather-lookup/internal/services"
	"github.com/namefreezers/weather-lookup/internal/weather/openweathermap"
	"github.com/namefreezers/weather-lookup/internal/weather/types"
)

// weatherRequest defines the expected query parameter for GET /api/weather
type weatherRequest struct {
	City string `form:"city"`
}

// weatherResponse is the three form labels plus the raw values behind them.
type weatherResponse struct {
	City          string  `json:"city"`
	TemperatureF  float64 `json:"temperature_f"`
	Temperature   string  `json:"temperature"`
	Description   string  `json:"description"`
	Emoji         string  `json:"emoji"`
	ConditionCode int     `json:"condition_code"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// WeatherHandler returns a Gin handler for GET /api/weather
func WeatherHandler(svc services.LookupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req weatherRequest
		if err := c.ShouldBindQuery(&req); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error(), Kind: string(types.KindClient)})
			return
		}

		w, err := svc.Lookup(c.Request.Context(), req.City)
		if err != nil {
			le := types.AsLookupError(err)
			c.JSON(StatusFor(le), errorResponse{Error: le.Message, Kind: string(le.Kind)})
			return
		}

		c.JSON(http.StatusOK, weatherResponse{
			City:          w.City,
			TemperatureF:  w.TemperatureF,
			Temperature:   form.FormatTemperature(w.TemperatureF),
			Description:   w.Description,
			Emoji:         w.Emoji,
			ConditionCode: w.ConditionCode,
		})
	}
}

// StatusFor maps a lookup failure to the status this API answers with.
// Only problems with the caller's input are 4xx; upstream failures,
// including a rejected API key, are the gateway's fault.
func StatusFor(le *types.LookupError) int {
	switch {
	case errors.Is(le, openweathermap.ErrEmptyCity):
		return http.StatusBadRequest
	case le.StatusCode == http.StatusBadRequest:
		return http.StatusBadRequest
	case le.StatusCode == http.StatusNotFound:
		return http.StatusNotFound
	case openweathermap.IsTimeout(le):
		return http.StatusGatewayTimeout
	}
	return http.StatusBadGateway
}

type historyRequest struct {
	Limit int `form:"limit,default=20" binding:"min=1,max=100"`
}

type historyItem struct {
	ID            string    `json:"id"`
	City          string    `json:"city"`
	TemperatureF  *float64  `json:"temperature_f,omitempty"`
	Description   string    `json:"description,omitempty"`
	Emoji         string    `json:"emoji,omitempty"`
	ConditionCode *int      `json:"condition_code,omitempty"`
	ErrorKind     string    `json:"error_kind,omitempty"`
	ErrorMessage  string    `json:"error_message,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// HistoryHandler handles GET /api/history
func HistoryHandler(svc services.LookupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req historyRequest
		if err := c.ShouldBindQuery(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		lookups, err := svc.History(c.Request.Context(), req.Limit)
		switch {
		case errors.Is(err, services.ErrHistoryDisabled):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
			return
		}

		items := make([]historyItem, 0, len(lookups))
		for _, l := range lookups {
			it := historyItem{
				ID:           l.ID.String(),
				City:         l.City,
				Description:  l.Description,
				Emoji:        l.Emoji,
				ErrorKind:    l.ErrorKind,
				ErrorMessage: l.ErrorMessage,
				CreatedAt:    l.CreatedAt,
			}
			if l.TemperatureF.Valid {
				t := l.TemperatureF.Float64
				it.TemperatureF = &t
			}
			if l.ConditionCode.Valid {
				code := int(l.ConditionCode.Int32)
				it.ConditionCode = &code
			}
			items = append(items, it)
		}
		c.JSON(http.StatusOK, items)
	}
}
