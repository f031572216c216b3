package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/omarhamdan/safra/internal/models"
	"github.com/omarhamdan/safra/internal/services"
)

func CreateBus(b *services.BusService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.BusInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request body"))
			return
		}
		bus, err := b.CreateBus(c.Request.Context(), in)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(bus, "bus created"))
	}
}

func ListBuses(b *services.BusService) gin.HandlerFunc {
	return func(c *gin.Context) {
		buses, err := b.ListBuses(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		if buses == nil {
			buses = []*models.BusView{}
		}
		c.JSON(http.StatusOK, models.SuccessResponse(buses, ""))
	}
}

func UpdateBus(b *services.BusService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var fields map[string]interface{}
		if err := c.ShouldBindJSON(&fields); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request body"))
			return
		}
		bus, err := b.UpdateBus(c.Request.Context(), c.Param("id"), fields)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(bus, "bus updated"))
	}
}

func DeleteBus(b *services.BusService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := b.DeleteBus(c.Request.Context(), c.Param("id")); err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "bus deleted successfully"))
	}
}

// ListSeats returns the bus's seat layout.
func ListSeats(b *services.BusService) gin.HandlerFunc {
	return func(c *gin.Context) {
		seats, err := b.ListSeats(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondErr(c, err)
			return
		}
		if seats == nil {
			seats = []*models.Seat{}
		}
		c.JSON(http.StatusOK, models.SuccessResponse(seats, ""))
	}
}

// ReplaceSeats swaps the whole layout in one request.
func ReplaceSeats(b *services.BusService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Seats []*models.Seat `json:"seats" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("seats array is required"))
			return
		}
		seats, err := b.ReplaceSeats(c.Request.Context(), c.Param("id"), req.Seats)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(seats, "seat layout updated"))
	}
}
