package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/omarhamdan/safra/internal/models"
	"github.com/omarhamdan/safra/internal/services"
)

func CreateTrip(t *services.TripService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.TripInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request body"))
			return
		}
		trip, err := t.CreateTrip(c.Request.Context(), in)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(trip, "trip created"))
	}
}

// ListTrips filters by departure_city, arrival_city and a day-granular date.
func ListTrips(t *services.TripService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, err := services.ParseTripFilter(
			c.Query("departure_city"),
			c.Query("arrival_city"),
			c.Query("date"),
		)
		if err != nil {
			respondErr(c, err)
			return
		}

		trips, err := t.ListTrips(c.Request.Context(), filter)
		if err != nil {
			respondErr(c, err)
			return
		}
		if trips == nil {
			trips = []*models.TripView{}
		}
		c.JSON(http.StatusOK, models.SuccessResponse(trips, ""))
	}
}

func GetTrip(t *services.TripService) gin.HandlerFunc {
	return func(c *gin.Context) {
		trip, err := t.GetTripByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(trip, ""))
	}
}

func UpdateTrip(t *services.TripService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.TripUpdateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request body"))
			return
		}
		trip, err := t.UpdateTrip(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(trip, "trip updated"))
	}
}

func DeleteTrip(t *services.TripService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := t.DeleteTrip(c.Request.Context(), c.Param("id")); err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "trip deleted successfully"))
	}
}
