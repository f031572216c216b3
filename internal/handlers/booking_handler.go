package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/omarhamdan/safra/internal/helpers"
	"github.com/omarhamdan/safra/internal/middleware"
	"github.com/omarhamdan/safra/internal/models"
	"github.com/omarhamdan/safra/internal/services"
)

// CreateBooking admits a seat-reservation request. Multipart so customers can
// attach a payment proof image.
func CreateBooking(b *services.BookingService, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := middleware.GetClaims(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		in := services.AdmitInput{
			TripID:  c.PostForm("trip_id"),
			SeatNum: c.PostForm("seat_num"),
			UserID:  claims.UserID(),
		}
		if file, err := c.FormFile("proof_image"); err == nil {
			path, err := helpers.SaveUpload(c, file, uploadDir)
			if err != nil {
				respondErr(c, err)
				return
			}
			in.ProofImage = path
		}

		booking, err := b.Admit(c.Request.Context(), in)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(booking, "booking confirmed"))
	}
}

// ListBookings returns the requester's bookings, or every booking for staff.
func ListBookings(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := middleware.GetClaims(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		bookings, err := b.List(c.Request.Context(), claims.UserID(), claims.Role)
		if err != nil {
			respondErr(c, err)
			return
		}
		if bookings == nil {
			bookings = []*models.BookingView{}
		}
		c.JSON(http.StatusOK, models.SuccessResponse(bookings, ""))
	}
}

func CancelBooking(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := middleware.GetClaims(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		booking, err := b.Cancel(c.Request.Context(), c.Param("id"), claims.UserID(), claims.Role)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(booking, "booking cancelled"))
	}
}

// DownloadTicket streams the booking's e-ticket PDF.
func DownloadTicket(t *services.TicketService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := middleware.GetClaims(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		pdf, filename, err := t.GenerateETicket(c.Request.Context(), c.Param("id"), claims.UserID(), claims.Role)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Data(http.StatusOK, "application/pdf", pdf)
	}
}
