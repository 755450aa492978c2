package httpserver

import (
	"net/http"
	"time"

	cartsvc "supsindex-navigator/internal/service/cart"
	"github.com/gin-gonic/gin"
)

func listCartHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.List(c.Request.Context(), c.Param("userID"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
	}
}

func addCartItemHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in cartsvc.AddInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": "bad_request", "error": err.Error()})
			return
		}
		items, err := svc.Add(c.Request.Context(), c.Param("userID"), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"items": items})
	}
}

type bookingRequest struct {
	BookingDate string `json:"bookingDate" binding:"required"`
	BookingTime string `json:"bookingTime" binding:"required"`
}

func updateBookingHandler(svc OrdersService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in bookingRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": "bad_request", "error": err.Error()})
			return
		}
		// Dates cross the wire as ISO-8601 strings and nowhere else.
		date, err := time.Parse(time.RFC3339, in.BookingDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": "bad_request", "error": "bookingDate must be RFC 3339"})
			return
		}
		if err := svc.UpdateBooking(c.Request.Context(), c.Param("userID"), c.Param("itemID"), date, in.BookingTime); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
