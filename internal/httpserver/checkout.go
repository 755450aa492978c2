package httpserver

import (
	"net/http"

	checkoutsvc "supsindex-navigator/internal/service/checkout"
	"github.com/gin-gonic/gin"
)

func quoteHandler(svc CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in checkoutsvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": "bad_request", "error": err.Error()})
			return
		}
		totals, err := svc.Quote(c.Request.Context(), c.Param("userID"), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, totals)
	}
}

func payHandler(svc CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in checkoutsvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": "bad_request", "error": err.Error()})
			return
		}
		orders, totals, err := svc.Pay(c.Request.Context(), c.Param("userID"), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"orders": orders, "totals": totals})
	}
}
