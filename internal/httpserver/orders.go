package httpserver

import (
	"net/http"

	"supsindex-navigator/internal/domain"
	orderssvc "supsindex-navigator/internal/service/orders"
	"github.com/gin-gonic/gin"
)

// orderResponse is a unified order row. OverallStatus is derived at
// serialization time; it is never read from storage.
type orderResponse struct {
	OrderID       string          `json:"orderId"`
	TestName      string          `json:"testName"`
	Amount        int64           `json:"amount"`
	PaymentStatus string          `json:"paymentStatus"`
	TestStatus    string          `json:"testStatus"`
	KYCStatus     string          `json:"kycStatus"`
	OverallStatus string          `json:"overallStatus"`
	BundleID      *string         `json:"bundleId,omitempty"`
	HasBooking    bool            `json:"hasBooking"`
	Members       []orderResponse `json:"members,omitempty"`
}

func toOrderResponse(o domain.Order) orderResponse {
	out := orderResponse{
		OrderID:       o.OrderID,
		TestName:      o.TestName,
		Amount:        o.Amount,
		PaymentStatus: string(o.PaymentStatus),
		TestStatus:    string(o.TestStatus),
		KYCStatus:     string(o.KYCStatus),
		OverallStatus: string(o.Overall()),
		BundleID:      o.BundleID,
		HasBooking:    o.HasBooking,
	}
	for _, m := range o.Members {
		out.Members = append(out.Members, toOrderResponse(m))
	}
	return out
}

func listOrdersHandler(svc OrdersService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := orderssvc.Filter{Query: c.Query("q")}
		if raw := c.Query("status"); raw != "" {
			status, ok := domain.ParseOverallStatus(raw)
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"code": "bad_request", "error": "unknown status filter"})
				return
			}
			filter.Status = status
		}
		orders, err := svc.List(c.Request.Context(), c.Param("userID"), filter)
		if err != nil {
			respondError(c, err)
			return
		}
		out := make([]orderResponse, 0, len(orders))
		for _, o := range orders {
			out = append(out, toOrderResponse(o))
		}
		c.JSON(http.StatusOK, gin.H{"orders": out, "count": len(out)})
	}
}

func completeTestHandler(svc OrdersService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.CompleteTest(c.Request.Context(), c.Param("userID"), c.Param("orderID")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func removeOrderHandler(svc OrdersService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("orderID")
		if id == "" {
			id = c.Param("itemID")
		}
		result, err := svc.Remove(c.Request.Context(), c.Param("userID"), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"removed": id, "bookingCancelled": result.BookingCancelled})
	}
}
