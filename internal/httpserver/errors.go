package httpserver

import (
	"errors"
	"net/http"

	"supsindex-navigator/internal/domain"
	"supsindex-navigator/internal/gateway/payment"
	checkoutsvc "supsindex-navigator/internal/service/checkout"
	"github.com/gin-gonic/gin"
)

// respondError maps the domain error taxonomy onto HTTP statuses with a
// stable machine-readable code. None of these conditions are fatal; the
// client surfaces them as user-visible messages.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := "internal"

	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrInvalidCode):
		status, code = http.StatusBadRequest, "invalid_code"
	case errors.Is(err, domain.ErrValidation):
		status, code = http.StatusBadRequest, "validation_failed"
	case errors.Is(err, checkoutsvc.ErrEmptyCart):
		status, code = http.StatusBadRequest, "empty_cart"
	case errors.Is(err, domain.ErrAlreadyApplied):
		status, code = http.StatusUnprocessableEntity, "already_applied"
	case errors.Is(err, domain.ErrAlreadyUsed):
		status, code = http.StatusUnprocessableEntity, "already_used"
	case errors.Is(err, domain.ErrNoMatchingItem):
		status, code = http.StatusUnprocessableEntity, "no_matching_item"
	case errors.Is(err, domain.ErrNotRemovable):
		status, code = http.StatusUnprocessableEntity, "not_removable"
	case errors.Is(err, domain.ErrVoucherExpired):
		status, code = http.StatusUnprocessableEntity, "voucher_expired"
	case errors.Is(err, payment.ErrDeclined):
		status, code = http.StatusPaymentRequired, "payment_declined"
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	c.JSON(status, gin.H{"code": code, "error": msg})
}
