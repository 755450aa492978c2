package httpserver

import (
	"net/http"

	affiliationsvc "supsindex-navigator/internal/service/affiliation"
	vouchersvc "supsindex-navigator/internal/service/voucher"
	"github.com/gin-gonic/gin"
)

func listVouchersHandler(svc VoucherService) gin.HandlerFunc {
	return func(c *gin.Context) {
		vouchers, err := svc.List(c.Request.Context(), c.Param("userID"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"vouchers": vouchers, "count": len(vouchers)})
	}
}

func issueVoucherHandler(svc VoucherService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in vouchersvc.IssueInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": "bad_request", "error": err.Error()})
			return
		}
		v, err := svc.Issue(c.Request.Context(), c.Param("userID"), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, v)
	}
}

func listAffiliationsHandler(svc AffiliationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		codes, err := svc.List(c.Request.Context(), c.Param("userID"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"affiliations": codes, "count": len(codes)})
	}
}

func registerAffiliationHandler(svc AffiliationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in affiliationsvc.RegisterInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": "bad_request", "error": err.Error()})
			return
		}
		code, err := svc.Register(c.Request.Context(), c.Param("userID"), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, code)
	}
}
