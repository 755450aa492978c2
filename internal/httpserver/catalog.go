package httpserver

import (
	"net/http"

	"supsindex-navigator/internal/catalog"
	"supsindex-navigator/internal/domain"
	"github.com/gin-gonic/gin"
)

func listAssessmentsHandler(c *gin.Context) {
	bundle := catalog.GetBundle()
	c.JSON(http.StatusOK, gin.H{
		"assessments":   catalog.All(),
		"bundleSavings": bundle.Savings(),
	})
}

func getAssessmentHandler(c *gin.Context) {
	code, ok := domain.ParseAssessmentCode(c.Param("code"))
	if !ok {
		respondError(c, domain.ErrNotFound)
		return
	}
	assessment, err := catalog.Get(code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assessment)
}
