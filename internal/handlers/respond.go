package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/ph46m/ttknew/internal/apperr"
)

// respondError maps an error onto its HTTP status and "erro" message.
// Anything outside the apperr taxonomy becomes an opaque 500.
func respondError(c *gin.Context, err error) {
	message := "Erro interno"
	var e *apperr.Error
	if errors.As(err, &e) {
		message = e.Message
	}
	c.JSON(apperr.StatusOf(err), gin.H{"erro": message})
}
