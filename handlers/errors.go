package handlers

import (
	"errors"
	"log"
	"net/http"

	"food-marketplace-api/apperrors"

	"github.com/gin-gonic/gin"
)

// respondError maps a domain error to its HTTP status and the uniform
// {error: mensaje} body. Unexpected errors are logged and reported as an
// opaque 500.
func respondError(c *gin.Context, err error) {
	var (
		validacion   *apperrors.ValidationError
		noEncontrado *apperrors.NotFoundError
		duplicado    *apperrors.DuplicateError
		transicion   *apperrors.InvalidTransitionError
	)
	switch {
	case errors.As(err, &validacion):
		c.JSON(http.StatusBadRequest, gin.H{"error": validacion.Msg})
	case errors.As(err, &duplicado):
		c.JSON(http.StatusBadRequest, gin.H{"error": duplicado.Msg})
	case errors.As(err, &noEncontrado):
		c.JSON(http.StatusNotFound, gin.H{"error": noEncontrado.Error()})
	case errors.As(err, &transicion):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": transicion.Error()})
	default:
		log.Printf("error interno [%s]: %v", c.GetString("requestID"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error del servidor"})
	}
}
