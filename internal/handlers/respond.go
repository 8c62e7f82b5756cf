package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brandhub/campaign-ops-backend/internal/apperrors"
)

// respondError maps the error taxonomy to HTTP statuses and always includes
// the stable kind tag for programmatic handling by collaborators.
func respondError(c *gin.Context, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "details": err.Error()})
		return
	}

	status := http.StatusInternalServerError
	switch appErr.Kind {
	case apperrors.KindValidation:
		status = http.StatusBadRequest
	case apperrors.KindNotFound:
		status = http.StatusNotFound
	case apperrors.KindHierarchyViolation:
		status = http.StatusUnprocessableEntity
	case apperrors.KindDeletionBlocked:
		status = http.StatusConflict
	case apperrors.KindTransactionFailure:
		status = http.StatusInternalServerError
	}

	c.JSON(status, gin.H{"error": appErr.Message, "kind": string(appErr.Kind)})
}
