package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"hirehub/internal/auth"
	"hirehub/internal/jobs"
	"hirehub/internal/storage/blob"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// bindError turns a binding failure into the field-by-field error map the
// client renders inline. Validation never reaches the services.
func (h *Handler) bindError(c *gin.Context, err error) {
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		fields := make(map[string]string, len(vErrs))
		for _, fe := range vErrs {
			fields[strings.ToLower(fe.Field())] = fieldMessage(fe)
		}
		c.JSON(http.StatusBadRequest, gin.H{"errors": fields})
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return "invalid email"
	case "min":
		return fmt.Sprintf("%s should be minimum of %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// formFile fetches the named upload and enforces the configured size cap.
// gin's MaxMultipartMemory is only a parse threshold, oversized files spill
// to disk and still arrive, so the cap is checked here.
func (h *Handler) formFile(c *gin.Context, field string) (*multipart.FileHeader, bool) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{field: field + " is required"}})
		return nil, false
	}

	if h.maxUpload > 0 && fileHeader.Size > h.maxUpload {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{
			field: fmt.Sprintf("file exceeds the %d byte limit", h.maxUpload),
		}})
		return nil, false
	}

	return fileHeader, true
}

// serviceError maps sentinel errors to status codes; anything unrecognized
// is logged and reported as a 500 without leaking internals.
func (h *Handler) serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrNoSession):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, jobs.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, jobs.ErrJobNotFound),
		errors.Is(err, jobs.ErrApplicationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrEmailTaken),
		errors.Is(err, jobs.ErrAlreadyApplied),
		errors.Is(err, jobs.ErrJobClosed),
		errors.Is(err, jobs.ErrCompanyExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, blob.ErrUnsupportedType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
