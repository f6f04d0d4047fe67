package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	agencydomain "github.com/setterhq/setter-crm/internal/agency/domain"
	appointmentdomain "github.com/setterhq/setter-crm/internal/appointment/domain"
	"github.com/setterhq/setter-crm/internal/assistant"
	authdomain "github.com/setterhq/setter-crm/internal/auth/domain"
	"github.com/setterhq/setter-crm/internal/calltracker"
	profiledomain "github.com/setterhq/setter-crm/internal/profile/domain"
	prospectdomain "github.com/setterhq/setter-crm/internal/prospect/domain"
	"github.com/setterhq/setter-crm/pkg/db"
	"gorm.io/gorm"
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
	ErrTooManyChats   = errors.New("too_many_requests")
)

// ErrorHandlingMiddleware renders the last gin error as a JSON payload
// when the handler has not written a response itself.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, errorPayload{Type: "internal_error", Message: "internal server error"}

	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidCredentials),
		errors.Is(err, authdomain.ErrInvalidSession),
		errors.Is(err, authdomain.ErrSessionExpired),
		errors.Is(err, authdomain.ErrSessionRevoked):
		return http.StatusUnauthorized, errorPayload{Type: "unauthorized", Message: "authentication required"}

	case errors.Is(err, ErrForbidden),
		errors.Is(err, agencydomain.ErrForbidden),
		errors.Is(err, agencydomain.ErrInviteWrongEmail),
		errors.Is(err, agencydomain.ErrCannotRemoveOwner):
		return http.StatusForbidden, errorPayload{Type: "forbidden", Message: "insufficient permissions"}

	case errors.Is(err, ErrNotFound),
		errors.Is(err, authdomain.ErrUserNotFound),
		errors.Is(err, profiledomain.ErrNotFound),
		errors.Is(err, prospectdomain.ErrNotFound),
		errors.Is(err, prospectdomain.ErrNoteNotFound),
		errors.Is(err, appointmentdomain.ErrNotFound),
		errors.Is(err, agencydomain.ErrAgencyNotFound),
		errors.Is(err, agencydomain.ErrInviteNotFound),
		errors.Is(err, agencydomain.ErrNotAgencyMember),
		errors.Is(err, calltracker.ErrProfileNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, errorPayload{Type: "not_found", Message: "resource not found"}

	case errors.Is(err, authdomain.ErrUserExists),
		errors.Is(err, agencydomain.ErrAlreadyInAgency),
		errors.Is(err, agencydomain.ErrInviteNotPending),
		db.IsDuplicateKeyErr(err):
		return http.StatusConflict, errorPayload{Type: "conflict", Message: err.Error()}

	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, profiledomain.ErrInvalidUser),
		errors.Is(err, profiledomain.ErrInvalidGoal),
		errors.Is(err, profiledomain.ErrInvalidName),
		errors.Is(err, prospectdomain.ErrInvalidName),
		errors.Is(err, prospectdomain.ErrInvalidStatus),
		errors.Is(err, prospectdomain.ErrInvalidPriority),
		errors.Is(err, prospectdomain.ErrInvalidValue),
		errors.Is(err, prospectdomain.ErrEmptyNote),
		errors.Is(err, appointmentdomain.ErrInvalidTitle),
		errors.Is(err, appointmentdomain.ErrInvalidDate),
		errors.Is(err, appointmentdomain.ErrInvalidTime),
		errors.Is(err, appointmentdomain.ErrInvalidStatus),
		errors.Is(err, appointmentdomain.ErrInvalidDuration),
		errors.Is(err, agencydomain.ErrInvalidName),
		errors.Is(err, agencydomain.ErrInvalidEmail),
		errors.Is(err, agencydomain.ErrInvalidRole):
		return http.StatusBadRequest, errorPayload{Type: "validation_error", Message: err.Error()}

	case errors.Is(err, ErrTooManyChats):
		return http.StatusTooManyRequests, errorPayload{Type: "rate_limited", Message: "too many requests"}

	case errors.Is(err, assistant.ErrNotConfigured):
		return http.StatusServiceUnavailable, errorPayload{Type: "service_unavailable", Message: "assistant is not configured"}

	case errors.Is(err, assistant.ErrUpstream),
		errors.Is(err, assistant.ErrEmptyReply):
		return http.StatusBadGateway, errorPayload{Type: "upstream_error", Message: "assistant is unavailable"}
	}

	return http.StatusInternalServerError, errorPayload{Type: "internal_error", Message: "internal server error"}
}
