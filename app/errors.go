package app

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error kinds surfaced to clients. Every handler failure maps onto exactly
// one of these.
const (
	ErrKindUnauthenticated = "unauthenticated"
	ErrKindForbidden       = "forbidden"
	ErrKindInvalidInput    = "invalid_input"
	ErrKindQuotaExceeded   = "quota_exceeded"
	ErrKindUpstream        = "upstream_unavailable"
	ErrKindInternal        = "internal"
)

type apiError struct {
	Kind    string
	Message string
	Status  int
	// Used/Limit are only meaningful for quota_exceeded.
	Used  int
	Limit int
	cause error
}

func (e *apiError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *apiError) Unwrap() error { return e.cause }

func errUnauthenticated(msg string) *apiError {
	return &apiError{Kind: ErrKindUnauthenticated, Message: msg, Status: http.StatusUnauthorized}
}

func errForbidden(msg string) *apiError {
	return &apiError{Kind: ErrKindForbidden, Message: msg, Status: http.StatusForbidden}
}

func errInvalidInput(msg string) *apiError {
	return &apiError{Kind: ErrKindInvalidInput, Message: msg, Status: http.StatusBadRequest}
}

func errQuotaExceeded(used, limit int) *apiError {
	return &apiError{
		Kind:    ErrKindQuotaExceeded,
		Message: "monthly quota exceeded, upgrade to continue",
		Status:  http.StatusTooManyRequests,
		Used:    used,
		Limit:   limit,
	}
}

func errUpstream(cause error) *apiError {
	return &apiError{
		Kind:    ErrKindUpstream,
		Message: "generation service unavailable",
		Status:  http.StatusBadGateway,
		cause:   cause,
	}
}

func errInternal(msg string, cause error) *apiError {
	return &apiError{Kind: ErrKindInternal, Message: msg, Status: http.StatusInternalServerError, cause: cause}
}

// respondError renders any error as the stable {error, kind, ...} shape.
// Unknown errors are treated as internal; their detail is logged, not leaked.
func respondError(c *gin.Context, err error) {
	var apiErr *apiError
	if !errors.As(err, &apiErr) {
		apiErr = errInternal("unexpected error", err)
	}

	if apiErr.Kind == ErrKindInternal || apiErr.Kind == ErrKindUpstream {
		log.Printf("%s error path=%s err=%v", apiErr.Kind, c.Request.URL.Path, err)
	}

	body := gin.H{
		"error": apiErr.Message,
		"kind":  apiErr.Kind,
	}
	if apiErr.Kind == ErrKindQuotaExceeded {
		body["used"] = apiErr.Used
		body["limit"] = apiErr.Limit
	}
	c.AbortWithStatusJSON(apiErr.Status, body)
}
