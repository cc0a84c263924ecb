package apierror

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the MIME type for RFC 9457 Problem Details.
const ContentTypeProblemJSON = "application/problem+json"

// WriteProblem writes the problem to the response with the problem+json
// content type. A RetryAfter value also becomes a Retry-After header.
func WriteProblem(c *gin.Context, problem *ProblemDetails) {
	c.Header("Content-Type", ContentTypeProblemJSON)
	if problem.RetryAfter != nil {
		c.Header("Retry-After", strconv.Itoa(*problem.RetryAfter))
	}
	c.JSON(problem.Status, problem)
}

// GetRequestID returns the request's correlation ID, from the gin
// context when the middleware set it, otherwise from the header.
func GetRequestID(c *gin.Context) string {
	if id, ok := c.Get("request_id"); ok {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return c.GetHeader("X-Request-ID")
}

func newProblem(typ, title string, status int, requestID, detail, userMessage string) *ProblemDetails {
	return &ProblemDetails{
		Type:        typ,
		Title:       title,
		Status:      status,
		Detail:      detail,
		RequestID:   requestID,
		UserMessage: userMessage,
	}
}

// NewValidationError builds a 400 carrying one entry per invalid field.
func NewValidationError(requestID string, errors []FieldError) *ProblemDetails {
	p := newProblem(TypeValidation, TitleValidation, http.StatusBadRequest, requestID,
		"One or more fields failed validation",
		"Please check your input and try again")
	p.Errors = errors
	return p
}

// NewBadRequestError builds a 400 for malformed requests.
func NewBadRequestError(requestID, detail, userMessage string) *ProblemDetails {
	return newProblem(TypeBadRequest, TitleBadRequest, http.StatusBadRequest, requestID,
		detail, userMessage)
}

// NewUnauthorizedError builds a 401 with an "authenticate" action hint.
func NewUnauthorizedError(requestID string) *ProblemDetails {
	p := newProblem(TypeUnauthorized, TitleUnauthorized, http.StatusUnauthorized, requestID,
		"Authentication is required to access this resource",
		"Please sign in to continue")
	p.Action = "authenticate"
	return p
}

// NewForbiddenError builds a 403.
func NewForbiddenError(requestID string) *ProblemDetails {
	return newProblem(TypeForbidden, TitleForbidden, http.StatusForbidden, requestID,
		"You do not have permission to access this resource",
		"You don't have permission to perform this action")
}

// NewNotFoundError builds a 404 naming the missing resource.
func NewNotFoundError(requestID, resource, id string) *ProblemDetails {
	return newProblem(TypeNotFound, TitleNotFound, http.StatusNotFound, requestID,
		fmt.Sprintf("%s with ID '%s' was not found", resource, id),
		fmt.Sprintf("The requested %s could not be found", resource))
}

// NewConflictError builds a 409, e.g. for a second mood entry on the
// same calendar day.
func NewConflictError(requestID, detail string) *ProblemDetails {
	return newProblem(TypeConflict, TitleConflict, http.StatusConflict, requestID,
		detail, "This action conflicts with existing data")
}

// NewRateLimitError builds a 429 telling the client when to retry.
func NewRateLimitError(requestID string, retryAfter int) *ProblemDetails {
	p := newProblem(TypeRateLimit, TitleRateLimit, http.StatusTooManyRequests, requestID,
		fmt.Sprintf("Rate limit exceeded. Please retry after %d seconds", retryAfter),
		"Too many requests. Please wait before trying again.")
	p.RetryAfter = &retryAfter
	return p
}

// NewInternalError builds a 500. The detail never exposes the
// underlying error; callers log it server-side instead.
func NewInternalError(requestID string) *ProblemDetails {
	return newProblem(TypeInternal, TitleInternal, http.StatusInternalServerError, requestID,
		"An unexpected error occurred",
		"Something went wrong. Please try again later.")
}

// NewInvalidUUIDError builds a 400 for a malformed identifier.
func NewInvalidUUIDError(requestID, field, value string) *ProblemDetails {
	p := newProblem(TypeInvalidUUID, TitleInvalidUUID, http.StatusBadRequest, requestID,
		fmt.Sprintf("Invalid UUID format for field '%s': '%s'", field, value),
		"Invalid identifier format")
	p.Errors = []FieldError{{Field: field, Message: "must be a valid UUID", Code: "invalid_uuid"}}
	return p
}

// NewServiceUnavailableError builds a 503, used when a dependency such
// as the emotion classifier is unreachable.
func NewServiceUnavailableError(requestID string, retryAfter int) *ProblemDetails {
	p := newProblem(TypeInternal, "Service Unavailable", http.StatusServiceUnavailable, requestID,
		"The service is temporarily unavailable",
		"Service is temporarily unavailable. Please try again later.")
	p.RetryAfter = &retryAfter
	return p
}
