// Package apierror renders API errors as RFC 9457 Problem Details
// (application/problem+json) so every failure response carries a stable
// machine-readable type, a request correlation ID, and a message safe
// to show in the app.
package apierror

// Error type URIs, used as the "type" member of a problem response.
const (
	TypeValidation   = "urn:moodwave:error:validation"
	TypeBadRequest   = "urn:moodwave:error:bad_request"
	TypeUnauthorized = "urn:moodwave:error:unauthorized"
	TypeForbidden    = "urn:moodwave:error:forbidden"
	TypeNotFound     = "urn:moodwave:error:not_found"
	TypeConflict     = "urn:moodwave:error:conflict"
	TypeRateLimit    = "urn:moodwave:error:rate_limit"
	TypeInternal     = "urn:moodwave:error:internal"
	TypeInvalidUUID  = "urn:moodwave:error:invalid_uuid"
)

// Titles, the short human-readable summary for each type.
const (
	TitleValidation   = "Validation Error"
	TitleBadRequest   = "Bad Request"
	TitleUnauthorized = "Authentication Required"
	TitleForbidden    = "Permission Denied"
	TitleNotFound     = "Resource Not Found"
	TitleConflict     = "Resource Conflict"
	TitleRateLimit    = "Rate Limit Exceeded"
	TitleInternal     = "Internal Server Error"
	TitleInvalidUUID  = "Invalid UUID Format"
)

// ProblemDetails is an RFC 9457 problem response.
// See https://www.rfc-editor.org/rfc/rfc9457.html
type ProblemDetails struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`

	// Extension members.
	RequestID   string       `json:"request_id,omitempty"`
	UserMessage string       `json:"user_message,omitempty"`
	RetryAfter  *int         `json:"retry_after,omitempty"`
	Action      string       `json:"action,omitempty"`
	Errors      []FieldError `json:"errors,omitempty"`
}

// FieldError reports a single invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func (p *ProblemDetails) Error() string {
	if p.Detail != "" {
		return p.Detail
	}
	return p.Title
}
