package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/moodwave/backend/internal/apierror"
	"github.com/moodwave/backend/internal/dates"
	"github.com/moodwave/backend/internal/service"
)

type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// intQuery parses a required integer query parameter.
func intQuery(c *gin.Context, name string) (int, *apierror.FieldError) {
	raw := c.Query(name)
	if raw == "" {
		return 0, &apierror.FieldError{Field: name, Message: "is required", Code: "required"}
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &apierror.FieldError{Field: name, Message: "must be an integer", Code: "invalid_type"}
	}
	return value, nil
}

// optionalIntQuery parses an optional integer query parameter,
// returning nil when it is absent.
func optionalIntQuery(c *gin.Context, name string) (*int, *apierror.FieldError) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &apierror.FieldError{Field: name, Message: "must be an integer", Code: "invalid_type"}
	}
	return &value, nil
}

// yearMonthQuery parses the optional year/month range filter shared by
// most analytics endpoints.
func yearMonthQuery(c *gin.Context) (year, month *int, ok bool) {
	var fieldErrors []apierror.FieldError

	year, yearErr := optionalIntQuery(c, "year")
	if yearErr != nil {
		fieldErrors = append(fieldErrors, *yearErr)
	}
	month, monthErr := optionalIntQuery(c, "month")
	if monthErr != nil {
		fieldErrors = append(fieldErrors, *monthErr)
	}
	if month != nil && year == nil {
		fieldErrors = append(fieldErrors, apierror.FieldError{
			Field: "month", Message: "requires a year", Code: "missing_year",
		})
	}
	if month != nil && (*month < 1 || *month > 12) {
		fieldErrors = append(fieldErrors, apierror.FieldError{
			Field: "month", Message: "must be between 1 and 12", Code: "out_of_range",
		})
	}

	if len(fieldErrors) > 0 {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, fieldErrors))
		return nil, nil, false
	}
	return year, month, true
}

// writeAnalyticsError maps service failures shared by the range-filtered
// endpoints.
func writeAnalyticsError(c *gin.Context, err error) {
	requestID := apierror.GetRequestID(c)
	if errors.Is(err, service.ErrInvalidRange) || errors.Is(err, dates.ErrInvalidDate) {
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, []apierror.FieldError{
			{Field: "month", Message: "invalid range filter", Code: "out_of_range"},
		}))
		return
	}
	apierror.WriteProblem(c, apierror.NewInternalError(requestID))
}

// Summary handles GET /api/v1/analytics/summary
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	daysBack := 0
	if raw := c.Query("days_back"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			requestID := apierror.GetRequestID(c)
			apierror.WriteProblem(c, apierror.NewValidationError(requestID, []apierror.FieldError{
				{Field: "days_back", Message: "must be a positive integer", Code: "out_of_range"},
			}))
			return
		}
		daysBack = parsed
	}

	summary, err := h.analyticsService.Summary(c.Request.Context(), userID, daysBack)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Calendar handles GET /api/v1/analytics/calendar
func (h *AnalyticsHandler) Calendar(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var fieldErrors []apierror.FieldError
	year, yearErr := intQuery(c, "year")
	if yearErr != nil {
		fieldErrors = append(fieldErrors, *yearErr)
	}
	month, monthErr := intQuery(c, "month")
	if monthErr != nil {
		fieldErrors = append(fieldErrors, *monthErr)
	} else if month < 1 || month > 12 {
		fieldErrors = append(fieldErrors, apierror.FieldError{
			Field: "month", Message: "must be between 1 and 12", Code: "out_of_range",
		})
	}
	if len(fieldErrors) > 0 {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, fieldErrors))
		return
	}

	days, err := h.analyticsService.Calendar(c.Request.Context(), userID, year, month)
	if err != nil {
		writeAnalyticsError(c, err)
		return
	}

	c.JSON(http.StatusOK, days)
}

// Weekdays handles GET /api/v1/analytics/weekdays
func (h *AnalyticsHandler) Weekdays(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	year, month, ok := yearMonthQuery(c)
	if !ok {
		return
	}

	dist, err := h.analyticsService.WeekdayDistribution(c.Request.Context(), userID, year, month)
	if err != nil {
		writeAnalyticsError(c, err)
		return
	}

	c.JSON(http.StatusOK, dist)
}

// Trend handles GET /api/v1/analytics/trend
func (h *AnalyticsHandler) Trend(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	year, month, ok := yearMonthQuery(c)
	if !ok {
		return
	}

	points, err := h.analyticsService.MoodTrend(c.Request.Context(), userID, year, month)
	if err != nil {
		writeAnalyticsError(c, err)
		return
	}

	c.JSON(http.StatusOK, points)
}

// MoodCounts handles GET /api/v1/analytics/mood-counts
func (h *AnalyticsHandler) MoodCounts(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	year, month, ok := yearMonthQuery(c)
	if !ok {
		return
	}

	counts, err := h.analyticsService.MoodCounts(c.Request.Context(), userID, year, month)
	if err != nil {
		writeAnalyticsError(c, err)
		return
	}

	c.JSON(http.StatusOK, counts)
}

// ActivityStats handles GET /api/v1/analytics/activities
func (h *AnalyticsHandler) ActivityStats(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	year, month, ok := yearMonthQuery(c)
	if !ok {
		return
	}

	stats, err := h.analyticsService.ActivityStats(c.Request.Context(), userID, year, month)
	if err != nil {
		writeAnalyticsError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Correlation handles GET /api/v1/analytics/correlation
func (h *AnalyticsHandler) Correlation(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	year, month, ok := yearMonthQuery(c)
	if !ok {
		return
	}

	stats, err := h.analyticsService.MoodActivityCorrelation(c.Request.Context(), userID, year, month)
	if err != nil {
		writeAnalyticsError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
