package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/saikrishna7004/campus-360-backend/common/auth"
	apperrors "github.com/saikrishna7004/campus-360-backend/common/errors"
	"github.com/saikrishna7004/campus-360-backend/middleware"
	"github.com/saikrishna7004/campus-360-backend/models"
	"github.com/saikrishna7004/campus-360-backend/services"
)

const dateLayout = "2006-01-02"

// Clients send lastFetchTime as a JavaScript ISO string.
const jsISOLayout = "2006-01-02T15:04:05.000Z"

// currentPrincipal returns the caller attached by the auth middleware.
func currentPrincipal(ctx *gin.Context) (auth.Principal, bool) {
	p, ok := middleware.GetPrincipal(ctx)
	if !ok {
		_ = ctx.Error(apperrors.Unauthorized("Access denied"))
		return auth.Principal{}, false
	}
	return p, true
}

// bindJSON decodes the request body, attaching an InvalidRequest error on failure.
func bindJSON(ctx *gin.Context, dst any) bool {
	if err := ctx.ShouldBindJSON(dst); err != nil {
		_ = ctx.Error(apperrors.New(http.StatusBadRequest, apperrors.KindInvalidRequest, "Invalid request body", err))
		return false
	}
	return true
}

// parsePaginationParams extracts page/limit; malformed values fall back to the defaults.
func parsePaginationParams(ctx *gin.Context) (int, int) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", strconv.Itoa(services.DefaultHistoryLimit)))
	return services.NormalizePage(page, limit)
}

// parseStatuses reads a comma separated status filter.
func parseStatuses(raw string) ([]models.OrderStatus, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var statuses []models.OrderStatus
	for _, part := range strings.Split(raw, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		st, ok := models.ParseOrderStatus(part)
		if !ok {
			return nil, apperrors.InvalidStatus()
		}
		statuses = append(statuses, st)
	}
	return statuses, nil
}

func parseLastFetchTime(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339Nano, jsISOLayout} {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, apperrors.InvalidRequest("Invalid lastFetchTime")
}

// parseInstant accepts RFC3339 or a plain date. isDate reports which form matched.
func parseInstant(raw string) (t time.Time, isDate bool, ok bool) {
	raw = strings.TrimSpace(raw)
	if parsed, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return parsed.UTC(), false, true
	}
	if parsed, err := time.Parse(dateLayout, raw); err == nil {
		return parsed, true, true
	}
	return time.Time{}, false, false
}

// parseHistoryBounds converts startDate/endDate into [from, before). A plain endDate covers that whole day.
func parseHistoryBounds(start, end string) (*time.Time, *time.Time, error) {
	var from, before *time.Time
	if strings.TrimSpace(start) != "" {
		t, _, ok := parseInstant(start)
		if !ok {
			return nil, nil, apperrors.InvalidRequest("Invalid startDate")
		}
		from = &t
	}
	if strings.TrimSpace(end) != "" {
		t, isDate, ok := parseInstant(end)
		if !ok {
			return nil, nil, apperrors.InvalidRequest("Invalid endDate")
		}
		if isDate {
			t = t.Add(24 * time.Hour)
		} else {
			t = t.Add(time.Millisecond)
		}
		before = &t
	}
	return from, before, nil
}

func listQuery(ctx *gin.Context) (services.ListQuery, error) {
	statuses, err := parseStatuses(ctx.Query("status"))
	if err != nil {
		return services.ListQuery{}, err
	}
	after, err := parseLastFetchTime(ctx.Query("lastFetchTime"))
	if err != nil {
		return services.ListQuery{}, err
	}
	return services.ListQuery{Statuses: statuses, UpdatedAfter: after}, nil
}

func historyQuery(ctx *gin.Context) (services.HistoryQuery, error) {
	page, limit := parsePaginationParams(ctx)
	statuses, err := parseStatuses(ctx.Query("status"))
	if err != nil {
		return services.HistoryQuery{}, err
	}
	from, before, err := parseHistoryBounds(ctx.Query("startDate"), ctx.Query("endDate"))
	if err != nil {
		return services.HistoryQuery{}, err
	}
	return services.HistoryQuery{
		Page:          page,
		Limit:         limit,
		CreatedFrom:   from,
		CreatedBefore: before,
		Statuses:      statuses,
	}, nil
}
