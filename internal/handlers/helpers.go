package handlers

import (
	"context"
	"log"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pulsefeed/backend/internal/models"
	"github.com/pulsefeed/backend/internal/repositories"
	"github.com/pulsefeed/backend/pkg/push"
)

// getClaimsFromContext returns the JWT claims set by the auth middleware,
// or nil on unauthenticated routes
func getClaimsFromContext(c echo.Context) *models.JwtCustomClaims {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return nil
	}
	return claims
}

// getUserIDFromContext returns the authenticated user's ID, 0 if absent
func getUserIDFromContext(c echo.Context) uint {
	claims := getClaimsFromContext(c)
	if claims == nil {
		return 0
	}
	return claims.UserID
}

// parsePagination reads ?page= and ?limit= with sane bounds
func parsePagination(c echo.Context, defaultLimit, maxLimit int) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxLimit {
		limit = defaultLimit
	}
	return page, limit
}

// paginationMeta builds the response meta block shared by paginated endpoints
func paginationMeta(page, limit int, totalItems int64) echo.Map {
	totalPages := int((totalItems + int64(limit) - 1) / int64(limit))
	return echo.Map{
		"currentPage":     page,
		"totalPages":      totalPages,
		"totalItems":      totalItems,
		"itemsPerPage":    limit,
		"hasNextPage":     page < totalPages,
		"hasPreviousPage": page > 1,
	}
}

// sendPush delivers a stored notification to the recipient's device,
// best-effort. Storage is the source of truth; push failures are only logged.
func sendPush(notifier push.Notifier, userRepo repositories.UserRepository, notif *models.Notification) {
	if notifier == nil {
		return
	}
	recipient, err := userRepo.GetUserByID(notif.RecipientID)
	if err != nil || recipient.DeviceToken == "" {
		return
	}
	go func() {
		data := map[string]string{
			"verb":        notif.Verb,
			"target_type": notif.TargetType,
			"target_id":   notif.TargetID,
		}
		if err := notifier.Send(context.Background(), recipient.DeviceToken, "Pulsefeed", notif.Message, data); err != nil {
			log.Printf("Push delivery failed for user %d: %v", notif.RecipientID, err)
		}
	}()
}
