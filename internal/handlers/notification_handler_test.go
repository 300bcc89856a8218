package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/pulsefeed/backend/internal/models"
	"github.com/pulsefeed/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newNotificationEnv(t *testing.T) (*gorm.DB, *NotificationHandler, repositories.NotificationRepository) {
	t.Helper()
	db := newTestDB(t)
	notifRepo := repositories.NewPostgresNotificationRepository(db)
	h := NewNotificationHandler(notifRepo, repositories.NewPostgresUserRepository(db))
	return db, h, notifRepo
}

func seedNotif(t *testing.T, repo repositories.NotificationRepository, actor *models.User, recipientID uint, isRead bool, createdAt time.Time) *models.Notification {
	t.Helper()
	n := models.NewFollowNotification(actor, recipientID)
	n.IsRead = isRead
	n.CreatedAt = createdAt
	require.NoError(t, repo.CreateNotification(n))
	return n
}

func TestGetNotificationsUnreadFirst(t *testing.T) {
	db, h, notifRepo := newNotificationEnv(t)
	e := newTestEcho()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	read := seedNotif(t, notifRepo, bob, alice.ID, true, base.Add(2*time.Hour))
	unread := seedNotif(t, notifRepo, bob, alice.ID, false, base)

	c, rec := newRequest(e, http.MethodGet, "/api/v1/notifications", "")
	loginAs(c, alice)
	require.NoError(t, h.GetNotifications(c))

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Notifications []EnrichedNotification `json:"notifications"`
		} `json:"data"`
		Meta map[string]interface{} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Notifications, 2)

	// the older unread one outranks the newer read one
	assert.Equal(t, unread.ID, resp.Data.Notifications[0].ID)
	assert.Equal(t, read.ID, resp.Data.Notifications[1].ID)
	assert.Equal(t, "bob", resp.Data.Notifications[0].Actor.Username)
	assert.Equal(t, float64(2), resp.Meta["totalItems"])
}

func TestGetUnreadCount(t *testing.T) {
	db, h, notifRepo := newNotificationEnv(t)
	e := newTestEcho()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	seedNotif(t, notifRepo, bob, alice.ID, false, time.Now())
	seedNotif(t, notifRepo, bob, alice.ID, false, time.Now())
	seedNotif(t, notifRepo, bob, alice.ID, true, time.Now())

	c, rec := newRequest(e, http.MethodGet, "/api/v1/notifications/unread-count", "")
	loginAs(c, alice)
	require.NoError(t, h.GetUnreadCount(c))

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["count"])
}

func TestMarkAsReadScopedToOwner(t *testing.T) {
	db, h, notifRepo := newNotificationEnv(t)
	e := newTestEcho()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	n := seedNotif(t, notifRepo, bob, alice.ID, false, time.Now())

	markRead := func(user *models.User, id string) error {
		c, _ := newRequest(e, http.MethodPost, "/api/v1/notifications/"+id+"/read", "")
		c.SetParamNames("id")
		c.SetParamValues(id)
		loginAs(c, user)
		return h.MarkAsRead(c)
	}

	// someone else's notification looks like a missing one
	requireHTTPError(t, markRead(bob, fmt.Sprint(n.ID)), http.StatusNotFound)
	requireHTTPError(t, markRead(alice, "99999"), http.StatusNotFound)

	require.NoError(t, markRead(alice, fmt.Sprint(n.ID)))
	// idempotent
	require.NoError(t, markRead(alice, fmt.Sprint(n.ID)))

	count, err := notifRepo.GetUnreadCount(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestMarkAllAsReadReportsCount(t *testing.T) {
	db, h, notifRepo := newNotificationEnv(t)
	e := newTestEcho()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	seedNotif(t, notifRepo, bob, alice.ID, false, time.Now())
	seedNotif(t, notifRepo, bob, alice.ID, false, time.Now())

	c, rec := newRequest(e, http.MethodPost, "/api/v1/notifications/read-all", "")
	loginAs(c, alice)
	require.NoError(t, h.MarkAllAsRead(c))

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["marked_read"])

	// second pass has nothing left to mark
	c, rec = newRequest(e, http.MethodPost, "/api/v1/notifications/read-all", "")
	loginAs(c, alice)
	require.NoError(t, h.MarkAllAsRead(c))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	data = resp["data"].(map[string]interface{})
	assert.Equal(t, float64(0), data["marked_read"])
}
