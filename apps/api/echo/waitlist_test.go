package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/heliumhq/dashboard-api/core/waitlist"
)

func Test_waitlistApi_query(t *testing.T) {
	env := setup(t)
	token := getToken(t)

	tt := httpTest{wantCode: http.StatusOK, wantData: []byte("[]")}
	checkCodeAndData(t, tt, env.request(http.MethodGet, "/api/waitlist", token))

	now := time.Now().UTC()
	env.db.SeedWaitlist(
		waitlist.Entry{ID: "w1", FullName: "Jane Doe", Email: "jane@test.io", JoinedAt: now.Add(-time.Hour)},
		waitlist.Entry{ID: "w2", FullName: "John Smith", Email: "john@test.io", JoinedAt: now},
	)

	rec := env.request(http.MethodGet, "/api/waitlist", token)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var entries []waitlist.Entry
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	if assert.Len(t, entries, 2) {
		// most recently joined first
		assert.Equal(t, "w2", entries[0].ID)
	}
}

func Test_waitlistApi_archive(t *testing.T) {
	env := setup(t)
	token := getToken(t)
	now := time.Now().UTC()
	env.db.SeedWaitlist(
		waitlist.Entry{ID: "w1", FullName: "Jane Doe", Email: "jane@test.io", JoinedAt: now, IsNotified: true},
		waitlist.Entry{ID: "w2", FullName: "John Smith", Email: "john@test.io", JoinedAt: now, IsNotified: true},
		waitlist.Entry{ID: "w3", FullName: "Ann Lee", Email: "ann@test.io", JoinedAt: now},
	)

	t.Run("by id", func(t *testing.T) {
		body := marshalObj(t, ArchiveWaitlistRequest{IDs: []string{"w1", "ghost"}})
		tt := httpTest{
			wantCode: http.StatusOK,
			wantData: marshalObj(t, SuccessResponse{Success: "archived 1 waitlist entries"}),
		}
		checkCodeAndData(t, tt, env.request(http.MethodPost, "/api/waitlist/archive", token, body))
	})

	t.Run("no ids archives every notified entry", func(t *testing.T) {
		tt := httpTest{
			wantCode: http.StatusOK,
			wantData: marshalObj(t, SuccessResponse{Success: "archived 1 waitlist entries"}),
		}
		checkCodeAndData(t, tt, env.request(http.MethodPost, "/api/waitlist/archive", token, []byte(`{}`)))
	})
}
