package echoapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/heliumhq/dashboard-api/core/profile"
)

func Test_userApi_query(t *testing.T) {
	env := setup(t)
	token := getToken(t)

	t.Run("empty", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusOK, wantData: []byte("[]")}
		checkCodeAndData(t, tt, env.request(http.MethodGet, "/api/users", token))
	})

	now := time.Now().UTC()
	older := seedProfile(t, env, "u1", "Jane Doe", "jane@test.io", now.Add(-time.Hour))
	newer := seedProfile(t, env, "u2", "John Smith", "john@test.io", now)

	t.Run("most recently created first", func(t *testing.T) {
		tt := httpTest{
			wantCode: http.StatusOK,
			wantData: marshalObj(t, []profile.Profile{newer, older}),
		}
		checkCodeAndData(t, tt, env.request(http.MethodGet, "/api/users", token))
	})
}

func Test_userApi_create(t *testing.T) {
	env := setup(t)
	token := getToken(t)
	seedProfile(t, env, "u1", "Jane Doe", "jane@test.io", time.Now().UTC())

	t.Run("ok", func(t *testing.T) {
		body := marshalObj(t, profile.NewProfile{
			Email:    "John@Test.io",
			Password: "Sup3rS3cr3t",
			FullName: "John Smith",
		})
		rec := env.request(http.MethodPost, "/api/users", token, body)
		assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var p profile.Profile
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
		assert.Equal(t, "john@test.io", p.Email)
		assert.Equal(t, "John", p.PreferredName)
		assert.Equal(t, "seed", p.PlanType)
		assert.NotEmpty(t, p.UserID)
	})

	tests := []httpTest{
		{
			name:     "duplicate email",
			body:     marshalObj(t, profile.NewProfile{Email: "jane@test.io", Password: "Sup3rS3cr3t", FullName: "Jane Again"}),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"email": "a user with this email already exists"}`),
		},
		{
			name:     "short password",
			body:     marshalObj(t, profile.NewProfile{Email: "ann@test.io", Password: "short", FullName: "Ann Lee"}),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing full name",
			body:     marshalObj(t, profile.NewProfile{Email: "ann@test.io", Password: "Sup3rS3cr3t"}),
			wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkCodeAndData(t, tt, env.request(http.MethodPost, "/api/users", token, tt.body))
		})
	}
}

func Test_userApi_destroy(t *testing.T) {
	env := setup(t)
	token := getToken(t)
	seedProfile(t, env, "u1", "Jane Doe", "jane@test.io", time.Now().UTC())

	rec := env.request(http.MethodDelete, "/api/users/u1", token)
	assert.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	// gone now
	rec = env.request(http.MethodDelete, "/api/users/u1", token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func Test_userApi_destroyMultiple(t *testing.T) {
	env := setup(t)
	token := getToken(t)
	now := time.Now().UTC()
	seedProfile(t, env, "u1", "Jane Doe", "jane@test.io", now)
	seedProfile(t, env, "u2", "John Smith", "john@test.io", now)

	body := marshalObj(t, BulkTargetsRequest{UserIDs: []string{"u1", "ghost"}})
	rec := env.request(http.MethodPost, "/api/users/bulk-delete", token, body)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp BulkOpResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.SuccessCount)
	assert.Equal(t, 1, resp.FailureCount)
	assert.Len(t, resp.Errors, 1)

	// u2 untouched
	profiles, err := env.profileSvc.QueryAll(context.Background())
	assert.NoError(t, err)
	assert.Len(t, profiles, 1)
	assert.Equal(t, "u2", profiles[0].UserID)
}

func Test_userApi_fetchEmails(t *testing.T) {
	env := setup(t)
	token := getToken(t)
	now := time.Now().UTC()
	seedProfile(t, env, "u1", "Jane Doe", "jane@test.io", now)
	seedProfile(t, env, "u2", "John Smith", "john@test.io", now)

	body := marshalObj(t, BulkTargetsRequest{UserIDs: []string{"u2", "ghost"}})
	tt := httpTest{
		wantCode: http.StatusOK,
		wantData: marshalObj(t, []profile.Contact{{UserID: "u2", Email: "john@test.io", FullName: "John Smith"}}),
	}
	checkCodeAndData(t, tt, env.request(http.MethodPost, "/api/users/fetch-emails", token, body))
}

func Test_userApi_export(t *testing.T) {
	env := setup(t)
	token := getToken(t)
	seedProfile(t, env, "u1", "Jane Doe", "jane@test.io", time.Now().UTC())

	rec := env.request(http.MethodGet, "/api/users/export", token)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Equal(t, `attachment; filename="users.csv"`, rec.Header().Get("Content-Disposition"))

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, `"Name","Email","Status","Referral Source","Created At"`, lines[0])
	assert.Contains(t, lines[1], `"Jane Doe","jane@test.io"`)
}

func seedProfile(t *testing.T, env *testEnv, userID, name, email string, createdAt time.Time) profile.Profile {
	t.Helper()
	p, err := env.profileRepo.CreateProfile(context.Background(), profile.Profile{
		ID:            userID + "-profile",
		UserID:        userID,
		FullName:      name,
		PreferredName: strings.Fields(name)[0],
		Email:         email,
		PlanType:      "seed",
		AccountType:   "individual",
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	})
	if err != nil {
		t.Fatalf("seedProfile() failed: %v", err)
	}
	return p
}
