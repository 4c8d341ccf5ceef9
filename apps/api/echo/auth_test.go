package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/heliumhq/dashboard-api/core"
)

func Test_authApi_login(t *testing.T) {
	env := setup(t)

	tests := []httpTest{
		{
			name:     "wrong password",
			body:     marshalObj(t, LoginRequest{Email: core.Conf.AdminEmail, Password: "nope"}),
			wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name:     "unknown email",
			body:     marshalObj(t, LoginRequest{Email: "someone@else.io", Password: testAdminPassword}),
			wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name:     "invalid email",
			body:     marshalObj(t, LoginRequest{Email: "not-an-email", Password: testAdminPassword}),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing password",
			body:     marshalObj(t, LoginRequest{Email: core.Conf.AdminEmail}),
			wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.request(http.MethodPost, "/api/login", "", tt.body)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("email is case and space insensitive", func(t *testing.T) {
		body := marshalObj(t, LoginRequest{Email: " Admin@Test.IO ", Password: testAdminPassword})
		rec := env.request(http.MethodPost, "/api/login", "", body)
		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp LoginResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
	})
}

func Test_server_authorization(t *testing.T) {
	env := setup(t)

	t.Run("missing token", func(t *testing.T) {
		rec := env.request(http.MethodGet, "/api/users", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		want := marshalObj(t, errMissingToken)
		ok, err := jsonBytesEqual(t, rec.Body.Bytes(), want)
		assert.NoError(t, err)
		assert.True(t, ok, rec.Body.String())
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := env.request(http.MethodGet, "/api/users", "not.a.jwt")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, rec.Body.String())
	})

	t.Run("non-admin token", func(t *testing.T) {
		claims := GetAdminClaims("peon@test.io")
		claims.IsAdmin = false
		token, err := GenerateToken(claims)
		assert.NoError(t, err)

		rec := env.request(http.MethodGet, "/api/users", token)
		assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())
	})

	t.Run("admin token", func(t *testing.T) {
		rec := env.request(http.MethodGet, "/api/users", getToken(t))
		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("home is public", func(t *testing.T) {
		rec := env.request(http.MethodGet, "/", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
