package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoHandler records whether an identity was resolved for the request.
func echoHandler(gotID **int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := UserID(r.Context()); ok {
			*gotID = &id
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequire(t *testing.T) {
	m := NewTokenManager("test-secret")
	token, err := m.Issue(9)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
		wantID     *int64
	}{
		{
			name:       "missing header",
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"message":"No token provided"}`,
		},
		{
			name:       "malformed header",
			header:     "Token " + token,
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"message":"No token provided"}`,
		},
		{
			name:       "invalid token",
			header:     "Bearer garbage",
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"message":"Invalid or expired token"}`,
		},
		{
			name:       "valid token",
			header:     "Bearer " + token,
			wantStatus: http.StatusOK,
			wantID:     int64Ptr(9),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var gotID *int64
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			m.Require(echoHandler(&gotID)).ServeHTTP(rr, req)

			assert.Equal(t, tc.wantStatus, rr.Code)
			if tc.wantBody != "" {
				assert.JSONEq(t, tc.wantBody, rr.Body.String())
				assert.Nil(t, gotID)
			}
			if tc.wantID != nil {
				require.NotNil(t, gotID)
				assert.Equal(t, *tc.wantID, *gotID)
			}
		})
	}
}

func TestOptional(t *testing.T) {
	m := NewTokenManager("test-secret")
	token, err := m.Issue(9)
	require.NoError(t, err)

	foreign, err := NewTokenManager("some-other-secret").Issue(9)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		wantID *int64
	}{
		{name: "missing header proceeds anonymous"},
		{name: "invalid token silently ignored", header: "Bearer garbage"},
		{name: "foreign secret silently ignored", header: "Bearer " + foreign},
		{name: "valid token resolves identity", header: "Bearer " + token, wantID: int64Ptr(9)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var gotID *int64
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			m.Optional(echoHandler(&gotID)).ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			if tc.wantID == nil {
				assert.Nil(t, gotID)
			} else {
				require.NotNil(t, gotID)
				assert.Equal(t, *tc.wantID, *gotID)
			}
		})
	}
}

func int64Ptr(v int64) *int64 { return &v }
