package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/darasahq/darasa/core/user"
)

func TestUserApi_login(t *testing.T) {
	env := setup(t)

	tests := []httpTest{
		{
			name:     "login admin ok",
			body:     marchallObj(t, map[string]string{"username": "admin", "password": "admin123"}),
			wantCode: http.StatusOK,
			extra:    "admin",
		},
		{
			name:     "login is case-insensitive on username",
			body:     marchallObj(t, map[string]string{"username": "TEACHER1", "password": "teacher123"}),
			wantCode: http.StatusOK,
			extra:    "teacher1",
		},
		{
			name:     "wrong password fails",
			body:     marchallObj(t, map[string]string{"username": "admin", "password": "nope"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "invalid credentials"}),
		},
		{
			name:     "unknown user fails alike",
			body:     marchallObj(t, map[string]string{"username": "ghost", "password": "admin123"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "invalid credentials"}),
		},
		{
			name:     "missing fields",
			body:     marchallObj(t, map[string]string{}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"username": "username is a required field",
				"password": "password is a required field",
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/users/login", tt.body)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if wantUname, ok := tt.extra.(string); ok {
				var resp struct {
					Token string     `json:"token"`
					User  *user.User `json:"user"`
				}
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("failed to unmarshal response: %v", err)
				}
				if resp.Token == "" {
					t.Error("token is empty")
				}
				if resp.User == nil || resp.User.Username != wantUname {
					t.Errorf("user = %+v; want username %q", resp.User, wantUname)
				}
			}
		})
	}
}

func TestUserApi_loginUpdatesLastLogin(t *testing.T) {
	env := setup(t)

	body := marchallObj(t, map[string]string{"username": "student1", "password": "student123"})
	req, rec := newRequest(http.MethodPost, "/v1/users/login", body)
	env.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %v %s", rec.Code, rec.Body.String())
	}

	usr, err := env.usrRepo.GetUserByUsername("student1")
	if err != nil {
		t.Fatalf("GetUserByUsername() failed: %v", err)
	}
	if usr.LastLogin.IsZero() {
		t.Error("LastLogin not set")
	}
}

func TestUserApi_tokenRefresh(t *testing.T) {
	env := setup(t)

	admin, err := env.usrRepo.GetUserByUsername("admin")
	if err != nil {
		t.Fatalf("GetUserByUsername() failed: %v", err)
	}
	token := env.getToken(t, admin)

	tests := []httpTest{
		{
			name:     "refresh ok",
			token:    token,
			wantCode: http.StatusOK,
		},
		{
			name:     "no token",
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, errMissingToken),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/v1/users/token-refresh", tt.token)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if tt.wantCode == http.StatusOK {
				var resp struct {
					Token string `json:"token"`
				}
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("failed to unmarshal response: %v", err)
				}
				if resp.Token == "" {
					t.Error("refreshed token is empty")
				}
			}
		})
	}
}
