package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	agencydomain "github.com/setterhq/setter-crm/internal/agency/domain"
	authdomain "github.com/setterhq/setter-crm/internal/auth/domain"
	"github.com/setterhq/setter-crm/internal/auth/session"
	"github.com/setterhq/setter-crm/internal/clock"
	"github.com/setterhq/setter-crm/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthService struct {
	signupCalls int
	loginCalls  int
	session     *authdomain.Session
}

func (f *fakeAuthService) Signup(ctx context.Context, req authdomain.SignupRequest) (*authdomain.LoginResult, error) {
	f.signupCalls++
	return &authdomain.LoginResult{
		UserID:    snowflake.ID(200),
		RawToken:  "raw-session-token",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func (f *fakeAuthService) Login(ctx context.Context, req authdomain.LoginRequest) (*authdomain.LoginResult, error) {
	f.loginCalls++
	return &authdomain.LoginResult{
		UserID:    snowflake.ID(200),
		RawToken:  "raw-session-token",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func (f *fakeAuthService) Logout(ctx context.Context, rawToken string) error {
	return nil
}

func (f *fakeAuthService) Authenticate(ctx context.Context, rawToken string) (*authdomain.Session, error) {
	if f.session == nil {
		return nil, authdomain.ErrInvalidSession
	}
	return f.session, nil
}

type fakeUsersRepo struct {
	user *authdomain.User
}

func (f *fakeUsersRepo) Create(ctx context.Context, user *authdomain.User) error { return nil }

func (f *fakeUsersRepo) FindByEmail(ctx context.Context, email string) (*authdomain.User, error) {
	return f.user, nil
}

func (f *fakeUsersRepo) FindByID(ctx context.Context, id snowflake.ID) (*authdomain.User, error) {
	return f.user, nil
}

type fakeAgencyService struct {
	scope agencydomain.Scope
}

func (f *fakeAgencyService) Create(ctx context.Context, ownerID snowflake.ID, req agencydomain.CreateAgencyRequest) (*agencydomain.Agency, error) {
	return nil, agencydomain.ErrInvalidName
}

func (f *fakeAgencyService) Get(ctx context.Context, scope agencydomain.Scope) (*agencydomain.Agency, error) {
	return nil, agencydomain.ErrNotAgencyMember
}

func (f *fakeAgencyService) Update(ctx context.Context, scope agencydomain.Scope, req agencydomain.UpdateAgencyRequest) error {
	return agencydomain.ErrNotAgencyMember
}

func (f *fakeAgencyService) Resolve(ctx context.Context, userID snowflake.ID) (agencydomain.Scope, error) {
	scope := f.scope
	scope.UserID = userID
	return scope, nil
}

func (f *fakeAgencyService) Members(ctx context.Context, scope agencydomain.Scope) ([]agencydomain.Member, error) {
	return nil, agencydomain.ErrNotAgencyMember
}

func (f *fakeAgencyService) RemoveMember(ctx context.Context, scope agencydomain.Scope, userID snowflake.ID) error {
	return agencydomain.ErrNotAgencyMember
}

func (f *fakeAgencyService) InviteMember(ctx context.Context, scope agencydomain.Scope, req agencydomain.InviteRequest) (*agencydomain.AgencyInvitation, error) {
	return nil, agencydomain.ErrNotAgencyMember
}

func (f *fakeAgencyService) PendingInvitations(ctx context.Context, email string) ([]agencydomain.Invitation, error) {
	return nil, nil
}

func (f *fakeAgencyService) AgencyInvitations(ctx context.Context, scope agencydomain.Scope) ([]agencydomain.AgencyInvitation, error) {
	return nil, agencydomain.ErrNotAgencyMember
}

func (f *fakeAgencyService) AcceptInvitation(ctx context.Context, userID snowflake.ID, email string, inviteID snowflake.ID) error {
	return agencydomain.ErrInviteNotFound
}

func newTestServer(t *testing.T, authsvc authdomain.Service, users authdomain.Repository, agencysvc agencydomain.Service) (*Server, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	s := &Server{
		engine:    engine,
		sessions:  session.NewManager(config.Config{AuthCookieSecure: false}),
		clock:     clock.NewFakeClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)),
		authsvc:   authsvc,
		users:     users,
		agencysvc: agencysvc,
	}
	s.RegisterRoutes()
	return s, engine
}

func TestSignupSetsSessionCookie(t *testing.T) {
	auth := &fakeAuthService{}
	_, engine := newTestServer(t, auth, &fakeUsersRepo{}, &fakeAgencyService{})

	body, _ := json.Marshal(map[string]string{
		"email":    "new@example.com",
		"password": "secret-pass-1",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, auth.signupCalls)

	var found bool
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == session.CookieName {
			found = true
			assert.Equal(t, "raw-session-token", cookie.Value)
			assert.True(t, cookie.HttpOnly)
		}
	}
	assert.True(t, found, "session cookie must be set")
}

func TestSignupRejectsMalformedBody(t *testing.T) {
	_, engine := newTestServer(t, &fakeAuthService{}, &fakeUsersRepo{}, &fakeAgencyService{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader([]byte(`{"email":1}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMeRequiresSession(t *testing.T) {
	_, engine := newTestServer(t, &fakeAuthService{}, &fakeUsersRepo{}, &fakeAgencyService{})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMeReturnsUserAndAgencyContext(t *testing.T) {
	userID := snowflake.ID(200)
	auth := &fakeAuthService{session: &authdomain.Session{UserID: userID}}
	users := &fakeUsersRepo{user: &authdomain.User{ID: userID, Email: "me@example.com"}}
	agency := &fakeAgencyService{scope: agencydomain.Scope{
		Agency: &agencydomain.Agency{ID: snowflake.ID(900), Name: "Closers"},
		Role:   agencydomain.RoleAdmin,
	}}
	_, engine := newTestServer(t, auth, users, agency)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "raw-session-token"})
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "me@example.com", resp["email"])
	assert.Equal(t, "Closers", resp["agency_name"])
	assert.Equal(t, agencydomain.RoleAdmin, resp["role"])
}
