package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/laptop_shop/internal/config"
	authmw "github.com/Skotchmaster/laptop_shop/internal/middleware/auth"
	"github.com/Skotchmaster/laptop_shop/internal/repo"
	"github.com/Skotchmaster/laptop_shop/internal/service"
)

type nullMail struct{}

func (nullMail) SendResetPasswordEmail(string, string) error { return nil }

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	require.NoError(t, config.SeedRoles(db))

	r := &repo.GormRepo{DB: db}
	secret := []byte("test-jwt-secret")

	authSvc := &service.AuthService{Repo: r, Mail: nullMail{}, JWTSecret: secret}
	cartSvc := &service.CartService{Repo: r}
	orderSvc := &service.OrderService{Repo: r}
	catalogSvc := &service.CatalogService{Repo: r}

	e := echo.New()
	Register(e, &Deps{
		AuthHandler:     &AuthHandler{Svc: authSvc},
		CartHandler:     &CartHandler{Svc: cartSvc},
		OrderHandler:    &OrderHandler{Svc: orderSvc},
		ProductHandler:  &ProductHandler{Svc: catalogSvc},
		CategoryHandler: &CategoryHandler{Svc: catalogSvc},
		CouponHandler:   &CouponHandler{Svc: catalogSvc},
		WishlistHandler: &WishlistHandler{Svc: catalogSvc},
		ReviewHandler:   &ReviewHandler{Svc: catalogSvc},
		AddressHandler:  &AddressHandler{Svc: &service.AddressService{Repo: r}},
		SearchHandler:   &SearchHandler{},
		Auth:            authmw.New(secret),
	})
	return e
}

func doJSON(e *echo.Echo, method, path, body, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) (Response, map[string]any) {
	t.Helper()
	var env Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	data, _ := env.Data.(map[string]any)
	return env, data
}

func TestAuthFlow_RegisterLoginProfile(t *testing.T) {
	t.Parallel()

	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/v1/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"Secret123"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	env, _ := decodeEnvelope(t, rec)
	assert.True(t, env.Success)

	// duplicate registration conflicts
	rec = doJSON(e, http.MethodPost, "/api/v1/auth/register",
		`{"username":"alice","email":"alice2@example.com","password":"Secret123"}`, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	env, _ = decodeEnvelope(t, rec)
	assert.False(t, env.Success)

	// wrong password gets the uniform envelope, not a stack trace
	rec = doJSON(e, http.MethodPost, "/api/v1/auth/login",
		`{"username":"alice","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	env, _ = decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Message)

	rec = doJSON(e, http.MethodPost, "/api/v1/auth/login",
		`{"username":"alice","password":"Secret123"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	env, data := decodeEnvelope(t, rec)
	require.True(t, env.Success)
	token, _ := data["token"].(string)
	refresh, _ := data["refresh_token"].(string)
	require.NotEmpty(t, token)
	require.NotEmpty(t, refresh)

	// protected route without a token
	rec = doJSON(e, http.MethodGet, "/api/v1/auth/profile", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	env, _ = decodeEnvelope(t, rec)
	assert.False(t, env.Success)

	// and with one
	rec = doJSON(e, http.MethodGet, "/api/v1/auth/profile", "", token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	env, data = decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "alice", data["username"])

	// refresh yields a working access token
	rec = doJSON(e, http.MethodPost, "/api/v1/auth/refresh",
		fmt.Sprintf(`{"refresh_token":%q}`, refresh), "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	_, data = decodeEnvelope(t, rec)
	newToken, _ := data["token"].(string)
	require.NotEmpty(t, newToken)
	rec = doJSON(e, http.MethodGet, "/api/v1/auth/profile", "", newToken)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthFlow_AdminRouteForbiddenForRegularUser(t *testing.T) {
	t.Parallel()

	e := newTestServer(t)

	doJSON(e, http.MethodPost, "/api/v1/auth/register",
		`{"username":"bob","email":"bob@example.com","password":"Secret123"}`, "")
	rec := doJSON(e, http.MethodPost, "/api/v1/auth/login",
		`{"username":"bob","password":"Secret123"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	_, data := decodeEnvelope(t, rec)
	token, _ := data["token"].(string)
	require.NotEmpty(t, token)

	rec = doJSON(e, http.MethodPost, "/api/v1/products",
		`{"name":"laptop","price":1000,"quantity":5}`, token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	env, _ := decodeEnvelope(t, rec)
	assert.False(t, env.Success)

	// reads stay public
	rec = doJSON(e, http.MethodGet, "/api/v1/products", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthFlow_ForgotPasswordDoesNotRevealAccounts(t *testing.T) {
	t.Parallel()

	e := newTestServer(t)

	doJSON(e, http.MethodPost, "/api/v1/auth/register",
		`{"username":"carol","email":"carol@example.com","password":"Secret123"}`, "")

	known := doJSON(e, http.MethodPost, "/api/v1/auth/forgot-password",
		`{"identifier":"carol@example.com"}`, "")
	unknown := doJSON(e, http.MethodPost, "/api/v1/auth/forgot-password",
		`{"identifier":"nobody@example.com"}`, "")

	assert.Equal(t, http.StatusOK, known.Code)
	assert.Equal(t, http.StatusOK, unknown.Code)
	assert.JSONEq(t, known.Body.String(), unknown.Body.String())
}

func TestAuthFlow_LogoutRevokesRefresh(t *testing.T) {
	t.Parallel()

	e := newTestServer(t)

	doJSON(e, http.MethodPost, "/api/v1/auth/register",
		`{"username":"dave","email":"dave@example.com","password":"Secret123"}`, "")
	rec := doJSON(e, http.MethodPost, "/api/v1/auth/login",
		`{"username":"dave","password":"Secret123"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	_, data := decodeEnvelope(t, rec)
	token, _ := data["token"].(string)
	refresh, _ := data["refresh_token"].(string)

	rec = doJSON(e, http.MethodPost, "/api/v1/auth/logout", "", token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodPost, "/api/v1/auth/refresh",
		fmt.Sprintf(`{"refresh_token":%q}`, refresh), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
