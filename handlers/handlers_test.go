package handlers_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/openfightdb/fighterapi/db"
	"github.com/openfightdb/fighterapi/handlers"
	mw "github.com/openfightdb/fighterapi/middleware"
)

var testKey = []byte("test-signing-key")

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	bdb := bun.NewDB(sqldb, sqlitedialect.New())
	_, err = bdb.Exec("PRAGMA foreign_keys = ON")
	require.NoError(t, err)
	require.NoError(t, db.CreateTables(context.Background(), bdb))
	t.Cleanup(func() { _ = bdb.Close() })

	h := handlers.New(bdb, testKey, 30*time.Minute)

	e := echo.New()
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = handlers.ErrorHandler
	h.Mount(e, testKey)
	return e
}

func doJSON(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func doForm(e *echo.Echo, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

func register(t *testing.T, e *echo.Echo, email, password string) {
	t.Helper()
	rec := doJSON(e, http.MethodPost, "/api/v1/auth",
		`{"email":"`+email+`","password":"`+password+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "true", strings.TrimSpace(rec.Body.String()))
}

func login(t *testing.T, e *echo.Echo, email, password string) string {
	t.Helper()
	rec := doForm(e, "/api/v1/auth/token", url.Values{
		"username": {email},
		"password": {password},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var out map[string]string
	decode(t, rec, &out)
	require.Equal(t, "bearer", out["token_type"])
	require.NotEmpty(t, out["access_token"])
	return out["access_token"]
}

func TestRegisterLoginMe(t *testing.T) {
	e := newTestServer(t)

	register(t, e, "coach@example.com", "cornerman")
	token := login(t, e, "coach@example.com", "cornerman")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var out map[string]any
	decode(t, rec, &out)
	assert.Equal(t, "coach@example.com", out["email"])
	assert.EqualValues(t, 1, out["id"])
}

func TestRegisterRejectsBadEmail(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/v1/auth",
		`{"email":"not-an-email","password":"secret"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var env map[string]string
	decode(t, rec, &env)
	assert.Equal(t, "bad_request", env["error"])
}

func TestLoginFailuresAreUniform(t *testing.T) {
	e := newTestServer(t)
	register(t, e, "coach@example.com", "cornerman")

	wrongPass := doForm(e, "/api/v1/auth/token", url.Values{
		"username": {"coach@example.com"},
		"password": {"wrong"},
	})
	noUser := doForm(e, "/api/v1/auth/token", url.Values{
		"username": {"nobody@example.com"},
		"password": {"wrong"},
	})

	assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	assert.Equal(t, http.StatusUnauthorized, noUser.Code)
	// Same body both ways, so responses don't leak which emails exist.
	assert.JSONEq(t, wrongPass.Body.String(), noUser.Body.String())
}

func TestListUsersHidesPasswords(t *testing.T) {
	e := newTestServer(t)
	register(t, e, "coach@example.com", "cornerman")

	rec := doJSON(e, http.MethodGet, "/api/v1/auth", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "coach@example.com")
	assert.NotContains(t, rec.Body.String(), "hashed_password")
}

func TestExpiredTokenRejected(t *testing.T) {
	e := newTestServer(t)

	claims := &mw.Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "coach@example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testKey)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTokenMissingClaimsIsNotFound(t *testing.T) {
	e := newTestServer(t)

	claims := &mw.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testKey)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestErrorEnvelopeShape(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/api/v1/base_fighter/id/999", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var env map[string]string
	decode(t, rec, &env)
	assert.Equal(t, "not_found", env["error"])
	assert.Equal(t, "Fighter/Fighters not found", env["detail"])
	assert.Equal(t, "/api/v1/base_fighter/id/999", env["path"])
}

func TestFighterCRUDOverHTTP(t *testing.T) {
	e := newTestServer(t)

	body := `{
		"name": "Jon", "nickname": "Bones", "surname": "Jones",
		"country": "USA", "weight_class": "Heavyweight",
		"wins": 27, "loss": 1,
		"base_stats": {"age": 36, "weight": 248.0, "height": 76.0, "reach": 84.5}
	}`
	rec := doJSON(e, http.MethodPost, "/api/v1/extended_fighter", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created map[string]any
	decode(t, rec, &created)
	id := created["fighter_id"]
	require.NotNil(t, id)

	rec = doJSON(e, http.MethodGet, "/api/v1/extended_fighter/id/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]any
	decode(t, rec, &got)
	assert.Equal(t, "Jon", got["name"])
	require.NotNil(t, got["base_stats"])

	rec = doJSON(e, http.MethodPut, "/api/v1/base_fighter/id/1", `{"wins": 28}`)
	require.Equal(t, http.StatusAccepted, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/v1/base_fighter/id/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var base map[string]any
	decode(t, rec, &base)
	assert.EqualValues(t, 28, base["wins"])
	assert.Nil(t, base["base_stats"])

	rec = doJSON(e, http.MethodGet,
		"/api/v1/base_fighter/fighter_details/name/Jon/nickname/Bones/surname/Jones", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodDelete, "/api/v1/base_fighter/id/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/v1/base_fighter/id/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearchAndTop(t *testing.T) {
	e := newTestServer(t)

	for _, f := range []string{
		`{"name":"A","nickname":"a","surname":"aa","country":"Brazil","wins":10}`,
		`{"name":"B","nickname":"b","surname":"bb","country":"Brazil","wins":20}`,
		`{"name":"C","nickname":"c","surname":"cc","country":"USA","wins":5}`,
	} {
		rec := doJSON(e, http.MethodPost, "/api/v1/base_fighter", f)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(e, http.MethodGet, "/api/v1/extended_fighter/search?country=Brazil", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]any
	decode(t, rec, &list)
	assert.Len(t, list, 2)

	rec = doJSON(e, http.MethodGet, "/api/v1/base_fighter/top/wins?limit=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "B", list[0]["name"])

	rec = doJSON(e, http.MethodGet, "/api/v1/base_fighter/top/wins", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBulkDeleteEmptyList(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodDelete, "/api/v1/base_fighter/multiple", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestDDLRoutesRequireToken(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost,
		"/api/v1/db/column?table_name=fighters&column_name=notes", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	register(t, e, "admin@example.com", "secret")
	token := login(t, e, "admin@example.com", "secret")

	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/db/column?table_name=fighters&column_name=notes", strings.NewReader(""))
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var out map[string]string
	decode(t, rec, &out)
	assert.Contains(t, out["message"], "notes")
}

func TestDDLRejectsBadIdentifier(t *testing.T) {
	e := newTestServer(t)
	register(t, e, "admin@example.com", "secret")
	token := login(t, e, "admin@example.com", "secret")

	target := "/api/v1/db/column?table_name=" + url.QueryEscape("fighters; DROP TABLE users") +
		"&column_name=notes"
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(""))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
