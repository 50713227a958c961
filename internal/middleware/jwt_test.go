package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
    t.Helper()
    tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := tok.SignedString([]byte(secret))
    require.NoError(t, err)
    return signed
}

func runProtected(token string, mws ...echo.MiddlewareFunc) *httptest.ResponseRecorder {
    e := echo.New()
    handler := func(c echo.Context) error {
        return c.JSON(http.StatusOK, echo.Map{"role": c.Get("role")})
    }
    for i := len(mws) - 1; i >= 0; i-- {
        handler = mws[i](handler)
    }
    req := httptest.NewRequest(http.MethodGet, "/", nil)
    if token != "" {
        req.Header.Set("Authorization", "Bearer "+token)
    }
    rec := httptest.NewRecorder()
    _ = handler(e.NewContext(req, rec))
    return rec
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
    token := signToken(t, testSecret, jwt.MapClaims{
        "sub":  float64(42),
        "role": "CUSTOMER",
        "exp":  time.Now().Add(time.Minute).Unix(),
    })
    rec := runProtected(token, JWTAuth(testSecret))
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Contains(t, rec.Body.String(), "CUSTOMER")
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
    rec := runProtected("", JWTAuth(testSecret))
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsWrongSecret(t *testing.T) {
    token := signToken(t, "other-secret", jwt.MapClaims{
        "sub": float64(1),
        "exp": time.Now().Add(time.Minute).Unix(),
    })
    rec := runProtected(token, JWTAuth(testSecret))
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsExpiredToken(t *testing.T) {
    token := signToken(t, testSecret, jwt.MapClaims{
        "sub": float64(1),
        "exp": time.Now().Add(-time.Minute).Unix(),
    })
    rec := runProtected(token, JWTAuth(testSecret))
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
    allowed := signToken(t, testSecret, jwt.MapClaims{
        "sub":  float64(1),
        "role": "ADMIN",
        "exp":  time.Now().Add(time.Minute).Unix(),
    })
    denied := signToken(t, testSecret, jwt.MapClaims{
        "sub":  float64(2),
        "role": "CUSTOMER",
        "exp":  time.Now().Add(time.Minute).Unix(),
    })

    rec := runProtected(allowed, JWTAuth(testSecret), RequireRole("ADMIN"))
    assert.Equal(t, http.StatusOK, rec.Code)

    rec = runProtected(denied, JWTAuth(testSecret), RequireRole("ADMIN"))
    assert.Equal(t, http.StatusForbidden, rec.Code)
}
