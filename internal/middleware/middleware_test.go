package middleware

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/contacts/internal/config"
	"github.com/templui/contacts/internal/ctxkeys"
	"github.com/templui/contacts/internal/model"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestCSRFProtection_IssuesTokenOnGet(t *testing.T) {
	var seen string
	handler := CSRFProtection(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ctxkeys.CSRFToken(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CSRFCookieName, cookies[0].Name)
	assert.Equal(t, cookies[0].Value, seen)
	assert.Len(t, seen, 43)
}

func TestCSRFProtection_Post(t *testing.T) {
	token := GenerateCSRFToken()
	handler := CSRFProtection(okHandler)

	tests := []struct {
		name   string
		cookie string
		field  string
		header string
		want   int
	}{
		{"matching field", token, token, "", http.StatusOK},
		{"matching header", token, "", token, http.StatusOK},
		{"missing field", token, "", "", http.StatusForbidden},
		{"wrong field", token, GenerateCSRFToken(), "", http.StatusForbidden},
		{"no cookie", "", token, "", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := url.Values{}
			if tt.field != "" {
				form.Set(CSRFFormField, tt.field)
			}
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: tt.cookie})
			}
			if tt.header != "" {
				req.Header.Set(CSRFHeader, tt.header)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestCSRFProtection_BodyTooLarge(t *testing.T) {
	token := GenerateCSRFToken()
	handler := LimitBody(256)(CSRFProtection(okHandler))

	form := url.Values{
		CSRFFormField: {token},
		"description": {strings.Repeat("x", 1024)},
	}
	multipartBody, contentType := multipartForm(t, form)

	tests := []struct {
		name        string
		body        string
		contentType string
	}{
		{"urlencoded", form.Encode(), "application/x-www-form-urlencoded"},
		{"multipart", multipartBody, contentType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: token})

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		})
	}
}

func TestCSRFProtection_MultipartWithinLimit(t *testing.T) {
	token := GenerateCSRFToken()
	handler := LimitBody(1<<20)(CSRFProtection(okHandler))

	body, contentType := multipartForm(t, url.Values{CSRFFormField: {token}, "first_name": {"Jane"}})
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: token})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func multipartForm(t *testing.T, form url.Values) (string, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for name, values := range form {
		for _, v := range values {
			require.NoError(t, mw.WriteField(name, v))
		}
	}
	require.NoError(t, mw.Close())
	return buf.String(), mw.FormDataContentType()
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	now := time.Now()
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("5.6.7.8"), "limits are per IP")

	now = now.Add(time.Minute + time.Second)
	assert.True(t, rl.Allow("1.2.3.4"), "window slides")

	now = now.Add(2 * time.Minute)
	rl.cleanup()
	rl.mu.Lock()
	assert.Empty(t, rl.requests)
	rl.mu.Unlock()
}

func TestRateLimitAuth(t *testing.T) {
	limited := RateLimitAuth(1, time.Minute)(okHandler)

	req := httptest.NewRequest(http.MethodPost, "/user/login/", nil)
	req.RemoteAddr = "10.0.0.1:1234"

	rec := httptest.NewRecorder()
	limited(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	limited(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	assert.Equal(t, "10.0.0.1", getClientIP(req))

	req.Header.Set("X-Real-IP", "10.0.0.2")
	assert.Equal(t, "10.0.0.2", getClientIP(req))

	req.Header.Set("X-Forwarded-For", "10.0.0.3, 10.0.0.4")
	assert.Equal(t, "10.0.0.3", getClientIP(req))
}

func TestRequireAuth(t *testing.T) {
	handler := RequireAuth(okHandler)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/contact/create/", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, LoginPath, rec.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/contact/create/", nil)
	req = req.WithContext(ctxkeys.WithUser(req.Context(), &model.User{ID: 1}))
	rec = httptest.NewRecorder()
	handler(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireGuest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, LoginPath, nil)
	req = req.WithContext(ctxkeys.WithUser(req.Context(), &model.User{ID: 1}))

	rec := httptest.NewRecorder()
	RequireGuest(okHandler)(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, HomePath, rec.Header().Get("Location"))
}

func TestSecurityHeaders(t *testing.T) {
	cfg := &config.Config{
		AppEnv:        "production",
		StorageDriver: config.StorageDriverS3,
		S3Endpoint:    "https://minio.example.com:9000/",
	}

	var nonce string
	handler := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nonce = templ.GetNonce(r.Context())
	}), Config(cfg), NonceMiddleware, SecurityHeaders)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, nonce)
	csp := rec.Header().Get("Content-Security-Policy")
	assert.Contains(t, csp, "script-src 'self' 'nonce-"+nonce+"'")
	assert.Contains(t, csp, "img-src 'self' data: https://minio.example.com:9000")
	assert.Contains(t, csp, "frame-ancestors 'none'")
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	Chain(okHandler, mark("a"), mark("b"), mark("c")).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestRequestLoggingCapturesStatus(t *testing.T) {
	handler := RequestLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
