package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/templui/contacts/internal/config"
	"github.com/templui/contacts/internal/ctxkeys"
)

// SecurityHeaders sets CSP and the usual hardening headers. It needs Config and
// NonceMiddleware to have run first.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cfg := ctxkeys.Config(r.Context())
		nonce := GetNonce(r.Context())

		h := w.Header()
		h.Set("Content-Security-Policy", contentSecurityPolicy(cfg, nonce))
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
		h.Set("Cross-Origin-Opener-Policy", "same-origin")

		if cfg != nil && cfg.IsProduction() {
			h.Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}

func contentSecurityPolicy(cfg *config.Config, nonce string) string {
	scriptSrc := "'self'"
	styleSrc := "'self'"
	if nonce != "" {
		scriptSrc += " 'nonce-" + nonce + "'"
		styleSrc += " 'nonce-" + nonce + "'"
	}

	imgSrc := "'self' data:"
	if cfg != nil && cfg.StorageDriver == config.StorageDriverS3 {
		imgSrc += " " + pictureOrigin(cfg)
	}

	directives := []string{
		"default-src 'self'",
		"script-src " + scriptSrc,
		"style-src " + styleSrc,
		"img-src " + imgSrc,
		"font-src 'self'",
		"connect-src 'self'",
		"form-action 'self'",
		"frame-ancestors 'none'",
		"base-uri 'self'",
		"object-src 'none'",
	}
	return strings.Join(directives, "; ")
}

// pictureOrigin is where presigned picture URLs point.
func pictureOrigin(cfg *config.Config) string {
	if cfg.S3Endpoint == "" {
		return "https://" + cfg.S3Bucket + ".s3." + cfg.S3Region + ".amazonaws.com"
	}
	u, err := url.Parse(cfg.S3Endpoint)
	if err != nil || u.Host == "" {
		return cfg.S3Endpoint
	}
	return u.Scheme + "://" + u.Host
}
