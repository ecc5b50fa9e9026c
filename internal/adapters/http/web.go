// Package web wires HTTP routes, middleware and handlers for the
// attendance service.
package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"time"

	"absensi/internal/adapters/http/middleware"
	accountStore "absensi/internal/adapters/storage/account"
	attendanceStore "absensi/internal/adapters/storage/attendance"
	participantStore "absensi/internal/adapters/storage/participant"
	periodStore "absensi/internal/adapters/storage/period"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore     accountStore.Store
	ParticipantStore participantStore.Store
	AttendanceStore  attendanceStore.Store
	PeriodStore      periodStore.Store
}

// Config carries the HTTP layer configuration.
type Config struct {
	CSRFKey    string // hex-encoded 32-byte secret; empty generates a random key
	Production bool
	Year       int // reporting year for dashboards and exports
}

// loadCSRFKey decodes the hex CSRF secret (32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey(cfg Config) []byte {
	if cfg.CSRFKey != "" {
		key, err := hex.DecodeString(cfg.CSRFKey)
		if err != nil || len(key) != 32 {
			log.Fatal("ABSENSI_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if cfg.Production {
		log.Fatal("ABSENSI_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set ABSENSI_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// Reporting year (set by NewMux)
var reportingYear int

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores, cfg Config) http.Handler {
	stores = s
	sessions = middleware.NewSessionStore()
	reportingYear = cfg.Year
	middleware.SecureCookies = cfg.Production

	mux := http.NewServeMux()
	if staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	}
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey(cfg)

	// Rate limiter: configurable requests per second per IP
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Timing -> RateLimit -> Auth -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.Timing(),
	)
}
