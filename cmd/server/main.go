package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	web "absensi/internal/adapters/http"
	"absensi/internal/adapters/storage"
	accountStore "absensi/internal/adapters/storage/account"
	attendanceStore "absensi/internal/adapters/storage/attendance"
	participantStore "absensi/internal/adapters/storage/participant"
	periodStore "absensi/internal/adapters/storage/period"
	"absensi/internal/application/orchestrators"
	"absensi/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if cfg.IsProduction() {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	} else {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	// WAL mode, foreign keys and a busy timeout for concurrent handlers
	dsn := cfg.DBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	acctStore := accountStore.NewSQLiteStore(db)
	partStore := participantStore.NewSQLiteStore(db)
	stores := &web.Stores{
		AccountStore:     acctStore,
		ParticipantStore: partStore,
		AttendanceStore:  attendanceStore.NewSQLiteStore(db),
		PeriodStore:      periodStore.NewSQLiteStore(db),
	}

	// Seed the fixed account table (idempotent)
	seedDeps := orchestrators.SeedDeps{
		AccountStore:     acctStore,
		ParticipantStore: partStore,
		GenerateID:       func() string { return uuid.New().String() },
	}
	if err := orchestrators.ExecuteSeedAccounts(context.Background(), seedDeps, cfg.SeedPassword); err != nil {
		log.Fatalf("failed to seed accounts: %v", err)
	}

	// Seed sample participants for development only
	if !cfg.IsProduction() {
		if err := orchestrators.ExecuteSeedParticipants(context.Background(), seedDeps); err != nil {
			log.Fatalf("failed to seed participants: %v", err)
		}
	}

	mux := web.NewMux("static", stores, web.Config{
		CSRFKey:    cfg.CSRFKey,
		Production: cfg.IsProduction(),
		Year:       cfg.Year,
	})

	log.Printf("Absensi %s starting on %s (env=%s, year=%d)", version, cfg.Addr, cfg.Env, cfg.Year)
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
