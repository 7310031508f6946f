package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"virtual-conductor/internal/transit"
	"virtual-conductor/internal/window"
)

// Source names where the route graph is read from.
type Source string

const (
	SourceFile     Source = "file"
	SourceSQLite   Source = "sqlite"
	SourcePostgres Source = "postgres"
)

type Config struct {
	Source      Source
	RouteFile   string
	SQLitePath  string
	DatabaseURL string
	LineID      int
	TrainTypeID int // 0 runs the line's local service

	Direction     transit.Direction
	Theme         transit.Theme
	Languages     []transit.Language
	Head          window.HeadPolicy
	Holiday       bool
	HolidayAuto   bool // weekend days in Location count as holidays
	CooldownTicks int
	LoopTableFile string

	TickInterval    time.Duration
	SpeedMultiplier float64
	TrackGeoJSON    string

	NATSURL           string // empty disables publishing
	NATSSubjectPrefix string
	LogNATSSubjects   bool
	MetricsAddr       string
	Location          *time.Location
}

func Load() (*Config, error) {
	// Load .env into environment (ignore if missing)
	_ = godotenv.Load()

	cfg := &Config{}

	// Time zone, needed before HOLIDAY=auto is resolved
	tzName := getenvDefault("TZ", "")
	if tzName == "" {
		cfg.Location = time.Local
	} else {
		loc, err := time.LoadLocation(tzName)
		if err != nil {
			return nil, fmt.Errorf("invalid TZ: %v", err)
		}
		cfg.Location = loc
	}

	// Route source: a JSON file wins, then SQLite, then Postgres
	cfg.RouteFile = os.Getenv("ROUTE_FILE")
	cfg.SQLitePath = os.Getenv("SQLITE_PATH")
	switch {
	case cfg.RouteFile != "":
		cfg.Source = SourceFile
	case cfg.SQLitePath != "":
		cfg.Source = SourceSQLite
	default:
		dsn, err := postgresDSN()
		if err != nil {
			return nil, err
		}
		cfg.Source = SourcePostgres
		cfg.DatabaseURL = dsn
	}

	if v := os.Getenv("LINE_ID"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid LINE_ID: %q", v)
		}
		cfg.LineID = id
	} else if cfg.Source != SourceFile {
		return nil, errors.New("LINE_ID must be set when loading from a database")
	}
	if v := os.Getenv("TRAIN_TYPE_ID"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil || id < 0 {
			return nil, fmt.Errorf("invalid TRAIN_TYPE_ID: %q", v)
		}
		cfg.TrainTypeID = id
	}

	cfg.Direction = transit.ParseDirection(os.Getenv("DIRECTION"))
	cfg.Theme = transit.ParseTheme(os.Getenv("THEME"))
	cfg.Languages = transit.ParseLanguages(getenvDefault("LANGUAGES", "JA,EN"))
	cfg.LoopTableFile = os.Getenv("LOOP_TABLE_FILE")

	switch strings.ToLower(strings.TrimSpace(getenvDefault("WINDOW_HEAD", "junction"))) {
	case "keep":
		cfg.Head = window.KeepCurrent
	case "drop":
		cfg.Head = window.DropCurrentWhenDeparted
	case "junction":
		cfg.Head = window.DropJunctionWhenDeparted
	default:
		return nil, fmt.Errorf("invalid WINDOW_HEAD: %q (keep|drop|junction)", os.Getenv("WINDOW_HEAD"))
	}

	// HOLIDAY=auto treats Saturday and Sunday in TZ as holidays, checked
	// against each fix's time
	if v := strings.ToLower(strings.TrimSpace(os.Getenv("HOLIDAY"))); v == "auto" {
		cfg.HolidayAuto = true
	} else {
		cfg.Holiday = parseBool(v)
	}

	if v := os.Getenv("SPEAKER_COOLDOWN_TICKS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid SPEAKER_COOLDOWN_TICKS: %q", v)
		}
		cfg.CooldownTicks = n
	} else {
		cfg.CooldownTicks = 3
	}

	// Wall clock length of one simulated second
	if v := os.Getenv("TICK_INTERVAL_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms <= 0 {
			return nil, fmt.Errorf("invalid TICK_INTERVAL_MS: %q", v)
		}
		cfg.TickInterval = time.Duration(ms) * time.Millisecond
	} else {
		cfg.TickInterval = time.Second
	}

	// Speed multiplier
	if v := os.Getenv("SPEED_MULTIPLIER"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return nil, fmt.Errorf("invalid SPEED_MULTIPLIER: %q", v)
		}
		cfg.SpeedMultiplier = f
	} else {
		cfg.SpeedMultiplier = 1.0
	}

	cfg.TrackGeoJSON = os.Getenv("TRACK_GEOJSON")

	cfg.NATSURL = os.Getenv("NATS_URL")
	cfg.NATSSubjectPrefix = getenvDefault("NATS_SUBJECT_PREFIX", "conductor")

	// Debug logging for NATS publish subjects
	cfg.LogNATSSubjects = parseBool(os.Getenv("LOG_NATS_SUBJECTS"))

	// Metrics listen address (e.g., ":9102"). Empty disables the metrics server.
	cfg.MetricsAddr = os.Getenv("METRICS_ADDR")

	return cfg, nil
}

// IsHoliday reports whether holiday stop patterns apply at t.
func (c *Config) IsHoliday(t time.Time) bool {
	if !c.HolidayAuto {
		return c.Holiday
	}
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	wd := t.In(loc).Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// postgresDSN prefers DATABASE_URL / PG_DSN, else builds one from PG* vars.
func postgresDSN() (string, error) {
	dsn := firstNonEmpty(
		os.Getenv("DATABASE_URL"),
		os.Getenv("PG_DSN"),
	)
	if dsn != "" {
		return dsn, nil
	}
	host := getenvDefault("PGHOST", "127.0.0.1")
	port := getenvDefault("PGPORT", "5432")
	user := getenvDefault("PGUSER", "postgres")
	pass := os.Getenv("PGPASSWORD")
	db := os.Getenv("PGDATABASE")
	if db == "" {
		return "", errors.New("one of ROUTE_FILE, SQLITE_PATH, DATABASE_URL or PGDATABASE must be set")
	}
	sslmode := getenvDefault("PGSSLMODE", "disable")
	if pass != "" {
		return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", urlEscape(user), urlEscape(pass), host, port, db, sslmode), nil
	}
	return fmt.Sprintf("postgres://%s@%s:%s/%s?sslmode=%s", urlEscape(user), host, port, db, sslmode), nil
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	default:
		return false
	}
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func urlEscape(s string) string {
	// Minimal escape for DSN user/pass with special chars
	r := strings.NewReplacer("@", "%40", ":", "%3A", "/", "%2F", "?", "%3F", "#", "%23")
	return r.Replace(s)
}
