package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/shushovitJR/Yeti-Repair-backend/internal/models"
)

type DBConfig struct {
	URL      string // full DSN; wins over the discrete fields
	Host     string
	Instance string // parsed from HOST\INSTANCE; Postgres has no equivalent, kept for logging
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
}

type Config struct {
	Env            string
	Port           string
	DB             DBConfig
	JWTSecret      string
	TokenTTL       time.Duration
	Origins        []string // CORS
	RateLimit      int      // requests per minute per IP
	AllowPlaintext bool     // accept legacy plaintext passwords at login
	Reports        models.StatusSets
}

func defaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("API_PORT", "5000")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 200)
	v.SetDefault("AUTH_ALLOW_PLAINTEXT", true)
	v.SetDefault("REPORT_REPAIR_DONE", "Repaired,Received")
	v.SetDefault("REPORT_REQUEST_DONE", "Received")
	v.SetDefault("REPORT_CANCELLED", "Cancelled")
}

// Load reads the process environment, with an optional dotenv file at
// envFile underneath it. A missing file is not an error.
func Load(envFile string) (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read %s: %w", envFile, err)
		}
	}
	return LoadFrom(v)
}

// LoadFrom builds a Config from an already populated viper instance.
func LoadFrom(v *viper.Viper) (Config, error) {
	defaults(v)

	cfg := Config{
		Env:            v.GetString("APP_ENV"),
		Port:           v.GetString("API_PORT"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		TokenTTL:       v.GetDuration("TOKEN_TTL"),
		Origins:        splitList(v.GetString("CORS_ORIGINS")),
		RateLimit:      v.GetInt("RATE_LIMIT_PER_MINUTE"),
		AllowPlaintext: v.GetBool("AUTH_ALLOW_PLAINTEXT"),
		Reports: models.StatusSets{
			RepairDone:  splitList(v.GetString("REPORT_REPAIR_DONE")),
			RequestDone: splitList(v.GetString("REPORT_REQUEST_DONE")),
			Cancelled:   splitList(v.GetString("REPORT_CANCELLED")),
		},
	}

	db, err := loadDB(v)
	if err != nil {
		return Config{}, err
	}
	cfg.DB = db

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("missing required environment variable: JWT_SECRET")
	}
	if cfg.TokenTTL <= 0 {
		return Config{}, fmt.Errorf("TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}
	return cfg, nil
}

func loadDB(v *viper.Viper) (DBConfig, error) {
	db := DBConfig{
		URL:      v.GetString("DB_DSN"),
		User:     v.GetString("DB_USER"),
		Password: v.GetString("DB_PASSWORD"),
		Name:     v.GetString("DB_NAME"),
		SSLMode:  v.GetString("DB_SSLMODE"),
		MaxConns: v.GetInt32("DB_MAX_CONNS"),
	}
	if db.URL != "" {
		return db, nil
	}

	var missing []string
	for _, k := range []string{"DB_USER", "DB_PASSWORD", "DB_SERVER", "DB_NAME"} {
		if v.GetString(k) == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return db, fmt.Errorf("missing required database environment variables: %s", strings.Join(missing, ", "))
	}

	if raw := strings.TrimSpace(v.GetString("DB_PORT")); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil || port <= 0 {
			return db, errors.New("DB_PORT must be a valid number")
		}
		db.Port = port
	}
	db.Host, db.Instance = ParseServer(v.GetString("DB_SERVER"), db.Port)
	return db, nil
}

// ParseServer splits HOST\INSTANCE. An explicit port makes the instance
// irrelevant, so it is dropped.
func ParseServer(raw string, port int) (host, instance string) {
	host, instance, found := strings.Cut(strings.TrimSpace(raw), `\`)
	if !found || port > 0 {
		return host, ""
	}
	return host, instance
}

// DSN renders a pgx keyword/value connection string. A named instance
// has no Postgres counterpart; without a port the server default is used.
func (d DBConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	parts := []string{"host=" + quote(d.Host)}
	if d.Port > 0 {
		parts = append(parts, "port="+strconv.Itoa(d.Port))
	}
	parts = append(parts,
		"user="+quote(d.User),
		"password="+quote(d.Password),
		"dbname="+quote(d.Name),
	)
	if d.SSLMode != "" {
		parts = append(parts, "sslmode="+d.SSLMode)
	}
	return strings.Join(parts, " ")
}

func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
