package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ServerPort         string
	BaseURL            string
	CORSAllowedOrigins []string
	Generation         GenerationConfig
	Audit              AuditConfig
	Users              UsersConfig
	Postgres           PostgresConfig
	Mongo              MongoConfig
	Logging            LoggingConfig
}

type GenerationConfig struct {
	Provider    string
	Timeout     time.Duration
	Temperature float64
	MaxTokens   int
	OpenAI      OpenAIConfig
	Gemini      GeminiConfig
}

type OpenAIConfig struct {
	BaseURL  string
	APIKey   string
	Model    string
	JSONMode bool
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

const (
	AuditSinkNone     = "none"
	AuditSinkPostgres = "postgres"
	AuditSinkMongo    = "mongo"
)

type AuditConfig struct {
	Sink string
}

// UsersConfig optionally seeds one account at startup.
type UsersConfig struct {
	SeedUsername string
	SeedPassword string
}

type PostgresConfig struct {
	DSN               string
	Host              string
	Port              int
	User              string
	Password          string
	Database          string
	MaxConns          int32
	MinConns          int32
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration
	ConnectTimeout    time.Duration
}

type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

type LoggingConfig struct {
	Level        string
	Encoding     string
	Development  bool
	EnableCaller bool
	ServiceName  string
}

func LoadConfig() (*Config, error) {
	port := envOrDefault("PORT", "8080")

	pgPort, _ := strconv.Atoi(envOrDefault("POSTGRES_PORT", "5432"))
	maxConns := parseInt32(envOrDefault("POSTGRES_MAX_CONNS", "4"), 4)
	minConns := parseInt32(envOrDefault("POSTGRES_MIN_CONNS", "0"), 0)

	logging := LoggingConfig{
		Level:        strings.ToLower(envOrDefault("LOG_LEVEL", "info")),
		Encoding:     strings.ToLower(envOrDefault("LOG_ENCODING", "console")),
		Development:  parseBool(envOrDefault("LOG_DEVELOPMENT", "false"), false),
		EnableCaller: parseBool(envOrDefault("LOG_CALLER", "false"), false),
		ServiceName:  envOrDefault("SERVICE_NAME", "persona-studio"),
	}

	cfg := &Config{
		ServerPort:         port,
		BaseURL:            strings.TrimRight(envOrDefault("BASE_URL", "http://localhost:"+port), "/"),
		CORSAllowedOrigins: parseList(envOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")),
		Generation: GenerationConfig{
			Provider:    strings.ToLower(envOrDefault("GENERATOR_PROVIDER", "openai")),
			Timeout:     parseDuration(envOrDefault("GENERATION_TIMEOUT", "30s"), 30*time.Second),
			Temperature: parseFloat(envOrDefault("GENERATION_TEMPERATURE", "0.7"), 0.7),
			MaxTokens:   parseInt(envOrDefault("GENERATION_MAX_TOKENS", "2000"), 2000),
			OpenAI: OpenAIConfig{
				BaseURL:  envOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
				APIKey:   os.Getenv("OPENAI_API_KEY"),
				Model:    envOrDefault("OPENAI_MODEL", "gpt-4o"),
				JSONMode: parseBool(envOrDefault("OPENAI_JSON_MODE", "true"), true),
			},
			Gemini: GeminiConfig{
				APIKey: os.Getenv("GEMINI_API_KEY"),
				Model:  envOrDefault("GEMINI_MODEL", "gemini-2.5-flash"),
			},
		},
		Audit: AuditConfig{
			Sink: strings.ToLower(envOrDefault("AUDIT_SINK", AuditSinkNone)),
		},
		Users: UsersConfig{
			SeedUsername: envOrDefault("SEED_USERNAME", ""),
			SeedPassword: os.Getenv("SEED_PASSWORD"),
		},
		Postgres: PostgresConfig{
			DSN:               os.Getenv("POSTGRES_DSN"),
			Host:              envOrDefault("POSTGRES_HOST", "localhost"),
			Port:              pgPort,
			User:              envOrDefault("POSTGRES_USER", "postgres"),
			Password:          envOrDefault("POSTGRES_PASSWORD", "postgres"),
			Database:          envOrDefault("POSTGRES_DB", "postgres"),
			MaxConns:          maxConns,
			MinConns:          minConns,
			MaxConnLifetime:   parseDuration(envOrDefault("POSTGRES_MAX_CONN_LIFETIME", "1h"), time.Hour),
			MaxConnIdleTime:   parseDuration(envOrDefault("POSTGRES_MAX_CONN_IDLE", "30m"), 30*time.Minute),
			HealthCheckPeriod: parseDuration(envOrDefault("POSTGRES_HEALTH_CHECK_PERIOD", "1m"), time.Minute),
			ConnectTimeout:    parseDuration(envOrDefault("POSTGRES_CONNECT_TIMEOUT", "5s"), 5*time.Second),
		},
		Mongo: MongoConfig{
			URI:            envOrDefault("MONGO_URI", "mongodb://localhost:27017"),
			Database:       envOrDefault("MONGO_DATABASE", "persona_studio"),
			ConnectTimeout: parseDuration(envOrDefault("MONGO_CONNECT_TIMEOUT", "5s"), 5*time.Second),
		},
		Logging: logging,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	missing := make([]string, 0, 2)
	invalid := make([]string, 0, 2)

	switch c.Generation.Provider {
	case "openai":
		if strings.TrimSpace(c.Generation.OpenAI.APIKey) == "" {
			missing = append(missing, "OPENAI_API_KEY")
		}
	case "gemini":
		if strings.TrimSpace(c.Generation.Gemini.APIKey) == "" {
			missing = append(missing, "GEMINI_API_KEY")
		}
	default:
		invalid = append(invalid, fmt.Sprintf("GENERATOR_PROVIDER=%q (want openai or gemini)", c.Generation.Provider))
	}

	switch c.Audit.Sink {
	case AuditSinkNone, AuditSinkPostgres, AuditSinkMongo:
	default:
		invalid = append(invalid, fmt.Sprintf("AUDIT_SINK=%q (want none, postgres or mongo)", c.Audit.Sink))
	}

	if c.Users.SeedUsername != "" && c.Users.SeedPassword == "" {
		missing = append(missing, "SEED_PASSWORD")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}

	return nil
}

func (c PostgresConfig) BuildDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s", c.User, c.Password, c.Host, c.Port, c.Database)
}

func envOrDefault(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parseInt32(value string, fallback int32) int32 {
	i, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return int32(i)
}

func parseInt(value string, fallback int) int {
	i, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || i <= 0 {
		return fallback
	}
	return i
}

func parseFloat(value string, fallback float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || f < 0 {
		return fallback
	}
	return f
}

func parseBool(value string, fallback bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return v
}

func parseList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
