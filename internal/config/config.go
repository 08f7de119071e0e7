package config

import (
	"fmt"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Log        LogConfig        `yaml:"log"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Identity   IdentityConfig   `yaml:"identity"`
	Continuity ContinuityConfig `yaml:"continuity"`
	Triage     TriageConfig     `yaml:"triage"`
	Worker     WorkerConfig     `yaml:"worker"`
}

// ServerConfig holds the health endpoint listener settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// RedisConfig holds task queue connection settings.
type RedisConfig struct {
	Addr      string `yaml:"addr"       env:"REDIS_ADDR"       env-default:"localhost:6379"`
	Password  string `yaml:"password"   env:"REDIS_PASSWORD"`
	DB        int    `yaml:"db"         env:"REDIS_DB"         env-default:"0"`
	KeyPrefix string `yaml:"key_prefix" env:"REDIS_KEY_PREFIX" env-default:"topics:"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// ClassifierConfig holds settings for the LLM classifier.
type ClassifierConfig struct {
	APIKey            string        `yaml:"api_key"             env:"ANTHROPIC_API_KEY"`
	BaseURL           string        `yaml:"base_url"            env:"CLASSIFIER_BASE_URL"`
	Model             string        `yaml:"model"               env:"CLASSIFIER_MODEL"               env-default:"claude-sonnet-4-5"`
	MaxTokens         int64         `yaml:"max_tokens"          env:"CLASSIFIER_MAX_TOKENS"          env-default:"4096"`
	Timeout           time.Duration `yaml:"timeout"             env:"CLASSIFIER_TIMEOUT"             env-default:"90s"`
	RequestsPerMinute int           `yaml:"requests_per_minute" env:"CLASSIFIER_REQUESTS_PER_MINUTE" env-default:"30"`
}

// IdentityConfig tunes the identity resolver.
type IdentityConfig struct {
	SimilarityThreshold float64 `yaml:"similarity_threshold" env:"IDENTITY_SIMILARITY_THRESHOLD" env-default:"0.7"`
	MaxResolveAttempts  int     `yaml:"max_resolve_attempts" env:"IDENTITY_MAX_RESOLVE_ATTEMPTS" env-default:"3"`
}

// ContinuityConfig holds the lifecycle rule windows.
type ContinuityConfig struct {
	ActivityWindowMonths      int    `yaml:"activity_window_months"      env:"CONTINUITY_ACTIVITY_MONTHS"      env-default:"6"`
	DisappearanceWindowMonths int    `yaml:"disappearance_window_months" env:"CONTINUITY_DISAPPEARANCE_MONTHS" env-default:"12"`
	CooldownMonths            int    `yaml:"cooldown_months"             env:"CONTINUITY_COOLDOWN_MONTHS"      env-default:"6"`
	Timezone                  string `yaml:"timezone"                    env:"CONTINUITY_TIMEZONE"             env-default:"UTC"`
	MeetingConcurrency        int    `yaml:"meeting_concurrency"         env:"CONTINUITY_MEETING_CONCURRENCY"  env-default:"4"`

	// Location is resolved from Timezone during validation.
	Location *time.Location `yaml:"-" env:"-"`
}

// TriageConfig holds governance triage settings. Thresholds are minimum
// classifier confidences per decision category.
type TriageConfig struct {
	BlockThreshold        float64       `yaml:"block_threshold"         env:"TRIAGE_BLOCK_THRESHOLD"         env-default:"0.7"`
	MergeThreshold        float64       `yaml:"merge_threshold"         env:"TRIAGE_MERGE_THRESHOLD"         env-default:"0.9"`
	ApproveThreshold      float64       `yaml:"approve_threshold"       env:"TRIAGE_APPROVE_THRESHOLD"       env-default:"0.8"`
	ApproveNovelThreshold float64       `yaml:"approve_novel_threshold" env:"TRIAGE_APPROVE_NOVEL_THRESHOLD" env-default:"0.9"`
	SimilarityThreshold   float64       `yaml:"similarity_threshold"    env:"TRIAGE_SIMILARITY_THRESHOLD"    env-default:"0.75"`
	MaxSimilar            int           `yaml:"max_similar"             env:"TRIAGE_MAX_SIMILAR"             env-default:"8"`
	AgendaItemSample      int           `yaml:"agenda_item_sample"      env:"TRIAGE_AGENDA_ITEM_SAMPLE"      env-default:"5"`
	MaxTopics             int           `yaml:"max_topics"              env:"TRIAGE_MAX_TOPICS"              env-default:"200"`
	AutoMaxTopics         int           `yaml:"auto_max_topics"         env:"TRIAGE_AUTO_MAX_TOPICS"         env-default:"50"`
	AutoDelay             time.Duration `yaml:"auto_delay"              env:"TRIAGE_AUTO_DELAY"              env-default:"3m"`
}

// WorkerConfig holds background task consumer settings.
type WorkerConfig struct {
	Concurrency     int           `yaml:"concurrency"      env:"WORKER_CONCURRENCY"      env-default:"4"`
	PollTimeout     time.Duration `yaml:"poll_timeout"     env:"WORKER_POLL_TIMEOUT"     env-default:"5s"`
	PromoteInterval time.Duration `yaml:"promote_interval" env:"WORKER_PROMOTE_INTERVAL" env-default:"1s"`
	MaxAttempts     int           `yaml:"max_attempts"     env:"WORKER_MAX_ATTEMPTS"     env-default:"5"`
	RetryBackoff    time.Duration `yaml:"retry_backoff"    env:"WORKER_RETRY_BACKOFF"    env-default:"30s"`
}
