package config

import (
	"os"
	"strconv"
	"time"
)

// DatabaseConfig holds PostgreSQL settings for the ingested document catalogue.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO (or any S3-compatible endpoint).
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// SignedURLExpiry is clamped to [15m, 60m] by the document service.
	SignedURLExpiry time.Duration
}

// AWSConfig holds the shared credentials used to build the Athena and DynamoDB clients.
type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	// Endpoint overrides the service endpoint (localstack and similar). Empty uses AWS defaults.
	Endpoint string
}

// AthenaConfig holds query engine settings.
type AthenaConfig struct {
	Database       string
	OutputLocation string
	Workgroup      string
	Table          string
	// OrderBy selects the stable ranking used by the paginated listing: "document_id" or "issue_date".
	OrderBy        string
	MaxPageSize    int

	PollInitialInterval time.Duration
	PollMaxInterval     time.Duration
	PollMaxWait         time.Duration
}

// DynamoDBConfig holds key-value store settings.
type DynamoDBConfig struct {
	Table            string
	PageSize         int
	SearchMaxResults int
	// SearchPagesPerSecond paces exhaustive scans; zero disables pacing.
	SearchPagesPerSecond float64
}

// SnapshotConfig holds the location of the column snapshot files.
type SnapshotConfig struct {
	Dir string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost  string
	Port     string
	Timezone string
	LogLevel string
	Database DatabaseConfig
	MinIO    MinIOConfig
	AWS      AWSConfig
	Athena   AthenaConfig
	DynamoDB DynamoDBConfig
	Snapshot SnapshotConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:  getEnv("APP_HOST", "localhost:8080"),
		Port:     getEnv("PORT", "8080"),
		Timezone: getEnv("APP_TIMEZONE", "UTC"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:        getEnv("MINIO_ENDPOINT", ""),
			AccessKey:       getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey:       getEnv("MINIO_SECRET_KEY", ""),
			Bucket:          getEnv("MINIO_BUCKET", ""),
			UseSSL:          getEnvBool("MINIO_USE_SSL", false),
			SignedURLExpiry: getEnvDuration("MINIO_SIGNED_URL_EXPIRY", 15*time.Minute),
		},
		AWS: AWSConfig{
			Region:          getEnv("AWS_REGION", "us-east-1"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			SessionToken:    getEnv("AWS_SESSION_TOKEN", ""),
			Endpoint:        getEnv("AWS_ENDPOINT_URL", ""),
		},
		Athena: AthenaConfig{
			Database:            getEnv("AWS_ATHENA_DATABASE", ""),
			OutputLocation:      getEnv("AWS_ATHENA_OUTPUT", ""),
			Workgroup:           getEnv("AWS_ATHENA_WORKGROUP", ""),
			Table:               getEnv("ATHENA_TABLE", ""),
			OrderBy:             getEnv("ATHENA_ORDER_BY", "document_id"),
			MaxPageSize:         getEnvInt("ATHENA_MAX_PAGE_SIZE", 100),
			PollInitialInterval: getEnvDuration("ATHENA_POLL_INITIAL_INTERVAL", time.Second),
			PollMaxInterval:     getEnvDuration("ATHENA_POLL_MAX_INTERVAL", 5*time.Second),
			PollMaxWait:         getEnvDuration("ATHENA_POLL_MAX_WAIT", 5*time.Minute),
		},
		DynamoDB: DynamoDBConfig{
			Table:                getEnv("AWS_DYNAMODB_TABLE", ""),
			PageSize:             getEnvInt("DYNAMODB_PAGE_SIZE", 10),
			SearchMaxResults:     getEnvInt("DYNAMODB_SEARCH_MAX_RESULTS", 1000),
			SearchPagesPerSecond: getEnvFloat("DYNAMODB_SEARCH_PAGES_PER_SEC", 0),
		},
		Snapshot: SnapshotConfig{
			Dir: getEnv("SNAPSHOT_DIR", "storage/app"),
		},
	}
}

// Location resolves the configured timezone, falling back to UTC.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}

// getEnvDuration accepts Go duration strings ("1500ms", "5m").
func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return def
}
