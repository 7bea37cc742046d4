package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

type (
	APP struct {
		Name string
		Host string
		Port string
		Env  string
	}
	DB struct {
		User     string
		Password string
		Name     string
		Host     string
		Port     string
	}
	Blob struct {
		Dir string
	}
	MQ struct {
		User         string
		Password     string
		Vhost        string
		Host         string
		AmqpPort     string
		Exchange     string
		ExchangeType string
		QueueName    string
	}
	// Share carries the lifecycle knobs so tests can run with short
	// expiries instead of the production 24h window.
	Share struct {
		CodeLength   int
		TokenLength  int
		MaxFileBytes int64
		TTL          time.Duration
		ReapInterval time.Duration
		AllowedMimes []string
		MimePrefixOK string
	}

	Config struct {
		App   APP
		DB    DB
		Blob  Blob
		MQ    MQ
		Share Share
	}
)

const (
	defaultCodeLength   = 8
	defaultTokenLength  = 16
	defaultMaxFileBytes = 10 << 20 // 10 MiB
	defaultTTL          = 24 * time.Hour
	defaultReapInterval = 5 * time.Minute
)

// DefaultAllowedMimes is the upload allow-list; anything with a "text/"
// prefix is additionally accepted.
func DefaultAllowedMimes() []string {
	return []string{
		"text/plain",
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"image/jpeg",
		"image/png",
		"image/gif",
		"image/webp",
		"application/zip",
		"application/x-zip-compressed",
	}
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func Load() Config {
	app := APP{
		Name: getEnv("SERVICE_NAME", "quickdropapi"),
		Host: getEnv("SERVICE_HOST", ""),
		Port: getEnv("SERVICE_PORT", "8080"),
		Env:  getEnv("SERVICE_ENV", ""),
	}
	db := DB{
		User:     getEnv("POSTGRES_USER", ""),
		Password: getEnv("POSTGRES_PASSWORD", ""),
		Name:     getEnv("POSTGRES_DB", ""),
		Host:     getEnv("POSTGRES_HOST", ""),
		Port:     getEnv("POSTGRES_PORT", ""),
	}
	blob := Blob{
		Dir: getEnv("BLOB_DIR", "uploads"),
	}
	mq := MQ{
		User:         getEnv("RABBITMQ_USER", ""),
		Password:     getEnv("RABBITMQ_PASSWORD", ""),
		Vhost:        getEnv("RABBITMQ_VHOST", ""),
		Host:         getEnv("RABBITMQ_HOST", ""),
		AmqpPort:     getEnv("RABBITMQ_AMQP_PORT", ""),
		Exchange:     getEnv("RABBITMQ_EXCHANGE", ""),
		ExchangeType: getEnv("RABBITMQ_EXCHANGE_TYPE", ""),
		QueueName:    getEnv("RABBITMQ_QUEUE_NAME", ""),
	}
	share := Share{
		CodeLength:   getEnvInt("SHARE_CODE_LENGTH", defaultCodeLength),
		TokenLength:  getEnvInt("SHARE_TOKEN_LENGTH", defaultTokenLength),
		MaxFileBytes: getEnvInt64("SHARE_MAX_FILE_BYTES", defaultMaxFileBytes),
		TTL:          getEnvDuration("SHARE_TTL", defaultTTL),
		ReapInterval: getEnvDuration("SHARE_REAP_INTERVAL", defaultReapInterval),
		AllowedMimes: DefaultAllowedMimes(),
		MimePrefixOK: "text/",
	}

	return Config{
		App:   app,
		DB:    db,
		Blob:  blob,
		MQ:    mq,
		Share: share,
	}
}

func (c Config) DBDSN() (string, error) {
	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config")
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.Name,
	), nil
}

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}
