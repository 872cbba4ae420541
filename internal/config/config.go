package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Service holds the API process settings
type Service struct {
	Environment string `envconfig:"SERVICE_ENVIRONMENT" required:"true"`
	APIPort     string `envconfig:"SERVICE_API_PORT" default:"8080"`
	Host        string `envconfig:"SERVICE_HOST" default:"localhost:8080"`
}

// ClickHouse holds the analytics database connection settings
type ClickHouse struct {
	Host            string `envconfig:"CLICKHOUSE_HOST" required:"true"`
	Port            string `envconfig:"CLICKHOUSE_PORT" required:"true"`
	Database        string `envconfig:"CLICKHOUSE_DB" required:"true"`
	User            string `envconfig:"CLICKHOUSE_USER" default:""`
	Password        string `envconfig:"CLICKHOUSE_PASSWORD" default:""`
	UseTLS          bool   `envconfig:"CLICKHOUSE_USE_TLS" default:"false"`
	MaxOpenConns    int    `envconfig:"CLICKHOUSE_MAX_OPEN_CONNS" default:"5"`
	MaxIdleConns    int    `envconfig:"CLICKHOUSE_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime int    `envconfig:"CLICKHOUSE_CONN_MAX_LIFETIME_SEC" default:"3600"`
}

// SQS holds the recompute queue settings. Endpoint is only set for local
// development against ElasticMQ.
type SQS struct {
	Endpoint string `envconfig:"SQS_ENDPOINT"`
	QueueURL string `envconfig:"SQS_QUEUE_URL" required:"true"`
	Region   string `envconfig:"SQS_REGION" required:"true"`
}

// Worker holds the recompute worker settings
type Worker struct {
	HealthCheckPort string `envconfig:"WORKER_HEALTH_CHECK_PORT" default:"8081"`
	ReceiveWaitSec  int32  `envconfig:"WORKER_RECEIVE_WAIT_SEC" default:"20"`
}

// Config is the full service configuration, loaded from the environment
type Config struct {
	Service    Service
	ClickHouse ClickHouse
	SQS        SQS
	Worker     Worker
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
