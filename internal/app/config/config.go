package config

import (
	"time"

	"claimsync-service/internal/pkg/constvars"
	"claimsync-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		Postgres: Postgres{
			Host:         utils.GetEnvString("POSTGRES_HOST", "localhost"),
			Port:         utils.GetEnvString("POSTGRES_PORT", "5432"),
			Username:     utils.GetEnvString("POSTGRES_USERNAME", "postgres"),
			Password:     utils.GetEnvString("POSTGRES_PASSWORD", "postgres"),
			DBName:       utils.GetEnvString("POSTGRES_DB_NAME", "claimsync"),
			SSLMode:      utils.GetEnvString("POSTGRES_SSL_MODE", "disable"),
			MaxOpenConns: utils.GetEnvInt("POSTGRES_MAX_OPEN_CONNS", 10),
			MaxIdleConns: utils.GetEnvInt("POSTGRES_MAX_IDLE_CONNS", 5),
		},
		Redis: Redis{
			Host:        utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:        utils.GetEnvString("REDIS_PORT", "6379"),
			Password:    utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:          utils.GetEnvInt("REDIS_DB", 0),
			DialTimeout: utils.GetEnvDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:      utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:      utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username:  utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password:  utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
			VHost:     utils.GetEnvString("RABBITMQ_VHOST", "/"),
			Heartbeat: utils.GetEnvDuration("RABBITMQ_HEARTBEAT", 10*time.Second),
		},
		Minio: Minio{
			Port:       utils.GetEnvString("MINIO_PORT", "9000"),
			Host:       utils.GetEnvString("MINIO_HOST", "localhost"),
			Username:   utils.GetEnvString("MINIO_USERNAME", "minioadmin"),
			Password:   utils.GetEnvString("MINIO_PASSWORD", "minioadmin"),
			BucketName: utils.GetEnvString("MINIO_BUCKET_NAME", "clearinghouse"),
			UseSSL:     utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", "development"),
			Port:                       utils.GetEnvString("APP_PORT", "8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1"),
			Address:                    utils.GetEnvString("APP_ADDRESS", "localhost"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 10),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			MaxTimeRequestsPerSeconds:  utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 10),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 6),
			APIKey:                     utils.GetEnvString("APP_API_KEY", ""),
			APIKeyRateLimit:            utils.GetEnvInt("APP_API_KEY_RATE_LIMIT", 60),
		},
		EDI: AppEDI{
			SenderID:                  utils.GetEnvString("EDI_SENDER_ID", "CLAIMSYNC"),
			SenderIDQualifier:         utils.GetEnvString("EDI_SENDER_ID_QUALIFIER", "ZZ"),
			ReceiverID:                utils.GetEnvString("EDI_RECEIVER_ID", "CLEARINGHOUSE"),
			ReceiverIDQualifier:       utils.GetEnvString("EDI_RECEIVER_ID_QUALIFIER", "ZZ"),
			ReceiverName:              utils.GetEnvString("EDI_RECEIVER_NAME", "CLEARINGHOUSE"),
			SubmitterName:             utils.GetEnvString("EDI_SUBMITTER_NAME", ""),
			SubmitterContactName:      utils.GetEnvString("EDI_SUBMITTER_CONTACT_NAME", ""),
			SubmitterPhone:            utils.GetEnvString("EDI_SUBMITTER_PHONE", ""),
			UsageIndicator:            utils.GetEnvString("EDI_USAGE_INDICATOR", "T"),
			BillingProviderName:       utils.GetEnvString("EDI_BILLING_PROVIDER_NAME", ""),
			BillingProviderNPI:        utils.GetEnvString("EDI_BILLING_PROVIDER_NPI", ""),
			BillingProviderTaxID:      utils.GetEnvString("EDI_BILLING_PROVIDER_TAX_ID", ""),
			BillingProviderTaxonomy:   utils.GetEnvString("EDI_BILLING_PROVIDER_TAXONOMY", ""),
			BillingProviderAddress:    utils.GetEnvString("EDI_BILLING_PROVIDER_ADDRESS", ""),
			BillingProviderCity:       utils.GetEnvString("EDI_BILLING_PROVIDER_CITY", ""),
			BillingProviderState:      utils.GetEnvString("EDI_BILLING_PROVIDER_STATE", ""),
			BillingProviderPostalCode: utils.GetEnvString("EDI_BILLING_PROVIDER_POSTAL_CODE", ""),
		},
		Reconciliation: AppReconciliation{
			CronSpec:           utils.GetEnvString("RECONCILIATION_CRON_SPEC", "@every 15m"),
			RunTimeout:         utils.GetEnvDuration("RECONCILIATION_RUN_TIMEOUT", 10*time.Minute),
			LeaderLockTTL:      utils.GetEnvDuration("RECONCILIATION_LEADER_LOCK_TTL", 2*time.Minute),
			ClaimLockTTL:       utils.GetEnvDuration("RECONCILIATION_CLAIM_LOCK_TTL", 30*time.Second),
			ClaimLockWait:      utils.GetEnvDuration("RECONCILIATION_CLAIM_LOCK_WAIT", 5*time.Second),
			FetchRatePerSecond: utils.GetEnvFloat("RECONCILIATION_FETCH_RATE_PER_SECOND", 5),
			FetchBurst:         utils.GetEnvInt("RECONCILIATION_FETCH_BURST", 1),
		},
		Transport: AppTransport{
			InboundPrefix:  utils.GetEnvString("TRANSPORT_INBOUND_PREFIX", "inbound/"),
			OutboundPrefix: utils.GetEnvString("TRANSPORT_OUTBOUND_PREFIX", "outbound/"),
		},
		RabbitMQ: AppRabbitMQ{
			ClaimStatusEventQueue: utils.GetEnvString("RABBITMQ_CLAIM_STATUS_EVENT_QUEUE", constvars.RabbitMQClaimStatusEventQueue),
		},
	}
}
