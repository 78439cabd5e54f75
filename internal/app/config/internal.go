package config

import "time"

type InternalConfig struct {
	App            App
	EDI            AppEDI
	Reconciliation AppReconciliation
	Transport      AppTransport
	RabbitMQ       AppRabbitMQ
}

type App struct {
	Env                        string
	Port                       string
	Version                    string
	Address                    string
	EndpointPrefix             string
	MaxRequests                int
	ShutdownTimeoutInSeconds   int
	MaxTimeRequestsPerSeconds  int
	RequestBodyLimitInMegabyte int
	APIKey                     string
	APIKeyRateLimit            int
}

// AppEDI identifies this submitter and the billing provider in every
// generated interchange.
type AppEDI struct {
	SenderID                  string
	SenderIDQualifier         string
	ReceiverID                string
	ReceiverIDQualifier       string
	ReceiverName              string
	SubmitterName             string
	SubmitterContactName      string
	SubmitterPhone            string
	UsageIndicator            string
	BillingProviderName       string
	BillingProviderNPI        string
	BillingProviderTaxID      string
	BillingProviderTaxonomy   string
	BillingProviderAddress    string
	BillingProviderCity       string
	BillingProviderState      string
	BillingProviderPostalCode string
}

type AppReconciliation struct {
	CronSpec           string
	RunTimeout         time.Duration
	LeaderLockTTL      time.Duration
	ClaimLockTTL       time.Duration
	ClaimLockWait      time.Duration
	FetchRatePerSecond float64
	FetchBurst         int
}

type AppTransport struct {
	InboundPrefix  string
	OutboundPrefix string
}

type AppRabbitMQ struct {
	ClaimStatusEventQueue string
}
