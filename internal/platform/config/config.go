// Package config builds process configuration from the environment so main
// stays lean. The struct is constructed once at startup and passed by
// reference; no package keeps hidden global state.
package config

import (
	"os"
	"strings"
	"time"
)

// Config captures everything the server needs at startup.
type Config struct {
	Addr string

	// PostgresDSN enables the Postgres stores; when empty the in-memory
	// stores are used (dev / unit-test mode).
	PostgresDSN string

	// RedisURL enables the Redis idempotency ledger; empty falls back to the
	// in-process ledger.
	RedisURL string

	// KafkaBrokers / NotifyTopic configure the grant notification producer.
	// No brokers means notifications are logged and dropped.
	KafkaBrokers []string
	NotifyTopic  string

	// EthRPCURL is the JSON-RPC endpoint used to fetch purchase receipts.
	EthRPCURL string

	// ReceiptTimeout bounds how long a room sync waits for a transaction to
	// be mined before surfacing a retryable confirmation timeout.
	ReceiptTimeout time.Duration

	// ReceiptPollInterval is the delay between receipt lookups while waiting.
	ReceiptPollInterval time.Duration

	// VerifyingKeyPath points at the serialized Groth16 verifying key for the
	// membership circuit. Loaded lazily by the proof oracle.
	VerifyingKeyPath string

	// JWTSigningKey signs session tokens and invite codes.
	JWTSigningKey string
}

// FromEnv builds a Config from environment variables with dev defaults.
func FromEnv() Config {
	cfg := Config{
		Addr:                envOr("CREDCHAT_ADDR", ":8080"),
		PostgresDSN:         os.Getenv("CREDCHAT_POSTGRES_DSN"),
		RedisURL:            os.Getenv("CREDCHAT_REDIS_URL"),
		NotifyTopic:         envOr("CREDCHAT_NOTIFY_TOPIC", "credchat.room-grants"),
		EthRPCURL:           os.Getenv("CREDCHAT_ETH_RPC_URL"),
		VerifyingKeyPath:    envOr("CREDCHAT_VERIFYING_KEY", "membership_vk.bin"),
		ReceiptTimeout:      durationOr("CREDCHAT_RECEIPT_TIMEOUT", 60*time.Second),
		ReceiptPollInterval: durationOr("CREDCHAT_RECEIPT_POLL_INTERVAL", 2*time.Second),
	}

	if brokers := os.Getenv("CREDCHAT_KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	cfg.JWTSigningKey = os.Getenv("CREDCHAT_JWT_SIGNING_KEY")
	if cfg.JWTSigningKey == "" {
		// Dev default - must be overridden in production.
		cfg.JWTSigningKey = "dev-secret-key-change-in-production"
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
