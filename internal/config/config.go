package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress    string
	LogLevel      string
	DatabaseURI   string
	PublicBaseURL string
	JWTSecret     string
	SessionTTL    time.Duration
	// Emails that receive the admin role on registration.
	AdminAccounts []string

	GatewayURL       string
	GatewayKeyID     string
	GatewayKeySecret string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailFrom     string

	Company CompanyInfo

	// Seed values for the store settings record until an admin saves one.
	DefaultSettings SettingsDefaults

	StrictTransitions     bool
	NotificationWorkers   int
	NotificationQueueSize int
	ShutdownTimeout       time.Duration
}

// CompanyInfo is printed in invoice headers.
type CompanyInfo struct {
	Name    string
	Address string
	GSTIN   string
}

// SettingsDefaults configures StoreSettings before the first admin update.
type SettingsDefaults struct {
	GatewayEnabled        bool
	BankTransferEnabled   bool
	NotifyCustomers       bool
	ShippingFlatRate      decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	AdminEmail            string
}

const (
	defaultRunAddress            = ":8080"
	defaultLogLevel              = "info"
	defaultPublicBaseURL         = "http://localhost:8080"
	defaultJWTSecret             = "change-me-in-production"
	defaultSessionTTL            = 24 * time.Hour
	defaultSMTPPort              = 587
	defaultMailFrom              = "orders@fabricstore.local"
	defaultCompanyName           = "Fabric Store"
	defaultNotificationWorkers   = 2
	defaultNotificationQueueSize = 64
	defaultShutdownTimeout       = 10 * time.Second
	defaultShippingFlatRate      = "150"
	defaultFreeShippingThreshold = "1000"
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:       getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		LogLevel:         getString(lookup, "LOG_LEVEL", defaultLogLevel),
		DatabaseURI:      getString(lookup, "DATABASE_URI", ""),
		PublicBaseURL:    getString(lookup, "PUBLIC_BASE_URL", defaultPublicBaseURL),
		JWTSecret:        getString(lookup, "JWT_SECRET", defaultJWTSecret),
		SessionTTL:       getDuration(lookup, "SESSION_TTL", defaultSessionTTL),
		AdminAccounts:    getList(lookup, "ADMIN_ACCOUNTS"),
		GatewayURL:       getString(lookup, "GATEWAY_URL", ""),
		GatewayKeyID:     getString(lookup, "GATEWAY_KEY_ID", ""),
		GatewayKeySecret: getString(lookup, "GATEWAY_KEY_SECRET", ""),
		SMTPHost:         getString(lookup, "SMTP_HOST", ""),
		SMTPPort:         getInt(lookup, "SMTP_PORT", defaultSMTPPort),
		SMTPUsername:     getString(lookup, "SMTP_USERNAME", ""),
		SMTPPassword:     getString(lookup, "SMTP_PASSWORD", ""),
		MailFrom:         getString(lookup, "MAIL_FROM", defaultMailFrom),
		Company: CompanyInfo{
			Name:    getString(lookup, "COMPANY_NAME", defaultCompanyName),
			Address: getString(lookup, "COMPANY_ADDRESS", ""),
			GSTIN:   getString(lookup, "COMPANY_GSTIN", ""),
		},
		DefaultSettings: SettingsDefaults{
			GatewayEnabled:        getBool(lookup, "GATEWAY_ENABLED", true),
			BankTransferEnabled:   getBool(lookup, "BANK_TRANSFER_ENABLED", true),
			NotifyCustomers:       getBool(lookup, "NOTIFY_CUSTOMERS", true),
			ShippingFlatRate:      getDecimal(lookup, "SHIPPING_FLAT_RATE", defaultShippingFlatRate),
			FreeShippingThreshold: getDecimal(lookup, "FREE_SHIPPING_THRESHOLD", defaultFreeShippingThreshold),
			AdminEmail:            getString(lookup, "ADMIN_EMAIL", ""),
		},
		StrictTransitions:     getBool(lookup, "STRICT_TRANSITIONS", false),
		NotificationWorkers:   getInt(lookup, "NOTIFICATION_WORKERS", defaultNotificationWorkers),
		NotificationQueueSize: getInt(lookup, "NOTIFICATION_QUEUE_SIZE", defaultNotificationQueueSize),
		ShutdownTimeout:       getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("fabricstore", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	shutdownTimeoutStr := cfg.ShutdownTimeout.String()

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.GatewayURL, "g", cfg.GatewayURL, "Payment gateway base URL")
	fs.StringVar(&cfg.PublicBaseURL, "public-url", cfg.PublicBaseURL, "Externally reachable base URL used in invoice links")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.SMTPHost, "smtp-host", cfg.SMTPHost, "SMTP relay host, empty disables delivery")
	fs.IntVar(&cfg.SMTPPort, "smtp-port", cfg.SMTPPort, "SMTP relay port")
	fs.BoolVar(&cfg.StrictTransitions, "strict-transitions", cfg.StrictTransitions, "Reject out-of-order status changes")
	fs.IntVar(&cfg.NotificationWorkers, "mail-workers", cfg.NotificationWorkers, "Number of concurrent mail workers")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error
	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	if secretFile, ok := lookup("GATEWAY_KEY_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read gateway secret file: %w", err)
		}
		cfg.GatewayKeySecret = strings.TrimSpace(string(content))
	}

	if cfg.NotificationWorkers <= 0 {
		cfg.NotificationWorkers = defaultNotificationWorkers
	}

	if cfg.NotificationQueueSize <= 0 {
		cfg.NotificationQueueSize = defaultNotificationQueueSize
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}

	cfg.PublicBaseURL = strings.TrimRight(cfg.PublicBaseURL, "/")

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.GatewayURL == "" {
		return nil, fmt.Errorf("payment gateway address must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getList(lookup envLookup, key string) []string {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getDecimal(lookup envLookup, key, def string) decimal.Decimal {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := decimal.NewFromString(v); err == nil && !d.IsNegative() {
			return d
		}
	}
	return decimal.RequireFromString(def)
}
