package config

import (
	"crypto/rsa"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"

	"github.com/talenthub/auth-service/internal/utils"
)

// Config holds all application configuration, including key material
// and token lifetimes.
type Config struct {
	AppName string
	AppPort string
	AppUrl  string
	DBUrl   string

	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
	IDTokenExpiry      time.Duration

	// RevokeAllHorizon is how long a token stays blacklisted after a
	// full-user revocation, regardless of its real expiry.
	RevokeAllHorizon time.Duration

	RSAPrivateKey *rsa.PrivateKey
	RSAPublicKey  *rsa.PublicKey
}

// Defaults for time-based configuration.
const (
	AppName = "auth-service"

	DefaultAccessTokenExpiry  = 1 * time.Hour
	DefaultRefreshTokenExpiry = 7 * 24 * time.Hour
	DefaultIDTokenExpiry      = 1 * time.Hour
	DefaultRevokeAllHorizon   = 24 * time.Hour

	// BlacklistSweepSchedule drives the hourly cleanup of expired
	// blacklist entries.
	BlacklistSweepSchedule = "0 * * * *"
)

// LoadConfig reads the environment (optionally seeded from a .env file),
// parses the RSA keypair, and returns a *Config. Missing or unparseable
// key material is fatal: the service cannot mint or verify tokens without it.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		utils.Logger.Debug("No .env file found; relying on the process environment")
	}

	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		utils.Logger.Fatal("APP_PORT env var is missing")
	}
	appUrl := os.Getenv("APP_URL")
	if appUrl == "" {
		utils.Logger.Fatal("APP_URL env var is missing")
	}
	dbUrl := os.Getenv("DB_URL")
	if dbUrl == "" {
		utils.Logger.Fatal("DB_URL env var is missing")
	}

	privateKeyPath := os.Getenv("RSA_PRIVATE_KEY_PATH")
	if privateKeyPath == "" {
		utils.Logger.Fatal("RSA_PRIVATE_KEY_PATH env var is missing")
	}
	privateKeyPEM, err := os.ReadFile(privateKeyPath)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to read RSA private key file")
	}
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyPEM)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA private key")
	}

	publicKeyPath := os.Getenv("RSA_PUBLIC_KEY_PATH")
	if publicKeyPath == "" {
		utils.Logger.Fatal("RSA_PUBLIC_KEY_PATH env var is missing")
	}
	publicKeyPEM, err := os.ReadFile(publicKeyPath)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to read RSA public key file")
	}
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyPEM)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA public key")
	}

	return &Config{
		AppName: AppName,
		AppPort: appPort,
		AppUrl:  appUrl,
		DBUrl:   dbUrl,

		AccessTokenExpiry:  durationFromEnv("ACCESS_TOKEN_TTL", DefaultAccessTokenExpiry),
		RefreshTokenExpiry: durationFromEnv("REFRESH_TOKEN_TTL", DefaultRefreshTokenExpiry),
		IDTokenExpiry:      durationFromEnv("ID_TOKEN_TTL", DefaultIDTokenExpiry),
		RevokeAllHorizon:   durationFromEnv("REVOKE_ALL_HORIZON", DefaultRevokeAllHorizon),

		RSAPrivateKey: privateKey,
		RSAPublicKey:  publicKey,
	}
}

func durationFromEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		utils.Logger.Warnf("Invalid %s '%s', using default %v", key, raw, fallback)
		return fallback
	}
	return d
}
