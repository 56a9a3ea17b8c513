// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for PeerLoop.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_key, etc.
//   - Environment variables: PEERLOOP_MONGO_URI, PEERLOOP_SESSION_KEY, etc.
//   - Command-line flags: --mongo_uri, --session_key, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "peerloop", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	{Name: "session_key", Default: "", Desc: "Session signing key (blank generates a throwaway key outside production)"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	// AI assist service
	{Name: "assist_base_url", Default: "", Desc: "Base URL of the AI assist service (blank disables AI features)"},
	{Name: "assist_api_key", Default: "", Desc: "API key for the AI assist service"},
	{Name: "assist_timeout", Default: "20s", Desc: "Per-call timeout for AI assist requests"},

	// First-run bootstrap
	{Name: "seed_teacher_email", Default: "", Desc: "Email for a first teacher account, created when no teacher exists"},
	{Name: "seed_teacher_password", Default: "", Desc: "Password for the seeded teacher account"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It runs early in startup so both WAFFLE and the app have configuration
// before any backends or handlers are built. Precedence is
// flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "PEERLOOP", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionDomain: appValues.String("session_domain"),

		AssistBaseURL: appValues.String("assist_base_url"),
		AssistAPIKey:  appValues.String("assist_api_key"),
		AssistTimeout: appValues.Duration("assist_timeout", 20*time.Second),

		SeedTeacherEmail:    appValues.String("seed_teacher_email"),
		SeedTeacherPassword: appValues.String("seed_teacher_password"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation before any
// connection attempts, so obvious misconfiguration fails fast.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if appCfg.MongoDatabase == "" {
		return fmt.Errorf("mongo_database must not be empty")
	}
	if coreCfg.Env == "prod" && len(appCfg.SessionKey) < 32 {
		return fmt.Errorf("session_key must be set to at least 32 characters in production")
	}
	return nil
}
