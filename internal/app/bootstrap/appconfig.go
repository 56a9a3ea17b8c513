// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds PeerLoop-specific configuration.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, CORS). Everything specific to this application lives here
// and is loaded in LoadConfig from files, PEERLOOP_* environment
// variables, or flags.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string // secret key for signing session cookies
	SessionDomain string // cookie domain (blank means current host)

	// AI assist service. A blank base URL disables the AI features and
	// the app falls back to neutral responses.
	AssistBaseURL string
	AssistAPIKey  string
	AssistTimeout time.Duration

	// Optional first teacher account, created at startup when no
	// teacher exists yet. Both fields must be set to take effect.
	SeedTeacherEmail    string
	SeedTeacherPassword string
}
