// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers
// framework-level settings (ports, TLS, logging, request limits);
// AppConfig is everything specific to CareerHub.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: careerhub-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Google OAuth configuration
	GoogleClientID     string
	GoogleClientSecret string

	// BaseURL is this service's externally visible URL, used for the
	// OAuth callback. FrontendURL is where the browser is sent after
	// OAuth sign-in, and the allowed CORS origin for the SPA.
	BaseURL     string
	FrontendURL string

	// Group workflow policy: re-check capacity when an owner accepts an
	// application, rejecting accepts that would exceed max_members.
	RecheckCapacityOnAccept bool
}
