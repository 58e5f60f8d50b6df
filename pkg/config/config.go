// Package config holds the runtime configuration for the server
package config

// Config encapsulates the knobs the server reads at startup. Port and
// Debug come from flags, the rest from the environment.
type Config struct {
	Port          string
	Debug         bool
	AllowedOrigin string
	APIKeys       []string
}
