package catalog

import (
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Credentials are the Spotify client-credentials pair. Enrichment is
// optional: missing credentials disable it rather than erroring.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// Configured reports whether both halves of the pair are present.
func (c Credentials) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// Deployments have shipped the secret under several names over time,
// so all of them are accepted, first match wins.
type envCredentials struct {
	ClientID     string `envconfig:"SPOTIFY_CLIENT_ID"`
	ClientSecret string `envconfig:"SPOTIFY_CLIENT_SECRET"`
	Secret       string `envconfig:"SPOTIFY_SECRET"`
	SecretKey    string `envconfig:"SPOTIFY_CLIENT_SECRET_KEY"`
}

// CredentialsFromEnv reads the Spotify credentials from the
// environment. Values pasted from dashboards tend to pick up
// whitespace and zero-width characters, so both are scrubbed.
func CredentialsFromEnv() Credentials {
	var env envCredentials
	// Only reads optional strings, cannot fail.
	_ = envconfig.Process("", &env)

	secret := env.ClientSecret
	if secret == "" {
		secret = env.Secret
	}
	if secret == "" {
		secret = env.SecretKey
	}
	return Credentials{
		ClientID:     scrub(env.ClientID),
		ClientSecret: scrub(secret),
	}
}

func scrub(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '\u200b', '\u200c', '\u200d', '\ufeff':
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}
