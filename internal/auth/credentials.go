package auth

import (
	"strings"

	"edudash/internal/config"
)

// Credential is one username/password pair from the developer roster.
type Credential struct {
	Username string
	Password string
}

// fallbackDevCredentials is the non-production roster used when no
// credentials are configured, so a fresh checkout can log in immediately.
var fallbackDevCredentials = []Credential{
	{Username: "Brij Bhushan", Password: "10368"},
	{Username: "Moulik Garg", Password: "10730"},
	{Username: "Rehan", Password: "10820"},
}

// stripQuotes removes a single layer of surrounding quotes. Values pasted
// into env files often arrive quoted.
func stripQuotes(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return value[1 : len(value)-1]
		}
	}
	return value
}

func normalize(username, password string) Credential {
	return Credential{
		Username: stripQuotes(strings.TrimSpace(username)),
		Password: stripQuotes(strings.TrimSpace(password)),
	}
}

// LoadCredentials assembles the admin roster from configuration. Pairs with a
// missing username or password are dropped. When nothing is configured the
// fallback roster is returned outside production; in production the roster is
// empty and login answers 503 until credentials are provided.
func LoadCredentials(cfg config.AuthConfig, production bool) []Credential {
	pairs := [][2]string{
		{cfg.User1, cfg.Pass1},
		{cfg.User2, cfg.Pass2},
		{cfg.User3, cfg.Pass3},
	}

	var out []Credential
	for _, pair := range pairs {
		cred := normalize(pair[0], pair[1])
		if cred.Username != "" && cred.Password != "" {
			out = append(out, cred)
		}
	}
	if len(out) > 0 {
		return out
	}
	if !production {
		return fallbackDevCredentials
	}
	return nil
}

// Match reports whether the given username/password pair is present in the
// roster. Inputs are expected to be pre-trimmed by the caller.
func Match(roster []Credential, username, password string) bool {
	for _, cred := range roster {
		if cred.Username == username && cred.Password == password {
			return true
		}
	}
	return false
}
