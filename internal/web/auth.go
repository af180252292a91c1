package web

import (
	"crypto/subtle"

	"github.com/alexedwards/argon2id"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/rs/zerolog/log"

	"github.com/go-wishlist/go-wishlist/internal/config"
)

// Realm of the admin basic auth challenge.
const Realm = "wishlist admin"

// AdminAuth guards the admin API and the setup page with HTTP basic auth.
// The password is checked against the argon2id hash from the config.
// Without a configured hash every request is denied.
func AdminAuth(cfg *config.Config) fiber.Handler {
	username := cfg.Admin.Username
	if username == "" {
		username = config.DefaultAdminUsername
	}

	hash := cfg.Admin.PasswordHash
	if hash == "" {
		log.Warn().Msg("no admin password hash configured: admin endpoints are locked")
	}

	return basicauth.New(basicauth.Config{
		Realm: Realm,
		Authorizer: func(user, pass string) bool {
			return CheckCredentials(username, hash, user, pass)
		},
	})
}

// CheckCredentials compares user and pass with the expected username and argon2id hash.
func CheckCredentials(username, hash, user, pass string) bool {
	if hash == "" {
		return false
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(user)) == 1

	match, err := argon2id.ComparePasswordAndHash(pass, hash)
	if err != nil {
		log.Error().Err(err).Msg("invalid admin password hash")

		return false
	}

	return userOK && match
}
