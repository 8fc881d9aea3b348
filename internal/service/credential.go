package service

import (
	"crypto/subtle"

	"github.com/shushovitJR/Yeti-Repair-backend/internal/models"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/utils"
)

// CredentialVerifier checks a password against its stored form. Legacy
// plaintext rows are accepted only while AllowPlaintext is set.
type CredentialVerifier struct {
	AllowPlaintext bool
}

// Verify reports whether password matches c and whether the row should be
// rewritten as bcrypt.
func (v CredentialVerifier) Verify(c models.Credential, password string) (ok, upgrade bool) {
	switch c.Format {
	case models.CredentialBcrypt:
		return utils.CheckPassword(c.Secret, password), false
	case models.CredentialPlain:
		// Rows imported as hashes keep the column default; fix the flag.
		if utils.LooksHashed(c.Secret) {
			ok = utils.CheckPassword(c.Secret, password)
			return ok, ok
		}
		if !v.AllowPlaintext {
			return false, false
		}
		ok = subtle.ConstantTimeCompare([]byte(c.Secret), []byte(password)) == 1
		return ok, ok
	default:
		return false, false
	}
}
