package auth

import (
	"github.com/pquerna/otp/totp"
)

const totpIssuer = "ChemStock"

// GenerateTOTP creates a new secret for username and returns it with the
// otpauth:// URL authenticator apps scan.
func GenerateTOTP(username string) (secret, url string, err error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: username,
	})
	if err != nil {
		return "", "", err
	}
	return key.Secret(), key.URL(), nil
}

// ValidateTOTP checks a 6-digit code against secret for the current period
func ValidateTOTP(code, secret string) bool {
	if code == "" || secret == "" {
		return false
	}
	return totp.Validate(code, secret)
}
