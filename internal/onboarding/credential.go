package onboarding

import (
	"crypto/rand"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

const (
	credentialLength  = 10
	credentialCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789@#$!"
	credentialCost    = 10
)

// GenerateCredential returns a random initial password.
func GenerateCredential() (string, error) {
	max := big.NewInt(int64(len(credentialCharset)))
	out := make([]byte, credentialLength)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = credentialCharset[n.Int64()]
	}
	return string(out), nil
}

func HashCredential(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), credentialCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
