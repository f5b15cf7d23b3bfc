// Package token generates the URL-safe identifiers handed out for tables
package token

import (
	"crypto/rand"
	"encoding/base64"
)

// Generate returns a crypto-secure random string of length n
// The random string contains the following characters:
// ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_
func Generate(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	// base64 yields at least one character per input byte
	return base64.RawURLEncoding.EncodeToString(b)[0:n], nil
}
