package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const apiTokenKey = "server.api_token"

// GetAPIToken returns the bearer token protecting the management API.
// The token is generated once and persisted through the backend, so the
// CLI and the server always agree.
func GetAPIToken(b ConfigBackend) (string, error) {
	tok, ok, err := b.GetString(apiTokenKey)
	if err != nil {
		return "", fmt.Errorf("reading API token: %w", err)
	}
	if ok && tok != "" {
		return tok, nil
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating API token: %w", err)
	}
	tok = hex.EncodeToString(buf)

	if err := b.SetString(apiTokenKey, tok); err != nil {
		return "", fmt.Errorf("persisting API token: %w", err)
	}
	return tok, nil
}

// NewBackend returns the default persistent config backend.
func NewBackend() ConfigBackend {
	return newFileBackend()
}
