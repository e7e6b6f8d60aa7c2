package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const credentialsFileName = "credentials.json"

// Credentials is the content of the locally stored credential file.
type Credentials struct {
	APIKey string `json:"api_key"`
}

// LoadKey reads the stored API key. A missing credential file is not an
// error; it returns an empty key so the caller can fall back to the
// environment or fail with guidance.
func LoadKey() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(filepath.Join(dir, credentialsFileName))
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read credentials: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return "", fmt.Errorf("failed to decode credentials: %w", err)
	}
	return creds.APIKey, nil
}

// SaveKey stores the API key in the credential file, creating the tool
// directory when needed. The file is readable by the owner only.
func SaveKey(secret string) error {
	if secret == "" {
		return fmt.Errorf("empty API key")
	}

	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(Credentials{APIKey: secret}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}

	path := filepath.Join(dir, credentialsFileName)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write credentials: %w", err)
	}
	return nil
}
