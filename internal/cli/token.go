package cli

import (
	"os"
	"path/filepath"
	"strings"
)

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".profilectl_token"
	}
	return filepath.Join(home, ".profilectl_token")
}

// loadToken returns the saved session token, or "" when none is saved.
func loadToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func saveToken(path, token string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(token), 0o600)
}

func removeToken(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
