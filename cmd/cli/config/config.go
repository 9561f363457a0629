package config

import (
	"os"
	"path/filepath"
)

const defaultAPIURL = "http://localhost:8080"

const tokenFileName = ".todo_token"

// APIURL returns the base URL for the todo API.
// It can be overridden with the TODO_API_URL environment variable.
func APIURL() string {
	if v := os.Getenv("TODO_API_URL"); v != "" {
		return v
	}
	return defaultAPIURL
}

// SaveToken writes the bearer token to ~/.todo_token.
func SaveToken(token string) error {
	return os.WriteFile(tokenPath(), []byte(token), 0600)
}

// LoadToken returns the bearer token. TODO_TOKEN in the environment
// takes precedence over the token file.
func LoadToken() (string, error) {
	if v := os.Getenv("TODO_TOKEN"); v != "" {
		return v, nil
	}
	data, err := os.ReadFile(tokenPath())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// RemoveToken deletes the token file; missing file is not an error.
func RemoveToken() error {
	err := os.Remove(tokenPath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func tokenPath() string {
	dir, _ := os.UserHomeDir()
	return filepath.Join(dir, tokenFileName)
}
