// Package state persists the authenticated session between invocations:
// the access token plus the company and role ids resolved at login.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// State is the locally stored session, written by `punch login` and read by
// every authenticated command.
type State struct {
	AccessToken string `json:"access_token"`
	CompanyID   string `json:"company_id"`
	RoleID      string `json:"role_id"`
}

func statePath(dir string) string {
	return filepath.Join(dir, "state.json")
}

// Load reads state.json from dir. A missing file yields an empty State.
func Load(dir string) (State, error) {
	data, err := os.ReadFile(statePath(dir))
	if os.IsNotExist(err) {
		return State{}, nil
	}
	if err != nil {
		return State{}, fmt.Errorf("reading state file: %w", err)
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}, fmt.Errorf("corrupt state file (delete %s to re-authenticate): %w", statePath(dir), err)
	}
	return st, nil
}

// Save atomically writes state.json in dir.
func Save(dir string, st State) error {
	path := statePath(dir)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling state: %w", err)
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("writing state file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("saving state file: %w", err)
	}
	return nil
}
