package state_test

import (
	"os"
	"path/filepath"
	"testing"

	"punch.cli/internal/state"
)

func TestLoadMissingFile(t *testing.T) {
	st, err := state.Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load on missing file: %v", err)
	}
	if st != (state.State{}) {
		t.Errorf("Load = %+v, want zero state", st)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	want := state.State{
		AccessToken: "access-token",
		CompanyID:   "some-company-id",
		RoleID:      "some-role-id",
	}
	if err := state.Save(dir, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := state.Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "state.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := state.Load(dir); err == nil {
		t.Error("Load on corrupt file succeeded, want error")
	}
}
