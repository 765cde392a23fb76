package finlit

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// StateFile returns the path of the state blob for an account inside dir.
func StateFile(dir, account string) string {
	return filepath.Join(dir, account+".json")
}

// LoadState reads the state blob for an account. A missing or malformed
// file falls back to a fresh DefaultState so the learner never loses
// access to the app over a corrupt blob; the incident is logged and the
// next save overwrites it.
func LoadState(dir, account string) *State {
	path := StateFile(dir, account)
	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("warning: could not open state file %q: %v, starting fresh", path, err)
		}
		return DefaultState(account)
	}
	defer f.Close()

	s, err := DecodeState(f)
	if err != nil {
		log.Printf("warning: %v, starting fresh", err)
		return DefaultState(account)
	}
	return s
}

// SaveState writes the state blob for an account, creating dir if needed.
func SaveState(dir, account string, s *State) error {
	path := StateFile(dir, account)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create state directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create state file %q: %w", path, err)
	}
	defer f.Close()
	return EncodeState(f, s)
}
