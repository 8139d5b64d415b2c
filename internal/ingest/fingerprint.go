package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// fingerprintFile holds the per-file upstream SHAs inside the data dir.
const fingerprintFile = ".sha_index.json"

// fingerprints maps yearly file names to the upstream SHA they were
// last downloaded at.
type fingerprints map[string]string

// loadFingerprints reads the persisted fingerprint index. Missing or
// corrupt state is a cold start, never an error.
func loadFingerprints(dir string) fingerprints {
	raw, err := os.ReadFile(filepath.Join(dir, fingerprintFile))
	if err != nil {
		return fingerprints{}
	}
	var fp fingerprints
	if err := json.Unmarshal(raw, &fp); err != nil {
		return fingerprints{}
	}
	return fp
}

// saveFingerprints rewrites the whole fingerprint index.
func saveFingerprints(dir string, fp fingerprints) error {
	data, err := json.MarshalIndent(fp, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(filepath.Join(dir, fingerprintFile), data)
}

// writeFileAtomic writes via a temp file and rename so readers never
// see a partially written file.
func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
