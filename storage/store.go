package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"caseboard/config"
	"caseboard/models"

	"github.com/gofrs/flock"
)

// Store is the global file store instance, set by Initialize.
var Store *FileStore

// FileStore persists the whole case collection as one JSON document with
// atomic replacement and rolling timestamped backups.
type FileStore struct {
	path      string
	backupDir string
	lock      *flock.Flock
	mirror    *Mirror
}

// Initialize sets up the global store from configuration.
func Initialize(cfg *config.Config) error {
	store, err := NewFileStore(filepath.Join(cfg.DataDir, "cases.json"), cfg.BackupDir)
	if err != nil {
		return err
	}
	if mirror, err := NewMirror(cfg); err != nil {
		log.Printf("[WARNING] Backup mirror disabled: %v", err)
	} else if mirror != nil {
		store.mirror = mirror
		log.Printf("Backup mirror enabled (bucket: %s)", cfg.R2BucketName)
	}
	Store = store
	return nil
}

// NewFileStore creates a store backed by the given canonical path, creating
// the data and backup directories as needed.
func NewFileStore(path, backupDir string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}
	return &FileStore{
		path:      path,
		backupDir: backupDir,
		lock:      flock.New(path + ".lock"),
	}, nil
}

// Path returns the canonical file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads, migrates and returns the case file. Repairs discovered by the
// migration pass are re-persisted immediately so the next reader sees clean
// data. A missing backing file yields an empty file; an unparsable one is
// recovered as empty-but-valid rather than propagated as a crash.
func (s *FileStore) Load() (*models.CaseFile, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return models.NewCaseFile(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Printf("[WARNING] %s is unparsable, recovering as empty file: %v", s.path, err)
		raw = nil
	}

	migrated, changed := MigrateFile(raw)
	file, dropped := decodeFile(migrated)
	changed = changed || dropped

	if changed {
		// write back normalized data for durability
		if err := s.Save(file); err != nil {
			log.Printf("[WARNING] Failed to re-persist migrated data: %v", err)
		}
	}
	return file, nil
}

// decodeFile turns the migrated raw shape into the typed model, salvaging
// whatever cases decode cleanly. Reports whether anything was dropped.
func decodeFile(raw map[string]interface{}) (*models.CaseFile, bool) {
	file := models.NewCaseFile()
	dropped := false

	if stamp, ok := raw["saved_at"].(string); ok {
		if t, err := time.Parse(time.RFC3339, stamp); err == nil {
			file.SavedAt = t
		}
	}

	entries, _ := raw["cases"].([]interface{})
	for _, entry := range entries {
		buf, err := json.Marshal(entry)
		if err != nil {
			dropped = true
			continue
		}
		var c models.Case
		if err := json.Unmarshal(buf, &c); err != nil {
			log.Printf("[WARNING] Dropping undecodable case record: %v", err)
			dropped = true
			continue
		}
		file.Cases = append(file.Cases, c)
	}
	return file, dropped
}

// Save persists the file atomically: temp file, rename over the canonical
// path, then a timestamped backup copy. Backup and mirror failures never
// fail the save. Every call bumps saved_at.
func (s *FileStore) Save(file *models.CaseFile) error {
	file.SchemaVersion = models.CurrentSchemaVersion
	file.SavedAt = time.Now().UTC()

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal case file: %w", err)
	}

	// Best-effort cross-process guard around the replace; last-write-wins
	// at whole-file granularity is otherwise unchanged.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if locked, err := s.lock.TryLockContext(ctx, 50*time.Millisecond); err != nil || !locked {
		log.Printf("[WARNING] Proceeding without file lock on %s", s.path)
	} else {
		defer func() {
			if err := s.lock.Unlock(); err != nil {
				log.Printf("[WARNING] Failed to release file lock: %v", err)
			}
		}()
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}

	s.writeBackup(data)
	return nil
}

// writeBackup copies the freshly saved document into the backup directory
// under a UTC second-precision name. Failures are durability-history only
// and are logged, not returned.
func (s *FileStore) writeBackup(data []byte) {
	stamp := time.Now().UTC().Format("20060102-150405")
	name := fmt.Sprintf("cases-%s.json", stamp)
	backupPath := filepath.Join(s.backupDir, name)
	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		log.Printf("[WARNING] Failed to write backup %s: %v", backupPath, err)
		return
	}

	if s.mirror != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := s.mirror.Upload(ctx, name, data); err != nil {
				log.Printf("[WARNING] Failed to mirror backup %s: %v", name, err)
			}
		}()
	}
}
