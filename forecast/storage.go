package forecast

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Artifact is the unit persisted between process runs: the fitted trees,
// the feature order they were trained with, and when training happened.
type Artifact struct {
	Trees        []regressionTree `json:"trees"`
	FeatureNames []string         `json:"feature_names"`
	TrainedAt    time.Time        `json:"trained_at"`
}

// ModelStore persists trained model artifacts. Save and Load are atomic per
// call; Load reports ErrModelNotFound when nothing has been saved yet.
type ModelStore interface {
	Save(a *Artifact) error
	Load() (*Artifact, error)
}

// FileStore keeps the artifact as a single JSON file, written via a
// temp-file rename so readers never observe a partial artifact.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (fs *FileStore) Save(a *Artifact) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode model artifact: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(fs.path), 0o755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}
	tmp := fs.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write model artifact: %w", err)
	}
	if err := os.Rename(tmp, fs.path); err != nil {
		return fmt.Errorf("replace model artifact: %w", err)
	}
	return nil
}

func (fs *FileStore) Load() (*Artifact, error) {
	data, err := os.ReadFile(fs.path)
	if os.IsNotExist(err) {
		return nil, ErrModelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelLoad, err)
	}
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelLoad, err)
	}
	if len(a.Trees) == 0 {
		return nil, fmt.Errorf("%w: artifact holds no trees", ErrModelLoad)
	}
	for i := range a.Trees {
		if len(a.Trees[i].Nodes) == 0 {
			return nil, fmt.Errorf("%w: tree %d holds no nodes", ErrModelLoad, i)
		}
	}
	return &a, nil
}
