package server

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/gol-arena/model"
)

// ErrNoSnapshot is returned by Load when nothing has been stored yet
var ErrNoSnapshot = errors.New("no snapshot stored")

// Store persists the latest world snapshot
type Store interface {
	Save(ctx context.Context, snap model.Snapshot) error
	Load(ctx context.Context) (model.Snapshot, error)
}

// FileStore keeps the snapshot as a JSON document on disk, replacing it on every save
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Save writes the snapshot to a temporary file and renames it over the
// document, so readers never see a partial world.
func (f *FileStore) Save(ctx context.Context, snap model.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return errors.Wrap(err, "[FileStore.Save] failed to marshal snapshot")
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".world-*.json")
	if err != nil {
		return errors.Wrapf(err, "[FileStore.Save] failed to create temp file next to %s", f.path)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "[FileStore.Save] failed to write %s", tmp.Name())
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrapf(err, "[FileStore.Save] failed to close %s", tmp.Name())
	}
	if err = os.Rename(tmp.Name(), f.path); err != nil {
		return errors.Wrapf(err, "[FileStore.Save] failed to replace %s", f.path)
	}
	return nil
}

// Load reads the stored snapshot
func (f *FileStore) Load(ctx context.Context) (model.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, errors.Wrapf(err, "[FileStore.Load] failed to read file: %+v", f.path)
	}
	var snap model.Snapshot
	if err = json.Unmarshal(data, &snap); err != nil {
		return nil, errors.Wrapf(err, "[FileStore.Load] failed to unmarshal data from file: %+v", f.path)
	}
	return snap, nil
}

// NopStore discards snapshots
type NopStore struct{}

func (NopStore) Save(context.Context, model.Snapshot) error { return nil }

func (NopStore) Load(context.Context) (model.Snapshot, error) { return nil, ErrNoSnapshot }
