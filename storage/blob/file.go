package blobstore

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

type fileStore struct {
	path string
}

var _ Store = (*fileStore)(nil)

// NewFileStore stores the blob in a single file, written via a temp file and
// rename so a crash mid-write never leaves a truncated snapshot behind.
func NewFileStore(path string) Store {
	return &fileStore{path: path}
}

func (s *fileStore) Save(_ context.Context, data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "creating snapshot dir")
	}

	tmp, err := ioutil.TempFile(dir, filepath.Base(s.path)+".tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp snapshot")
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "writing snapshot")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "closing snapshot")
	}
	return errors.Wrap(os.Rename(tmp.Name(), s.path), "renaming snapshot")
}

func (s *fileStore) Load(_ context.Context) ([]byte, error) {
	data, err := ioutil.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading snapshot")
	}
	return data, nil
}
