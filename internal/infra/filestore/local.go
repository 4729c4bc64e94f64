package filestore

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"cinema-ticketing/internal/domain/ticket"
	"cinema-ticketing/internal/pkg/config"
	"cinema-ticketing/internal/pkg/errs"
	"cinema-ticketing/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrInvalidReference = errs.New("invalid document reference")

// LocalStore keeps documents under <root>/tickets. References are relative
// to root and use forward slashes.
type LocalStore struct {
	root string
}

func NewLocalStore(cfg config.Config) *LocalStore {
	return newLocalStore(cfg.Storage.MediaRoot)
}

func newLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

// Save writes through a temp file and rename so readers never see a
// partially written document.
func (s *LocalStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ref, err := reference(name)
	if err != nil {
		return "", err
	}
	target, err := s.resolve(ref)
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errs.Wrapf(err, "failed to create %s", dir)
	}

	tmp := filepath.Join(dir, "."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", errs.Wrapf(err, "failed to write %s", tmp)
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return "", errs.Wrapf(err, "failed to move document into %s", target)
	}
	return ref, nil
}

func (s *LocalStore) Open(ctx context.Context, ref string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := s.resolve(ref)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errs.Is(err, fs.ErrNotExist) {
			return nil, errs.Mark(errs.Wrapf(err, "document %s", ref), shared.ErrDocumentMissing)
		}
		return nil, errs.Wrapf(err, "failed to read document %s", ref)
	}
	return data, nil
}

func (s *LocalStore) Exists(ctx context.Context, ref string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	p, err := s.resolve(ref)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(p)
	if err != nil {
		if errs.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, errs.Wrapf(err, "failed to stat document %s", ref)
	}
	return info.Mode().IsRegular(), nil
}

// Delete is idempotent: a missing file is not an error.
func (s *LocalStore) Delete(ctx context.Context, ref string) error {
	p, err := s.resolve(ref)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errs.Is(err, fs.ErrNotExist) {
		return errs.Wrapf(err, "failed to delete document %s", ref)
	}
	return nil
}

func (s *LocalStore) resolve(ref string) (string, error) {
	clean := path.Clean("/" + ref)
	if ref == "" || clean == "/" || strings.Contains(ref, "..") || !strings.HasPrefix(clean, "/"+ticket.DocumentDir+"/") {
		return "", errs.Wrapf(ErrInvalidReference, "%q", ref)
	}
	return filepath.Join(s.root, filepath.FromSlash(clean[1:])), nil
}

// reference maps a bare document name to its stored reference.
func reference(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", errs.Wrapf(ErrInvalidReference, "name %q", name)
	}
	return ticket.DocumentDir + "/" + name, nil
}
