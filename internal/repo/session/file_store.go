package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"syscall"

	"github.com/mkrupp/homecase-sessiongate/internal/infra/logging"
)

// ErrInvalidKey is returned when a key cannot be mapped to a file name.
var ErrInvalidKey = errors.New("invalid session store key")

//nolint:gochecknoglobals
var validKey = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// FileStoreConfig holds configuration for the file session store.
type FileStoreConfig struct {
	// Basedir is the directory holding one file per key
	Basedir string `env:"BASEDIR" default:"var/storage/session"`
}

// FileStore implements Store with one file per key. Writes go through a
// temporary file and a rename, guarded by an advisory lock per key.
type FileStore struct {
	cfg FileStoreConfig
	log logging.Logger
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates the base directory if needed and returns a FileStore.
func NewFileStore(ctx context.Context, cfg FileStoreConfig) (_ *FileStore, err error) {
	log := logging.GetLogger("repo.session.file_store").With(
		logging.Group("repo", "basedir", cfg.Basedir),
	)

	defer func() {
		if err != nil {
			log.ErrorContext(ctx, "init storage failed", "error", err)
		} else {
			log.DebugContext(ctx, "init storage")
		}
	}()

	if err := os.MkdirAll(cfg.Basedir, 0o700); err != nil {
		return nil, fmt.Errorf("mkdir all: %w", err)
	}

	return &FileStore{cfg: cfg, log: log}, nil
}

// Get implements Store.Get.
func (fs *FileStore) Get(ctx context.Context, key string) (_ string, _ bool, err error) {
	filename, err := fs.filename(key)
	if err != nil {
		return "", false, err
	}

	release, err := fs.flock(ctx, filename, syscall.LOCK_SH)
	if err != nil {
		return "", false, fmt.Errorf("flock: %w", err)
	}
	defer release()

	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}

		return "", false, fmt.Errorf("read file: %w", err)
	}

	return string(data), true, nil
}

// Set implements Store.Set.
func (fs *FileStore) Set(ctx context.Context, key, value string) error {
	filename, err := fs.filename(key)
	if err != nil {
		return err
	}

	release, err := fs.flock(ctx, filename, syscall.LOCK_EX)
	if err != nil {
		return fmt.Errorf("flock: %w", err)
	}
	defer release()

	tmp, err := os.CreateTemp(fs.cfg.Basedir, filepath.Base(filename)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}

	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("write temp: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("sync temp: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}

	if err := os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("rename: %w", err)
	}

	return nil
}

// Remove implements Store.Remove.
func (fs *FileStore) Remove(ctx context.Context, key string) error {
	filename, err := fs.filename(key)
	if err != nil {
		return err
	}

	release, err := fs.flock(ctx, filename, syscall.LOCK_EX)
	if err != nil {
		return fmt.Errorf("flock: %w", err)
	}
	defer release()

	if err := os.Remove(filename); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove: %w", err)
	}

	return nil
}

// Close implements Store.Close.
func (fs *FileStore) Close() error {
	return nil
}

func (fs *FileStore) filename(key string) (string, error) {
	if !validKey.MatchString(key) || key == "." || key == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	return filepath.Join(fs.cfg.Basedir, key), nil
}

func (fs *FileStore) flock(ctx context.Context, filename string, mode int) (release func(), err error) {
	lockfile := filename + ".lock"

	defer func() {
		if err != nil {
			fs.log.ErrorContext(ctx, "lock failed", "lockfile", lockfile, "error", err)
		}
	}()

	file, err := os.OpenFile(lockfile, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	if err := syscall.Flock(int(file.Fd()), mode); err != nil {
		_ = file.Close()

		return nil, fmt.Errorf("flock: %w", err)
	}

	return func() {
		_ = syscall.Flock(int(file.Fd()), syscall.LOCK_UN)
		_ = file.Close()
	}, nil
}
