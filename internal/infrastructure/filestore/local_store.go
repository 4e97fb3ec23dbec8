// Package filestore guarda los artefactos exportados en un directorio local.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/charity-reports-api/internal/application/export"
	"github.com/jhoicas/charity-reports-api/internal/domain"
)

var _ export.FileStore = (*LocalStore)(nil)

const tempPrefix = ".export-"

// LocalStore almacén plano: un archivo por exportación, sin subdirectorios.
type LocalStore struct {
	dir string
	log zerolog.Logger
	now func() time.Time
}

// NewLocalStore crea el directorio si no existe (idempotente).
func NewLocalStore(dir string, log zerolog.Logger) (*LocalStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("filestore: %w: directorio vacío", domain.ErrInvalidInput)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("filestore: resolver %s: %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("filestore: crear %s: %w: %v", abs, domain.ErrStorage, err)
	}
	return &LocalStore{dir: abs, log: log, now: time.Now}, nil
}

// Dir directorio absoluto del almacén.
func (s *LocalStore) Dir() string { return s.dir }

// Store escribe el archivo de forma atómica (temporal + rename) y devuelve su tamaño.
func (s *LocalStore) Store(ctx context.Context, name string, data []byte) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	path, err := s.resolve(name)
	if err != nil {
		return 0, err
	}

	tmp, err := os.CreateTemp(s.dir, tempPrefix+"*.tmp")
	if err != nil {
		return 0, fmt.Errorf("filestore.Store: %w: %v", domain.ErrStorage, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return 0, fmt.Errorf("filestore.Store: escribir: %w: %v", domain.ErrStorage, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return 0, fmt.Errorf("filestore.Store: sync: %w: %v", domain.ErrStorage, err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("filestore.Store: cerrar: %w: %v", domain.ErrStorage, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return 0, fmt.Errorf("filestore.Store: permisos: %w: %v", domain.ErrStorage, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return 0, fmt.Errorf("filestore.Store: renombrar: %w: %v", domain.ErrStorage, err)
	}

	s.log.Debug().Str("file", name).Int("bytes", len(data)).Msg("exportación guardada")
	return int64(len(data)), nil
}

// Retrieve lee un archivo. ErrNotFound si no existe o si el nombre intenta salir del directorio.
func (s *LocalStore) Retrieve(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.resolve(name)
	if err != nil {
		s.log.Warn().Str("file", name).Msg("nombre de archivo rechazado")
		return nil, domain.ErrNotFound
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("filestore.Retrieve: %w: %v", domain.ErrStorage, err)
	}
	return data, nil
}

// Cleanup elimina los archivos de primer nivel con mtime anterior a ahora-olderThan.
// Un fallo al borrar se registra y la limpieza continúa.
func (s *LocalStore) Cleanup(ctx context.Context, olderThan time.Duration) (export.CleanupResult, error) {
	var res export.CleanupResult
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return res, fmt.Errorf("filestore.Cleanup: %w: %v", domain.ErrStorage, err)
	}
	cutoff := s.now().Add(-olderThan)

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if !e.Type().IsRegular() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// borrado concurrente
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			s.log.Warn().Err(err).Str("file", e.Name()).Msg("no se pudo eliminar exportación")
			res.Failures = append(res.Failures, export.CleanupFailure{Filename: e.Name(), Error: err.Error()})
			continue
		}
		res.Deleted++
	}
	return res, nil
}

// resolve valida que name sea un nombre simple dentro del directorio.
func (s *LocalStore) resolve(name string) (string, error) {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") ||
		filepath.Base(name) != name || strings.HasPrefix(name, tempPrefix) {
		return "", fmt.Errorf("filestore: %w: nombre %q", domain.ErrInvalidInput, name)
	}
	path := filepath.Join(s.dir, name)
	if filepath.Dir(path) != s.dir {
		return "", fmt.Errorf("filestore: %w: nombre %q", domain.ErrInvalidInput, name)
	}
	return path, nil
}
