// Package storage implementa el almacenamiento local de imágenes subidas
// (productos, categorías y sliders). Los usecases lo invocan desde hooks
// explícitos de pre/post-delete; no hay listeners mágicos.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore guarda archivos bajo un directorio raíz y los expone con un
// prefijo de URL pública.
type LocalStore struct {
	dir     string
	baseURL string
}

// NewLocalStore crea el directorio raíz si no existe.
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de uploads: %w", err)
	}
	return &LocalStore{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Save persiste un archivo multipart y devuelve la ruta pública.
// El nombre se regenera con UUID para evitar colisiones y path traversal.
func (s *LocalStore) Save(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("abrir upload: %w", err)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	name := uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("crear archivo: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("escribir archivo: %w", err)
	}
	return s.baseURL + "/" + name, nil
}

// Delete elimina el archivo que respalda una ruta pública. Ignora rutas que
// no pertenecen al store y archivos ya inexistentes.
func (s *LocalStore) Delete(publicPath string) error {
	name := strings.TrimPrefix(publicPath, s.baseURL+"/")
	if name == publicPath || name == "" || strings.Contains(name, "..") || strings.ContainsRune(name, '/') {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("eliminar archivo: %w", err)
	}
	return nil
}

// Dir devuelve el directorio raíz (para servirlo como estático).
func (s *LocalStore) Dir() string { return s.dir }
