package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"shopfront/internal/storefront/ports/session"
	"shopfront/pkg/logger"
)

// Константы для логирования.
const (
	LogSessionFileRemoved = "session file removed"

	ErrorFailedToRead   = "failed to read session file"
	ErrorFailedToDecode = "failed to decode session file"
	ErrorFailedToWrite  = "failed to write session file"
	ErrorFailedToRemove = "failed to remove session file"
)

const (
	fileMode = 0o600
	dirMode  = 0o700
)

// fileContent - формат файла сессии; имена полей совпадают с ключами хранилища.
type fileContent struct {
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// FileStore хранит токены в JSON-файле, доступном только владельцу.
type FileStore struct {
	mu   sync.Mutex
	path string
}

var _ session.Store = (*FileStore)(nil)

// NewFileStore создает хранилище поверх файла path. Файл создается при первой записи.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path возвращает путь к файлу сессии.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) AccessToken(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.read()
	if err != nil {
		return "", err
	}
	return c.AccessToken, nil
}

func (s *FileStore) SetAccessToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.read()
	if err != nil {
		return err
	}
	c.AccessToken = token
	return s.write(c)
}

func (s *FileStore) RefreshToken(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.read()
	if err != nil {
		return "", err
	}
	return c.RefreshToken, nil
}

func (s *FileStore) SaveSession(_ context.Context, accessToken, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.write(fileContent{AccessToken: accessToken, RefreshToken: refreshToken})
}

func (s *FileStore) ClearSession(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", ErrorFailedToRemove, err)
	}
	logger.Log(ctx).Debug(ctx, LogSessionFileRemoved, zap.String("path", s.path))
	return nil
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) read() (fileContent, error) {
	var c fileContent

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return c, fmt.Errorf("%s: %w", ErrorFailedToRead, err)
	}
	if len(data) == 0 {
		return c, nil
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("%s: %w", ErrorFailedToDecode, err)
	}
	return c, nil
}

// write заменяет файл целиком через временный файл и rename.
func (s *FileStore) write(c fileContent) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToWrite, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToWrite, err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToWrite, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%s: %w", ErrorFailedToWrite, err)
	}
	if err := tmp.Chmod(fileMode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%s: %w", ErrorFailedToWrite, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToWrite, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToWrite, err)
	}
	return nil
}
