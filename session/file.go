package session

import (
	"context"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

const userIDKey = "USER_ID"

// FileStore keeps the session in a dotenv-formatted file.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) SetCurrentUserID(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return err
	}
	values[userIDKey] = userID
	return godotenv.Write(values, s.path)
}

func (s *FileStore) CurrentUserID(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return "", err
	}
	return values[userIDKey], nil
}

func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *FileStore) read() (map[string]string, error) {
	values, err := godotenv.Read(s.path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	return values, err
}
