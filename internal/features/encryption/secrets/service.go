package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"vendors-backend/internal/config"
	files_utils "vendors-backend/internal/util/files"

	"github.com/google/uuid"
)

// SecretKeyService owns the HMAC key used to sign access tokens. The key
// lives in a file next to the data folder and is generated on first use.
type SecretKeyService struct {
	mu        sync.Mutex
	cachedKey *string
}

func (s *SecretKeyService) GetSecretKey() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cachedKey != nil {
		return *s.cachedKey, nil
	}

	secretKeyPath := config.GetEnv().SecretKeyPath

	data, err := os.ReadFile(secretKeyPath)
	if err == nil {
		key := strings.TrimSpace(string(data))
		if key == "" {
			return "", errors.New("secret key file is empty")
		}

		s.cachedKey = &key
		return key, nil
	}

	if !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to read secret key file: %w", err)
	}

	if err := files_utils.EnsureParentDirectory(secretKeyPath); err != nil {
		return "", err
	}

	newKey := uuid.New().String() + uuid.New().String()
	if err := os.WriteFile(secretKeyPath, []byte(newKey), 0600); err != nil {
		return "", fmt.Errorf("failed to write new secret key: %w", err)
	}

	s.cachedKey = &newKey
	return newKey, nil
}
