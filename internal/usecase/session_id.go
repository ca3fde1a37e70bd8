package usecase

import (
	"fmt"
	"strings"
)

const maxSessionIDLength = 128

func normalizeSessionID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", fmt.Errorf("%w: session id is required", ErrInvalidInput)
	}
	if len(id) > maxSessionIDLength {
		return "", fmt.Errorf("%w: session id exceeds %d characters", ErrInvalidInput, maxSessionIDLength)
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return "", fmt.Errorf("%w: session id contains invalid character %q", ErrInvalidInput, r)
		}
	}
	return id, nil
}
