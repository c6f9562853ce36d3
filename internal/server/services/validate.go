package services

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/OscarDom1/community-resource-platform/internal/common"
	"github.com/google/uuid"
)

// normalizeEmail accepts a bare address only and lower-cases it.
func normalizeEmail(s string) (string, error) {
	s = strings.TrimSpace(s)
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return "", fmt.Errorf("%w: invalid email", common.ErrValidation)
	}
	return strings.ToLower(addr.Address), nil
}

func requireText(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: %s is required", common.ErrValidation, field)
	}
	return s, nil
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
