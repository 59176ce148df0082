package utils

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/pathforge/pathforge-backend/internal/types"
)

func NormalizeUserFields(user *types.User) {
	user.Username = strings.TrimSpace(user.Username)
	user.Password = strings.TrimSpace(user.Password)
}

func ValidateRegistration(user *types.User) error {
	if user == nil {
		return fmt.Errorf("no user given, cannot proceed with registration")
	}
	if user.Username == "" {
		return fmt.Errorf("a username is required to register")
	}
	if user.Password == "" {
		return fmt.Errorf("a password is required to register")
	}
	return nil
}

func ValidateLogin(username, password string) error {
	if username == "" {
		return fmt.Errorf("username is required to login")
	}
	if password == "" {
		return fmt.Errorf("password is required to login")
	}
	return nil
}

func HashPassword(user *types.User) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashed)
	return nil
}
