package service

import (
	"unicode"

	"github.com/techgear-vn/techgear-api/internal/config"
)

type passwordPolicyError struct {
	message string
}

func (e passwordPolicyError) Error() string {
	return e.message
}

func (e passwordPolicyError) Is(target error) bool {
	return target == ErrWeakPassword
}

func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	if policy.MinLength <= 0 && !policy.RequireNumber && !policy.RequireLetter {
		return nil
	}

	if policy.MinLength > 0 && len([]rune(password)) < policy.MinLength {
		return passwordPolicyError{message: "password too short"}
	}

	var hasNumber, hasLetter bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasNumber = true
		case unicode.IsLetter(r):
			hasLetter = true
		}
	}
	if policy.RequireNumber && !hasNumber {
		return passwordPolicyError{message: "password needs a number"}
	}
	if policy.RequireLetter && !hasLetter {
		return passwordPolicyError{message: "password needs a letter"}
	}
	return nil
}
