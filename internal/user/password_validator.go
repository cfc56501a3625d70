package user

import (
	"errors"
	"fmt"
)

const PASSWORD_MINIMUM_LENGTH = 8

var (
	ErrPasswordNotAlphanumeric     = errors.New("password must contain letters and digits")
	ErrPasswordShouldBeNCharacters = fmt.Errorf("password should be at least %d characters", PASSWORD_MINIMUM_LENGTH)
)

func CheckPassword(password string) error {
	if len(password) < PASSWORD_MINIMUM_LENGTH {
		return ErrPasswordShouldBeNCharacters
	}
	if !checkAlphanumeric(password) {
		return ErrPasswordNotAlphanumeric
	}
	return nil
}

func checkAlphanumeric(password string) bool {
	hasLetter := false
	hasDigit := false
	for _, c := range password {
		if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') {
			hasLetter = true
		}
		if '0' <= c && c <= '9' {
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}
