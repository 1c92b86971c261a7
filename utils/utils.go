package utils

import "regexp"

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// IsValidEmail — быстрая проверка формата, без попытки покрыть весь RFC 5322.
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}
