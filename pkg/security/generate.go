package security

import (
	"crypto/rand"
	"fmt"
)

const (
	// GeneratedUsernameLen is the default length for generated account names.
	GeneratedUsernameLen = 8
	// GeneratedUsernameRetryLen is the longer length used after a collision.
	GeneratedUsernameRetryLen = 10
	// GeneratedPasswordLen is the length of generated temporary passwords.
	GeneratedPasswordLen = 10
)

// GenerateTempPassword produces a random string suitable for temporary credentials.
func GenerateTempPassword(length int) (string, error) {
	return randomString(length)
}

// GenerateUsername produces a random login of the requested length.
func GenerateUsername(length int) (string, error) {
	return randomString(length)
}

func randomString(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("length must be positive")
	}

	result := make([]rune, length)
	for i := 0; i < length; i++ {
		idx, err := randInt(len(credentialCharset))
		if err != nil {
			return "", err
		}
		result[i] = credentialCharset[idx]
	}
	return string(result), nil
}

func randInt(max int) (int, error) {
	if max <= 0 {
		return 0, fmt.Errorf("invalid max %d", max)
	}
	var buff = make([]byte, 1)
	if _, err := rand.Read(buff); err != nil {
		return 0, err
	}
	return int(buff[0]) % max, nil
}
