package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLength = 8
	MaxPasswordLength = 128

	// DefaultHashCost is deliberately above bcrypt.DefaultCost; password
	// hashing is a rare, latency-tolerant operation here.
	DefaultHashCost = 12
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrPasswordTooLong = fmt.Errorf("password exceeds the maximum length of %d characters", MaxPasswordLength)
	ErrWeakPassword    = errors.New("password is too weak")
)

var weakSubstrings = []string{"123456", "654321", "abcdef", "qwerty", "password", "admin"}

type PasswordStrength struct {
	IsValid  bool
	Score    int
	Feedback []string
}

// ValidatePasswordStrength scores a candidate password. Pure and
// deterministic; the reported score is floored at zero, but validity is
// decided on the raw score before flooring.
func ValidatePasswordStrength(password string) PasswordStrength {
	var feedback []string
	score := 0

	// Length rules count characters, not bytes, so multibyte passwords are
	// measured the way the user typed them.
	switch length := utf8.RuneCountInString(password); {
	case length < MinPasswordLength:
		feedback = append(feedback, fmt.Sprintf("Password must be at least %d characters long", MinPasswordLength))
	case length >= 12:
		score += 2
	default:
		score++
	}

	if !strings.ContainsFunc(password, unicode.IsLower) {
		feedback = append(feedback, "Password must contain at least one lowercase letter")
	} else {
		score++
	}
	if !strings.ContainsFunc(password, unicode.IsUpper) {
		feedback = append(feedback, "Password must contain at least one uppercase letter")
	} else {
		score++
	}
	if !strings.ContainsFunc(password, unicode.IsDigit) {
		feedback = append(feedback, "Password must contain at least one number")
	} else {
		score++
	}
	if !strings.ContainsAny(password, `!@#$%^&*()_+-=[]{};':"\|,.<>/?`) {
		feedback = append(feedback, "Password must contain at least one special character")
	} else {
		score++
	}

	if hasRepeatedRun(password) {
		feedback = append(feedback, "Password contains common patterns and is easily guessable")
		score -= 2
	}
	if containsWeakSubstring(password) {
		feedback = append(feedback, "Password contains common patterns and is easily guessable")
		score -= 2
	}

	isValid := len(feedback) == 0 && score >= 4

	if score < 0 {
		score = 0
	}
	return PasswordStrength{IsValid: isValid, Score: score, Feedback: feedback}
}

// hasRepeatedRun reports whether the password contains three or more
// identical consecutive characters.
func hasRepeatedRun(password string) bool {
	runes := []rune(password)
	run := 1
	for i := 1; i < len(runes); i++ {
		if runes[i] == runes[i-1] {
			run++
			if run >= 3 {
				return true
			}
		} else {
			run = 1
		}
	}
	return false
}

func containsWeakSubstring(password string) bool {
	lower := strings.ToLower(password)
	for _, weak := range weakSubstrings {
		if strings.Contains(lower, weak) {
			return true
		}
	}
	return false
}

// Hasher derives peppered bcrypt hashes. The pepper is a server-side secret
// appended before hashing; it never reaches the database, so a leaked hash
// table alone is not brute-forceable offline.
type Hasher struct {
	pepper string
	cost   int
}

func NewHasher(pepper string, cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultHashCost
	}
	return &Hasher{pepper: pepper, cost: cost}
}

// Hash validates strength and returns a salted, peppered bcrypt hash. Every
// return path waits a random 100-500ms so callers cannot distinguish failure
// reasons by response latency.
func (h *Hasher) Hash(password string) (string, error) {
	defer completionDelay()

	if password == "" {
		return "", ErrInvalidInput
	}
	if utf8.RuneCountInString(password) > MaxPasswordLength {
		return "", ErrPasswordTooLong
	}
	strength := ValidatePasswordStrength(password)
	if !strength.IsValid {
		return "", fmt.Errorf("%w: %s", ErrWeakPassword, strings.Join(strength.Feedback, ", "))
	}

	hash, err := bcrypt.GenerateFromPassword(h.prehash(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify compares a password against a stored hash using bcrypt's
// constant-time comparison.
func (h *Hasher) Verify(password, storedHash string) (bool, error) {
	if password == "" || storedHash == "" {
		completionDelay()
		return false, ErrInvalidInput
	}
	if utf8.RuneCountInString(password) > MaxPasswordLength {
		return false, ErrPasswordTooLong
	}

	err := bcrypt.CompareHashAndPassword([]byte(storedHash), h.prehash(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// prehash folds the pepper in through SHA-256 so the whole peppered password
// participates even past bcrypt's 72-byte input cap.
func (h *Hasher) prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password + h.pepper))
	return []byte(base64.RawURLEncoding.EncodeToString(sum[:]))
}

func completionDelay() {
	jitter, err := rand.Int(rand.Reader, big.NewInt(400))
	if err != nil {
		time.Sleep(300 * time.Millisecond)
		return
	}
	time.Sleep(time.Duration(100+jitter.Int64()) * time.Millisecond)
}
