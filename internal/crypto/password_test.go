package crypto

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestValidatePasswordStrength(t *testing.T) {
	strong := ValidatePasswordStrength("Str0ng!Pass")
	if !strong.IsValid {
		t.Fatalf("expected strong password to be valid, feedback: %v", strong.Feedback)
	}
	if strong.Score < 4 {
		t.Fatalf("expected score >= 4, got %d", strong.Score)
	}

	short := ValidatePasswordStrength("Ab1!")
	if short.IsValid {
		t.Fatalf("expected short password to be rejected")
	}
	if len(short.Feedback) == 0 {
		t.Fatalf("expected feedback for short password")
	}

	noUpper := ValidatePasswordStrength("str0ng!pass")
	if noUpper.IsValid {
		t.Fatalf("expected password without uppercase to be rejected")
	}

	common := ValidatePasswordStrength("Password1!")
	if common.IsValid {
		t.Fatalf("expected denylisted password to be rejected")
	}

	repeated := ValidatePasswordStrength("Strrr0ng!Pa")
	if repeated.IsValid {
		t.Fatalf("expected repeated-run password to be rejected")
	}

	// Score is floored at zero even when penalties push it negative.
	floor := ValidatePasswordStrength("aaa123456")
	if floor.Score < 0 {
		t.Fatalf("expected floored score, got %d", floor.Score)
	}
	if floor.IsValid {
		t.Fatalf("expected weak password to be rejected")
	}
}

func TestLengthRulesCountCharacters(t *testing.T) {
	// 6 characters but 10 bytes; a byte count would sneak past the minimum.
	short := ValidatePasswordStrength("Ää1!Öß")
	if short.IsValid {
		t.Fatalf("expected 6-character password to be rejected")
	}
	if len(short.Feedback) == 0 {
		t.Fatalf("expected feedback for short password")
	}

	hasher := NewHasher("test-pepper", bcrypt.MinCost)

	// 124 characters but 155 bytes; must stay under the 128-character cap.
	long := strings.Repeat("äA1!", 31)
	if _, err := hasher.Hash(long); err != nil {
		t.Fatalf("expected 124-character password to hash, got %v", err)
	}

	// 132 characters exceeds the cap.
	if _, err := hasher.Hash(strings.Repeat("äA1!", 33)); !errors.Is(err, ErrPasswordTooLong) {
		t.Fatalf("expected ErrPasswordTooLong, got %v", err)
	}
	if _, err := hasher.Verify(strings.Repeat("äA1!", 33), "some-hash"); !errors.Is(err, ErrPasswordTooLong) {
		t.Fatalf("expected ErrPasswordTooLong, got %v", err)
	}
}

func TestHashAndVerify(t *testing.T) {
	hasher := NewHasher("test-pepper", bcrypt.MinCost)

	hash, err := hasher.Hash("Str0ng!Pass")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}

	match, err := hasher.Verify("Str0ng!Pass", hash)
	if err != nil {
		t.Fatalf("verify error: %v", err)
	}
	if !match {
		t.Fatalf("expected password to match")
	}

	match, err = hasher.Verify("Wr0ng!Pass1", hash)
	if err != nil {
		t.Fatalf("verify error: %v", err)
	}
	if match {
		t.Fatalf("expected password mismatch")
	}
}

func TestHashRejectsWeakAndInvalid(t *testing.T) {
	hasher := NewHasher("test-pepper", bcrypt.MinCost)

	if _, err := hasher.Hash(""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := hasher.Hash(strings.Repeat("Aa1!", 40)); !errors.Is(err, ErrPasswordTooLong) {
		t.Fatalf("expected ErrPasswordTooLong, got %v", err)
	}
	if _, err := hasher.Hash("password"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestVerifyRejectsInvalidInput(t *testing.T) {
	hasher := NewHasher("test-pepper", bcrypt.MinCost)

	if _, err := hasher.Verify("", "some-hash"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := hasher.Verify("Str0ng!Pass", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := hasher.Verify(strings.Repeat("Aa1!", 40), "some-hash"); !errors.Is(err, ErrPasswordTooLong) {
		t.Fatalf("expected ErrPasswordTooLong, got %v", err)
	}
}

func TestPepperChangesHashOutcome(t *testing.T) {
	hasher := NewHasher("pepper-one", bcrypt.MinCost)
	other := NewHasher("pepper-two", bcrypt.MinCost)

	hash, err := hasher.Hash("Str0ng!Pass")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}

	match, err := other.Verify("Str0ng!Pass", hash)
	if err != nil {
		t.Fatalf("verify error: %v", err)
	}
	if match {
		t.Fatalf("expected mismatch under a different pepper")
	}
}

func TestNewStackID(t *testing.T) {
	id, err := NewStackID(7)
	if err != nil {
		t.Fatalf("stack id error: %v", err)
	}
	if len(id) != 7 {
		t.Fatalf("expected 7 characters, got %d", len(id))
	}
	for _, c := range id {
		if !strings.ContainsRune(stackIDAlphabet, c) {
			t.Fatalf("unexpected character %q", c)
		}
	}

	other, err := NewStackID(7)
	if err != nil {
		t.Fatalf("stack id error: %v", err)
	}
	if id == other {
		t.Fatalf("expected distinct ids")
	}
}
