package crypto

import "crypto/rand"

const stackIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// DefaultStackIDLength matches the short, shareable ids printed on student
// profiles.
const DefaultStackIDLength = 7

// NewStackID returns a random short id. Uniqueness is the caller's problem;
// the register flow retries against the store until a free id is found.
func NewStackID(length int) (string, error) {
	if length <= 0 {
		length = DefaultStackIDLength
	}
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = stackIDAlphabet[int(b)%len(stackIDAlphabet)]
	}
	return string(buf), nil
}
