// Package id generates the short prefixed identifiers used for PSA records.
package id

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// suffixLength is the number of hex characters kept from the random UUID.
const suffixLength = 10

// New returns an identifier shaped like "<prefix>_<10 lowercase hex chars>".
func New(prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("id prefix is required")
	}
	raw, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return prefix + "_" + hex.EncodeToString(raw[:])[:suffixLength], nil
}

// HasPrefix reports whether value was minted with prefix.
func HasPrefix(value, prefix string) bool {
	rest, ok := strings.CutPrefix(value, prefix+"_")
	if !ok || len(rest) != suffixLength {
		return false
	}
	_, err := hex.DecodeString(rest)
	return err == nil
}
