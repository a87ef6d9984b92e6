package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// The version suffix allows the digest algorithm to change later.
const (
	DomainRecord = "springs/record/v1"
	DomainInput  = "springs/input/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// RecordDigest identifies a record by content: the symbols as text and the
// run lengths, after any unfolding. Two rows with the same digest always
// have the same arrangement count.
func RecordDigest(symbols string, groups []int) (string, error) {
	canonical, err := MarshalCanonical(IRObject{
		"symbols": IRString(symbols),
		"groups":  Ints(groups),
	})
	if err != nil {
		return "", fmt.Errorf("RecordDigest: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainRecord, canonical), nil
}

// InputDigest identifies a whole puzzle input together with the unfold
// factor it was solved with.
func InputDigest(lines []string, unfold int) (string, error) {
	canonical, err := MarshalCanonical(IRObject{
		"lines":  Strings(lines),
		"unfold": IRInt(unfold),
	})
	if err != nil {
		return "", fmt.Errorf("InputDigest: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainInput, canonical), nil
}

// MustRecordDigest is like RecordDigest but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustRecordDigest(symbols string, groups []int) string {
	d, err := RecordDigest(symbols, groups)
	if err != nil {
		panic(err)
	}
	return d
}
