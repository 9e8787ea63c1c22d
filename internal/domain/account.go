package domain

import (
	"fmt"
	"strings"
)

const (
	AccountSeparator = "&"
	accountIDLength  = 11
	secretLength     = 6
	credentialLength = accountIDLength + secretLength
)

// AccountID is the 11-digit subscriber number.
type AccountID string

type Credential struct {
	ID     AccountID
	Secret string
}

// RejectedEntry is a raw account entry that failed validation.
type RejectedEntry struct {
	Raw    string
	Reason string
}

// ParseCredential validates one fixed-width entry: 11 digits of id followed
// by 6 digits of secret, no separator.
func ParseCredential(raw string) (Credential, error) {
	if len(raw) != credentialLength {
		return Credential{}, fmt.Errorf("expected %d characters, got %d", credentialLength, len(raw))
	}
	if !isDigits(raw[:accountIDLength]) {
		return Credential{}, fmt.Errorf("account id must be %d digits", accountIDLength)
	}
	if !isDigits(raw[accountIDLength:]) {
		return Credential{}, fmt.Errorf("secret must be %d digits", secretLength)
	}

	return Credential{
		ID:     AccountID(raw[:accountIDLength]),
		Secret: raw[accountIDLength:],
	}, nil
}

// ParseCredentials splits the configured account source and validates each
// entry. Input order is preserved in both results.
func ParseCredentials(source string) ([]Credential, []RejectedEntry) {
	var credentials []Credential
	var rejected []RejectedEntry

	for _, entry := range strings.Split(source, AccountSeparator) {
		credential, err := ParseCredential(entry)
		if err != nil {
			rejected = append(rejected, RejectedEntry{Raw: entry, Reason: err.Error()})
			continue
		}
		credentials = append(credentials, credential)
	}

	return credentials, rejected
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
