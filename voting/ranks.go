// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

const maxNameLength = 100

// Ranks is a normalized ranking. Rank2 and Rank3 are empty when absent.
type Ranks struct {
	Rank1 string
	Rank2 string
	Rank3 string
}

// NormalizeRanks trims the asset ids and checks the ranking is injective.
// rank1 is required; rank3 may be given without rank2.
func NormalizeRanks(rank1, rank2, rank3 string) (Ranks, error) {
	r := Ranks{
		Rank1: strings.TrimSpace(rank1),
		Rank2: strings.TrimSpace(rank2),
		Rank3: strings.TrimSpace(rank3),
	}

	if r.Rank1 == "" {
		return Ranks{}, fmt.Errorf("%w: rank1 required", ErrValidation)
	}
	if r.Rank2 != "" && r.Rank2 == r.Rank1 {
		return Ranks{}, fmt.Errorf("%w: rank2 repeats rank1", ErrValidation)
	}
	if r.Rank3 != "" && (r.Rank3 == r.Rank1 || r.Rank3 == r.Rank2) {
		return Ranks{}, fmt.Errorf("%w: rank3 repeats a higher rank", ErrValidation)
	}

	return r, nil
}

// NormalizeContact validates the optional lottery opt-in. The email is
// lower-cased so the same address cannot enter twice with different casing.
func NormalizeContact(email, name string) (string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)

	if email != "" {
		addr, err := mail.ParseAddress(email)
		if err != nil || addr.Address != email {
			return "", "", fmt.Errorf("%w: invalid email", ErrValidation)
		}
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return "", "", fmt.Errorf("%w: name must be at most %d characters", ErrValidation, maxNameLength)
	}

	return email, name, nil
}
