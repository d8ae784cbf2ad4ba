package core

import "strings"

// CleanString trims leading and trailing whitespace from form input.
func CleanString(s string) string {
	return strings.TrimSpace(s)
}

// CleanPhone normalizes a phone number for submission: surrounding
// whitespace and the separators people type into phone fields are
// stripped, so "+256 700-000 001" submits as "+256700000001".
func CleanPhone(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')', '.':
			return -1
		}
		return r
	}, strings.TrimSpace(s))
}
