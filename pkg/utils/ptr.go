package utils

import "github.com/aarondl/null/v8"

func StringPtr(s string) *string {
	return &s
}

// NullStringToPtr возвращает nil для NULL.
func NullStringToPtr(ns null.String) *string {
	if !ns.Valid {
		return nil
	}
	return StringPtr(ns.String)
}

// NullStringFromTrimmed пустую строку пишет как NULL.
func NullStringFromTrimmed(s string) null.String {
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}
