package config

import (
	"os"
	"strconv"
)

// defaultString sets *dst when it is still empty.
func defaultString(dst *string, value string) {
	if *dst == "" {
		*dst = value
	}
}

// mergeString copies value onto *dst unless value is empty.
func mergeString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// overrideString replaces *dst with the named env var when it is set.
func overrideString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// overrideInt replaces *dst when the named env var parses as an integer.
// Unparseable values are ignored so a typo falls back to the prior value.
func overrideInt(key string, dst *int) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	if n, err := strconv.Atoi(v); err == nil {
		*dst = n
	}
}

// overrideBool replaces *dst when the named env var parses as a bool.
func overrideBool(key string, dst *bool) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	if b, err := strconv.ParseBool(v); err == nil {
		*dst = b
	}
}
