// SPDX-License-Identifier: MPL-2.0

package cueutil

// DefaultMaxFileSize bounds the size of files read before validation (5MB).
const DefaultMaxFileSize int64 = 5 * 1024 * 1024

type (
	options struct {
		concrete bool
		filename string
	}

	// Option configures validation behavior.
	Option func(*options)
)

func defaultOptions() options {
	return options{concrete: true, filename: "<input>"}
}

// WithConcrete sets whether all values must be concrete after unification.
// Required fields are only enforced when this is true (the default).
func WithConcrete(concrete bool) Option {
	return func(o *options) { o.concrete = concrete }
}

// WithFilename sets the file name used as prefix in error messages.
func WithFilename(name string) Option {
	return func(o *options) {
		if name != "" {
			o.filename = name
		}
	}
}
