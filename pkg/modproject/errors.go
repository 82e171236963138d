// SPDX-License-Identifier: MPL-2.0

package modproject

import (
	"errors"
	"fmt"
)

// ErrConfiguration is the sentinel wrapped by every ConfigurationError.
var ErrConfiguration = errors.New("invalid project configuration")

// ConfigurationError reports an unreadable mod.toml or one missing required
// fields. It is fatal: nothing can be built or packaged without it.
type ConfigurationError struct {
	File string
	Err  error
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %v", ErrConfiguration, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *ConfigurationError) Unwrap() []error {
	return []error{ErrConfiguration, e.Err}
}
