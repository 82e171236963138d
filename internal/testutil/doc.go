// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Common helpers include environment variable management (MustSetenv),
// directory and file operations (MustChdir, MustMkdirAll, MustWriteFile,
// MustReadFile), project fixtures (WriteModToml, WriteScript) and archive
// inspection (ZipNames).
package testutil
