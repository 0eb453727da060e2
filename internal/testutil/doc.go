// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Common helpers include filesystem setup (MustMkdirAll, MustWriteFile,
// MustChdir), ZIP fixtures (WriteZip, ZipEntries, ZipEntry) and a
// deterministic clock (FakeClock).
package testutil
