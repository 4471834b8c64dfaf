// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Common helpers include a controllable clock (FakeClock), file fixtures
// (MustWriteFile) and resource cleanup (MustStop, DeferStop).
package testutil
