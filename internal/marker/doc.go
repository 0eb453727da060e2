// SPDX-License-Identifier: MPL-2.0

// Package marker writes and removes the bookkeeping descriptor that a
// decompile leaves at the root of its output directory.
//
// The descriptor records which bundle the directory came from and when. It is
// informational only: nothing reads it back to drive behaviour, and its
// absence is always legal. A directory holds at most one marker; writing a
// marker in one format removes any marker left in another.
package marker
