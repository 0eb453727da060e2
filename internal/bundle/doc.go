// SPDX-License-Identifier: MPL-2.0

// Package bundle implements the three XAPK repackaging procedures.
//
// Decompile copies a bundle to a sibling .zip, extracts it into a working
// directory, drops a marker there and re-zips the directory's top-level files
// next to the input. Build zips a working directory's top-level files into a
// bundle and removes the marker. View extracts a bundle into a private
// temporary directory, opens its manifest.json in an editor and cleans up.
//
// Re-zipping is flat (see package archive): nested content such as
// Android/obb/ survives extraction but not a decompile/build round trip.
package bundle
