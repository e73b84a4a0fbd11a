// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

// Package snapshot persists the last-seen task and category lists so
// the dashboard can paint real data immediately on the next start
// while the fresh fetch is in flight.
//
// The snapshot is a cache, never a source of truth: every read is
// checksummed, and anything wrong with the file — missing, truncated,
// wrong version, checksum mismatch — reads as "no snapshot" so the
// client falls back to a cold start. Corruption is logged, not
// surfaced.
//
// On-disk format: an 8-byte header (magic, version, compression tag,
// uncompressed payload size), a 32-byte keyed BLAKE3 checksum of the
// uncompressed payload, then the LZ4-compressed deterministic CBOR
// encoding of the snapshot body.
package snapshot
