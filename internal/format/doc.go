// Package format renders a doc.Document back to canonical Animated
// Text bytes.
//
// The output is canonical: metadata sorted by key, line directives in a
// fixed order (timing, speaker, opaque), syllable timing written after
// the syllable text. Serialization of a parsed document is therefore
// idempotent byte-for-byte, and parsing the output reproduces the
// document structurally.
package format
