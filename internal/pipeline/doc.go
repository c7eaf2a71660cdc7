// Package pipeline orchestrates a corpus run: every discovered stimulus is
// decoded, framed into an energy profile, and scanned for its speech end,
// with per-file failures isolated so one broken file never aborts the rest
// of the corpus.
package pipeline
