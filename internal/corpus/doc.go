// Package corpus discovers stimulus audio files in a voice-partitioned
// directory tree and derives the stimulus keys the downstream scoring
// consumer matches on. Keys are "<voice>_<word>" with the word's diacritics
// stripped; the normalization must stay bit-identical to the consumer's.
package corpus
