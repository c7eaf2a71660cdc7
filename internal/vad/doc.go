// Package vad implements energy-based voice activity detection for
// fully-buffered mono signals. It computes a rolling mean-square energy
// profile in decibels and finds the end of the last sustained run of
// above-threshold frames by scanning the profile backward from the end
// of the signal.
package vad
