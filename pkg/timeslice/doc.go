// Package timeslice implements an algebra over half-open spans of time.
//
// A Slice is a single span [start, end). A Set is a sorted collection of
// slices that never overlap; adding or removing time splits, trims or drops
// stored slices so that this holds after every operation.
package timeslice
