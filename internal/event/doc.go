// Package event provides the Event record produced by the schedule extractor.
//
// An Event is either a two-participant fixture (TeamLeft vs TeamRight) or a
// single-entity listing such as a show or a card, selected by IsSingleEvent.
// Each event is assigned a deterministic SHA1-based ID from its sport, time,
// league and title so the same listing maps to the same ID across runs.
package event
