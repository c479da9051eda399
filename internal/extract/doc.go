// Package extract turns raw schedule entries into Event records.
//
// The scraper reduces each event-bearing markup node to a Candidate: its own
// text, the texts of its links and the nearest heading and label that precede
// its container. Everything after that point is plain string handling, so the
// fragile assumptions about the schedule page stay in the scraper and the
// decision logic here can be tested without any HTML.
package extract
