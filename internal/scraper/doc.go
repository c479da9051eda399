// Package scraper provides HTTP fetching and HTML parsing for the TV schedule page.
//
// The scraper fetches the public schedule page and reduces every event-bearing
// <strong> node to an extract.Candidate: its own text, the texts of its channel
// links, and the nearest <h2> heading and <b> label that precede its container.
// The page structure is an undocumented contract with the publishing site, so all
// knowledge of it lives in this package.
package scraper
