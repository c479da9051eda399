// Package sport normalizes free-text sport labels into a fixed set of categories.
//
// Labels come from schedule headings, styled label nodes or league names. A
// Classifier applies an ordered rule table (first match wins) and then accepts
// the result only when it belongs to the configured supported-sport set.
package sport
