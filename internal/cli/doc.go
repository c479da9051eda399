// Package cli implements the command-line interface for sportify.
//
// The cli package provides the Cobra-based command that runs the whole pipeline
// once: fetch the schedule page, extract and classify events, render the static
// page and write it to disk, optionally followed by a calendar export and a
// metrics textfile. It also formats the console summary (text/JSON/YAML) and
// orders the events before rendering.
package cli
