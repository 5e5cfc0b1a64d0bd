// Package cli defines the Cobra command tree for create-techpix-app. The root
// command takes the project directory as its only argument; version and
// config are the only subcommands. Commands handle flag parsing, prompting
// and console output, and delegate project creation to the engine package.
package cli
