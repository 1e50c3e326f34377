// Package app contains the launcher logic. It wires the bundled resources,
// the launcher manifest and the capability modules into a script host and
// runs one deployment variant, decoupled from any specific entrypoint.
package app
