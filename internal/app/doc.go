// Package app contains the core application logic: the App struct, its
// configuration, and the resolve pipeline (load, merge, interpolate,
// validate, decode, derive, snapshot), decoupled from any specific
// entrypoint like a CLI.
package app
