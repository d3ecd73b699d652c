// Package conferr defines the error taxonomy for the configuration pipeline.
// Every failure in load, interpolation resolution, or validation is reported
// as a single *Error carrying a machine-readable kind and the dotted path of
// the offending value. Resolution aborts at the first error; no partial
// configuration is ever handed to the caller.
package conferr
