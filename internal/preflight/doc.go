// Package preflight provides readiness checks for the filesystem paths and
// optical drive dvdbackup depends on.
//
// RunAll runs before a rip starts; rip logs a warning for each failed check
// and then continues.
package preflight
