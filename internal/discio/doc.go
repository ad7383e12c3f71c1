// Package discio interfaces with the physical optical drive: tray status,
// ejection, and positional block reads off the raw device node.
//
// SectorReader abstracts the read side so the gap-filling engine in
// internal/copyengine can be driven from a real device or, in tests, from
// an in-memory fake without touching hardware.
package discio
