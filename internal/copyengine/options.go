package copyengine

import "dvdbackup/internal/fillexec"

// Options configures how CopyFile treats one output file. It is built once
// by the CLI layer from config and flags, then threaded explicitly through
// the orchestrator and its collaborators — there is no package-level
// mutable state anywhere in this engine.
type Options struct {
	// GapFill enables scan→verify→fill mode. When false, CopyFile performs
	// a sequential initial copy with zero-padding on read errors.
	GapFill bool

	// Compare runs full-file verification against the disc and writes
	// nothing, regardless of GapFill.
	Compare bool

	// NoOverwrite refuses to truncate an existing file in non-gap-fill
	// mode; CopyFile returns an error instead of overwriting it.
	NoOverwrite bool

	Strategy    fillexec.Strategy
	ErrorPolicy fillexec.ErrorPolicy
	RandomSeed  uint32
	SampleCount int
}
