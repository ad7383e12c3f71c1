// Package notifications sends ntfy push notifications about rip run
// progress. It is a pure side channel: nothing in the copy engine consults
// it, and a disabled or failing notifier never affects a rip's outcome.
package notifications
