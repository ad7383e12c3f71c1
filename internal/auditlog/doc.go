// Package auditlog persists an optional SQLite diagnostic journal of rip
// runs and per-file gap-fill reports.
//
// It exists purely for a human to inspect after a multi-pass rip of damaged
// media ("what did pass 3 change on file X"). The gap scanner never reads
// this database, and a rip proceeds identically whether or not the audit
// log is enabled: resumability is inferred entirely from the state of the
// destination files, never from a sidecar manifest.
package auditlog
