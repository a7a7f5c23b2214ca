// Package resolve maps opaque image identifiers to object-storage
// locations.
//
// An identifier is a scheme-prefixed string supplied by the caller
// (e.g., "uva-lib:12345", "static:7", "dibs:ABC123-045"). Each scheme
// has its own syntax and its own convention for building a hierarchical
// storage key; the package routes an identifier through an ordered rule
// table and returns the bucket and key where the source asset lives.
//
// # Core Concepts
//
//  1. Rule: one anchored pattern plus a key-building recipe, covering a
//     single digit-length or token-shape variant of a scheme.
//
//  2. Table: an ordered, immutable sequence of Rules. Order encodes
//     priority; the first whole-string match wins.
//
//  3. Resolver: the service-facing entry point. It holds the current
//     Table behind an atomic pointer (hot reload swaps the whole table),
//     the configured bucket Targets, and a diagnostics Sink.
//
//  4. Address: the resolution result. The reserved NoAddress sentinel
//     ({none, none}) means no rule matched; callers treat it as "asset
//     not found".
//
// # Usage
//
//	table := resolve.DefaultTable()
//	targets := resolve.Targets{Primary: "iiif-assets", Secondary: "iiif-assets-archive"}
//	r, err := resolve.NewResolver(table, targets, resolve.NewLogSink(logger))
//	if err != nil {
//	    return err
//	}
//
//	addr := r.Resolve("uva-lib:12345")
//	if addr.IsNone() {
//	    // no scheme matched; serve a 404
//	}
//
// Resolution is a pure function of the identifier, the table, and the
// targets: no I/O, no hidden state, safe for unbounded concurrent use.
package resolve
