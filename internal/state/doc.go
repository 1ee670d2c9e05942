// Package state tracks the sync health of zonekit's streamed sources.
//
// # Overview
//
// Streams fetch on their own goroutines and report each outcome through
// resource.Options callbacks. Store turns those callbacks into a per-source
// record the footer can render: last attempt, last success, last error and
// the number of consecutive failures.
//
//	ok, fail := store.Callbacks("tasks")
//	tasks.Stream(ctx, resource.StreamOptions{
//		Options:  resource.Options{Success: ok, Error: fail},
//		Interval: cfg.PollInterval(),
//	})
//
// # Update Semantics
//
//	store.Record("tasks", nil)
//	→ LastSuccess = LastAttempt = now, ConsecutiveFailures = 0
//
//	store.Record("tasks", err)
//	→ LastAttempt = now, LastError = err, ConsecutiveFailures++
//	→ LastSuccess unchanged
//
// A source is offline after two consecutive failures.
//
// # Concurrency Model
//
// Record takes the write lock; Health and Snapshot take the read lock and
// return copies, errors included, so the UI never shares state with the
// poll goroutines.
//
// The zero Store is ready to use.
package state
