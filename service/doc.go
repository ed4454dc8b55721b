// Package service owns the command loop. The Processor is the only
// write entry point into the ledger: commands from the feed and
// queries from the API are funneled into one channel and applied by a
// single goroutine, so every query observes the book exactly as of the
// most recently applied mutation.
package service
