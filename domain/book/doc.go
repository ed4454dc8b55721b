// Package book implements the in-memory order ledger. Each market side
// keeps its resting orders under two views of the same set: a hash
// index by order ID for O(1) lookup and a red-black tree of price
// levels for ordered traversal. A BookPair joins the bid and ask sides
// for the commands that address an order by ID alone, and owns the
// process-wide execution counters.
//
// The ledger is bookkeeping only: execute commands report fills that
// happened elsewhere, nothing in here crosses orders. All state is
// single-writer and strictly sequential.
package book
