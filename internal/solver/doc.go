// Package solver counts arrangements for whole puzzle inputs.
//
// Records are independent, so a Solver maps spring.Arrangements over them
// with a bounded worker pool and sums the results. Each worker builds a
// fresh Counter and Cache per record; nothing mutable is shared between
// records except the optional durable ResultCache, which is keyed by the
// record's content digest and holds only final counts.
//
// Unfolding is applied once, before the first reduction of each record.
package solver
