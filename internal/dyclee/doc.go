// Package dyclee implements an online, distance- and density-based
// clustering engine for evolving data streams.
//
// Responsibilities: per-sample microcluster maintenance over a uniform
// hyperbox grid (distance stage), periodic density classification and
// final-cluster assembly by face adjacency (density stage), and a
// pyramidal-time snapshot archive of the microcluster population.
//
// The engine is single-threaded: Ingest runs to completion before the
// next sample, and exactly one call site mutates state at a time.
// Snapshots hold independent deep copies and outlive their originals.
package dyclee
