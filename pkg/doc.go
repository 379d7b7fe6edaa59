// Package pkg provides the core libraries for mindmap spatial layout.
//
// # Overview
//
// The engine turns a mindmap tree (parent/order fields as the single
// source of truth) into node positions, resolves overlaps after local
// moves, and applies structural edits atomically. The pkg directory is
// organized into four main areas:
//
//  1. [tree] - Canonical data model and structural edits
//  2. [layout] - Orientation mapping, radial/linear solvers, overlap resolution
//  3. [doc], [export] - Serialization boundaries (JSON documents, position maps, DOT/SVG/PNG)
//  4. [pipeline], [cache] - Orchestration (load → layout → export) and layout caching
//
// # Architecture
//
// The typical data flow:
//
//	JSON document
//	         ↓
//	    [doc] package (parse + validate the tree)
//	         ↓
//	    [layout] package (orientation mapping, radial or linear placement)
//	         ↓
//	    [export] package (position map, Graphviz snapshots)
//	         ↓
//	    JSON/DOT/SVG/PNG output
//
// Interactive flows add [drag] (drag-session state machine over a
// [layout] spatial index) and [tree] edits proposed from drop targets.
//
// # Quick Start
//
// Lay out a document and export the position map:
//
//	import (
//	    "context"
//	    "github.com/kosirm/mindmap-writer-sub008/pkg/layout"
//	    "github.com/kosirm/mindmap-writer-sub008/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil)
//	res, _ := runner.Execute(context.Background(), pipeline.Options{
//	    Input:       "map.json",
//	    Orientation: layout.Clockwise,
//	    Formats:     []string{"json", "svg"},
//	})
//	positions := res.Layout.Positions
//
// # Main Packages
//
// ## Core Domain Logic
//
// [tree] - Single-rooted tree of sized nodes. Implements reparent and
// reorder edits with cycle prevention; edits validate as a whole and
// apply atomically.
//
// [layout] - The spatial engine: bijective orientation mapping for the
// four layout modes, the radial solver (sector allocation, relaxation,
// capacity growth), the linear solver (subtree-extent stacking), the
// rigid-body overlap resolver and an R-tree hit-testing index.
//
// [drag] - Drag-session state machine for interactive moves: target
// classification, position snapshots for cancel, single-shot commit
// through the edit executor.
//
// ## Boundaries
//
// [doc] - JSON document serialization with round-trip fidelity.
//
// [export] - Position-map JSON and Graphviz-based DOT/SVG/PNG snapshots.
//
// ## Infrastructure
//
// [cache] - Layout-result caching keyed by tree fingerprint, orientation
// and config. File backend for the CLI, Redis for shared deployments,
// null when disabled.
//
// [pipeline] - The load → validate → layout → export flow shared by the
// CLI and the TUI.
//
// [observability] - Hook interfaces for metrics and tracing without hard
// backend dependencies.
package pkg
