// Package pkg provides the core libraries for Gridtower dataset generation.
//
// # Overview
//
// Gridtower produces images of colored grids packed onto a fixed canvas,
// together with questions about those grids. The pkg directory is organized
// into these areas:
//
//  1. [palette] and [grid] - Colors, grid records and the content generator
//  2. [layout] - The packer that places grids without overlap
//  3. [question] - Question and answer generators plus the composer
//  4. [render] - PNG, SVG and layout JSON output
//  5. [pipeline] - Orchestration (generate → pack → render → ask)
//  6. [dataset] and [config] - Output directories and config files
//
// # Architecture
//
// The typical data flow through Gridtower:
//
//	grid.Generator (sizes, tile size, Markov colors)
//	         ↓
//	layout.Packer (random positions, shrink on failure)
//	         ↓
//	render (PNG/SVG/JSON)  +  question.Composer
//	         ↓
//	dataset.Writer (images/ and dataset.json)
//
// A batch that cannot be packed is retried by the pipeline with a fresh draw
// and narrower bounds. Failures are coded [errors.Error] values: a
// CONFIGURATION_ERROR when no grid can ever fit, a BATCH_FAILURE when the
// retries ran out.
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/gridtower/pkg/dataset"
//	    "github.com/matzehuels/gridtower/pkg/pipeline"
//	)
//
//	runner, _ := pipeline.NewRunner(pipeline.DefaultOptions())
//	w, _ := dataset.NewWriter("out")
//	stats, err := runner.Generate(context.Background(), 100, w.Add)
//	if err != nil {
//	    return err
//	}
//	w.Close()
//
// # Determinism
//
// Every datum draws from its own PCG stream seeded with seed+index. The same
// seed yields the same dataset regardless of the worker count.
package pkg
