// Package tblstruct reconstructs structured tables from the block graph
// produced by a document text and table extraction service.
package tblstruct

import (
	"io"

	"github.com/charmbracelet/log"
)

// Options configures reconstruction behavior.
type Options struct {
	// PromoteHeaders specifies whether the first row of a table holding a
	// COLUMN_HEADER cell becomes the column names.
	// If nil, defaults to true.
	PromoteHeaders *bool
	// NormalizeText applies Unicode NFKC normalization to line text before placement.
	NormalizeText bool
	// Workers is the number of tables normalized concurrently.
	// Values below 1 mean sequential processing.
	Workers int
	// Logger receives progress and diagnostic messages.
	// If nil, nothing is logged.
	Logger *log.Logger
}

// DefaultOptions returns default reconstruction options.
func DefaultOptions() Options {
	return Options{
		Workers: 1,
	}
}

// ShouldPromoteHeaders returns whether header rows are promoted to column names.
func (o Options) ShouldPromoteHeaders() bool {
	if o.PromoteHeaders != nil {
		return *o.PromoteHeaders
	}
	return true
}

// WorkerCount returns the effective number of concurrent table workers.
func (o Options) WorkerCount() int {
	if o.Workers < 1 {
		return 1
	}
	return o.Workers
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.New(io.Discard)
}
