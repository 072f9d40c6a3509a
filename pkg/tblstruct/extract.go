package tblstruct

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/ukaji3/tblstruct-go/pkg/tblstruct/models"
	"github.com/ukaji3/tblstruct-go/pkg/tblstruct/parser"
)

// Extract reconstructs the tables of a block document stored as JSON at path.
func Extract(path string, opts Options) (*models.TableSet, error) {
	return ExtractFiles([]string{path}, opts)
}

// ExtractFiles reconstructs tables from one or more JSON files holding the
// result pages of a single analysis job. Blocks are concatenated in argument order.
//
// When only some tables fail, the returned set holds the successful tables and
// the error joins one *ExtractionError per failed table.
func ExtractFiles(paths []string, opts Options) (*models.TableSet, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no input files", ErrInvalidFormat)
	}

	doc := &models.Document{}
	for _, path := range paths {
		part, err := loadDocument(path)
		if err != nil {
			return nil, err
		}
		doc.Blocks = append(doc.Blocks, part.Blocks...)
		if doc.DocumentMetadata == nil {
			doc.DocumentMetadata = part.DocumentMetadata
		}
	}

	set, err := Reconstruct(context.Background(), doc, opts)
	if set != nil {
		set.Source = filepath.Base(paths[0])
	}
	return set, err
}

// ExtractReader reconstructs tables from a JSON block document read from r.
func ExtractReader(r io.Reader, opts Options) (*models.TableSet, error) {
	doc, err := DecodeDocument(r)
	if err != nil {
		return nil, err
	}
	return Reconstruct(context.Background(), doc, opts)
}

// DecodeDocument parses a JSON block document.
func DecodeDocument(r io.Reader) (*models.Document, error) {
	var doc models.Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, NewExtractionError("", "decode", fmt.Errorf("%w: %w", ErrInvalidFormat, err))
	}
	if doc.Blocks == nil {
		return nil, NewExtractionError("", "decode", fmt.Errorf("%w: missing Blocks", ErrInvalidFormat))
	}
	return &doc, nil
}

func loadDocument(path string) (*models.Document, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := DecodeDocument(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Reconstruct rebuilds every table of doc.
//
// A malformed line aborts the whole document. Failures confined to one table
// do not stop its siblings: the failed table is left out of the result and
// reported through the returned error.
func Reconstruct(ctx context.Context, doc *models.Document, opts Options) (*models.TableSet, error) {
	logger := opts.logger()

	blocks := doc.Blocks
	if opts.NormalizeText {
		blocks = normalizeBlocks(blocks)
	}

	set := parser.ClassifyBlocks(blocks)
	idx := parser.BuildIndices(set)
	logger.Debug("classified blocks",
		"blocks", len(blocks),
		"tables", len(set.Tables),
		"cells", len(set.Cells),
		"merged_cells", len(set.MergedCells),
		"lines", len(set.Lines))

	placement, err := parser.PlaceLines(set, idx)
	if err != nil {
		return nil, NewExtractionError("", "placement", err)
	}
	for _, lineID := range placement.Dropped {
		logger.Debug("line not in any table", "line", lineID)
	}

	// Table ids may repeat in a damaged graph; each id is normalized once.
	var tableIDs []string
	seen := make(map[string]bool, len(set.Tables))
	for _, tb := range set.Tables {
		if !seen[tb.ID] {
			seen[tb.ID] = true
			tableIDs = append(tableIDs, tb.ID)
		}
	}

	tables := make([]models.Table, len(tableIDs))
	tableErrs := make([]error, len(tableIDs))
	promote := opts.ShouldPromoteHeaders()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.WorkerCount())
	for i, id := range tableIDs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			table, err := parser.NormalizeTable(id, placement, set, idx, promote)
			if err != nil {
				tableErrs[i] = NewExtractionError(id, "normalize", err)
				return nil
			}
			tables[i] = table
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &models.TableSet{
		TableIDs: []string{},
		Tables:   make(map[string]models.Table, len(tableIDs)),
		Stats: models.Stats{
			Blocks:       len(blocks),
			Tables:       len(tableIDs),
			Cells:        len(set.Cells),
			MergedCells:  len(set.MergedCells),
			Lines:        len(set.Lines),
			PlacedLines:  placement.Placed,
			DroppedLines: len(placement.Dropped),
		},
	}
	var failed []error
	for i, id := range tableIDs {
		if tableErrs[i] != nil {
			logger.Warn("table skipped", "table", id, "err", tableErrs[i])
			failed = append(failed, tableErrs[i])
			continue
		}
		result.TableIDs = append(result.TableIDs, id)
		result.Tables[id] = tables[i]
	}

	logger.Info("reconstructed tables",
		"tables", len(result.TableIDs),
		"failed", len(failed),
		"placed_lines", placement.Placed,
		"dropped_lines", len(placement.Dropped))

	return result, errors.Join(failed...)
}
