package tblstruct

import (
	"errors"
	"fmt"

	"github.com/ukaji3/tblstruct-go/pkg/tblstruct/parser"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input is not a block document.
var ErrInvalidFormat = errors.New("invalid block document")

// ErrMalformedGraph indicates the block graph breaks a structural assumption.
var ErrMalformedGraph = parser.ErrMalformedGraph

// ErrOutOfRangeSpan indicates a merged cell lies outside its table.
var ErrOutOfRangeSpan = parser.ErrOutOfRangeSpan

// ExtractionError represents an error during reconstruction.
type ExtractionError struct {
	TableID   string // empty for document-level failures
	Component string // "decode", "placement", "normalize"
	Err       error
}

func (e *ExtractionError) Error() string {
	if e.TableID == "" {
		return fmt.Sprintf("extraction error (%s): %v", e.Component, e.Err)
	}
	return fmt.Sprintf("extraction error in table %q (%s): %v", e.TableID, e.Component, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(tableID, component string, err error) *ExtractionError {
	return &ExtractionError{
		TableID:   tableID,
		Component: component,
		Err:       err,
	}
}

// TableErrors returns every per-table ExtractionError contained in err.
func TableErrors(err error) []*ExtractionError {
	if err == nil {
		return nil
	}
	var out []*ExtractionError
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			out = append(out, TableErrors(e)...)
		}
		return out
	}
	var ee *ExtractionError
	if errors.As(err, &ee) && ee.TableID != "" {
		out = append(out, ee)
	}
	return out
}
