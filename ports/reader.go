package ports

import (
	"context"
	"io"
)

// TabularReaderPort turns an uploaded file into pasted-text form so it can
// flow through the same detector as clipboard input
type TabularReaderPort interface {
	ReadText(ctx context.Context, filename string, r io.Reader) (string, error)
	Supports(filename string) bool
}
