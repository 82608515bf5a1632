// Package searchindex declares the optional natural-language search
// hand-off contract (spec §6 Text-index contract). The core only
// produces SearchDocument values and calls Indexer; it never queries a
// text index back.
package searchindex

import (
	"context"

	"github.com/HendrikReh/chessbuddy/internal/chessmodel"
)

// Indexer persists a search document built from a core entity. Concrete
// implementations (e.g. a dedicated text-search service) are external
// collaborators.
type Indexer interface {
	UpsertSearchDocument(ctx context.Context, doc chessmodel.SearchDocument) error
}
