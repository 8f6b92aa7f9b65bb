package driven

import (
	"context"

	"github.com/custodia-labs/sercha-tmx/internal/core/domain"
)

// TreeDecoder turns raw document bytes into a nested RawNode tree.
// Repeatable elements are always materialised as sequences.
type TreeDecoder interface {
	// Decode parses data and returns the root element's node.
	// Failures wrap domain.ErrDecodeFailure.
	Decode(ctx context.Context, data []byte) (domain.RawNode, error)
}
