package engine

import (
	"fmt"
	"math"

	"github.com/fxamacker/cbor/v2"

	"github.com/custodia-labs/sercha-tmx/internal/core/domain"
)

// encMode uses Core Deterministic Encoding: the same units always produce
// the same bytes.
var encMode cbor.EncMode

// decMode lifts the default element limits, which would otherwise reject
// documents of more than 131072 units.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("engine: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		MaxArrayElements: math.MaxInt32,
		MaxMapPairs:      math.MaxInt32,
	}.DecMode()
	if err != nil {
		panic("engine: CBOR decoder initialization failed: " + err.Error())
	}
}

// cloneUnits deep-copies units through an encode/decode round trip so no
// slice or map is shared across the boundary.
func cloneUnits(units []domain.TranslationUnit) ([]domain.TranslationUnit, error) {
	data, err := encMode.Marshal(units)
	if err != nil {
		return nil, fmt.Errorf("encode units: %w", err)
	}
	var out []domain.TranslationUnit
	if err := decMode.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode units: %w", err)
	}
	return out, nil
}
