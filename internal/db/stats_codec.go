package db

import (
	"fmt"

	"github.com/udisondev/rpgcore/internal/model"
)

// encodeStats converts stats to the jsonb representation (attribute name → value).
func encodeStats(s model.Stats) map[string]float64 {
	out := make(map[string]float64, len(s))
	for attr, v := range s {
		out[attr.String()] = v
	}
	return out
}

// decodeStats parses the jsonb representation back into stats.
func decodeStats(raw map[string]float64) (model.Stats, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(model.Stats, len(raw))
	for name, v := range raw {
		attr, err := model.ParseAttribute(name)
		if err != nil {
			return nil, fmt.Errorf("decoding stats: %w", err)
		}
		out[attr] = v
	}
	return out, nil
}
