package corpus

import (
	"encoding/json"
	"fmt"

	"github.com/hirelink/talentsearch/internal/domain"
)

// parseVector decodes a JSONPath projection of an embedding vector.
// JSON.GET with a $-path wraps each match in an array.
func parseVector(data []byte) ([]float32, error) {
	var matches [][]float32
	if err := json.Unmarshal(data, &matches); err != nil {
		return nil, fmt.Errorf("decode embedding: %w: %w", domain.ErrDataAccess, err)
	}
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], nil
}
