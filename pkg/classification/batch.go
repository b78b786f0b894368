package classification

import (
	"errors"
	"math"
)

//ErrNotObject is returned when a batch payload is not a JSON object
var ErrNotObject = errors.New("batch response is not an object")

// NormalizeBatch converts a decoded batch response. Every element of
// results goes through Normalize; counts the backend left out are derived
// from the normalized results.
func NormalizeBatch(raw interface{}) (BatchResult, error) {
	obj, ok := raw.(map[string]interface{})
	if !ok || obj == nil {
		return BatchResult{}, ErrNotObject
	}

	var batch BatchResult
	items, _ := obj["results"].([]interface{})
	batch.Results = make([]Result, 0, len(items))
	intrusions := 0
	for _, item := range items {
		res := Normalize(item)
		if res.IsIntrusion {
			intrusions++
		}
		batch.Results = append(batch.Results, res)
	}

	batch.TotalCount = count(obj["total_count"], len(batch.Results))
	batch.IntrusionCount = count(obj["intrusion_count"], intrusions)
	batch.NormalCount = count(obj["normal_count"], len(batch.Results)-intrusions)
	return batch, nil
}

// DecodeBatch parses and normalizes a batch response body
func DecodeBatch(data []byte) (BatchResult, error) {
	raw, err := Parse(data)
	if err != nil {
		return BatchResult{}, err
	}
	return NormalizeBatch(raw)
}

//Empty reports whether the batch holds no results
func (b BatchResult) Empty() bool {
	return len(b.Results) == 0
}

func count(v interface{}, fallback int) int {
	val, ok := finiteNumber(v)
	// counts beyond int32 are garbage, not real batch sizes
	if !ok || val < 0 || val > math.MaxInt32 {
		return fallback
	}
	return int(val)
}
