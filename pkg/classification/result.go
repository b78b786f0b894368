package classification

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

const (
	//PredictionUnknown labels a result built from an unusable payload
	PredictionUnknown = "Unknown"
	//PredictionAttack labels an intrusion when the backend gave no label
	PredictionAttack = "Attack"
	//PredictionNormal labels benign traffic when the backend gave no label
	PredictionNormal = "Normal"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type (
	//Result is a classification verdict after normalization. Confidence is
	//always finite.
	Result struct {
		Prediction        string  `json:"prediction"`
		IsIntrusion       bool    `json:"is_intrusion"`
		Confidence        float64 `json:"confidence"`
		AttackProbability float64 `json:"attack_probability"`
		NormalProbability float64 `json:"normal_probability"`
	}

	//BatchResult summarizes one batch prediction request
	BatchResult struct {
		TotalCount     int      `json:"total_count"`
		IntrusionCount int      `json:"intrusion_count"`
		NormalCount    int      `json:"normal_count"`
		Results        []Result `json:"results"`
	}
)

//Zero returns the result used whenever a payload cannot be interpreted
func Zero() Result {
	return Result{Prediction: PredictionUnknown}
}

// Normalize maps any decoded JSON value onto a Result. It never fails:
// anything other than an object yields Zero().
func Normalize(raw interface{}) Result {
	obj, ok := raw.(map[string]interface{})
	if !ok || obj == nil {
		return Zero()
	}

	res := Result{IsIntrusion: truthy(obj["is_intrusion"])}

	if conf, ok := finiteNumber(obj["confidence"]); ok {
		res.Confidence = conf
	} else if prob, ok := finiteNumber(obj["attack_probability"]); ok && res.IsIntrusion {
		res.Confidence = prob
	} else if prob, ok := finiteNumber(obj["normal_probability"]); ok && !res.IsIntrusion {
		res.Confidence = prob
	}

	res.Prediction = label(obj["prediction"])
	if res.Prediction == "" {
		if res.IsIntrusion {
			res.Prediction = PredictionAttack
		} else {
			res.Prediction = PredictionNormal
		}
	}

	res.AttackProbability = coerceNumber(obj["attack_probability"])
	res.NormalProbability = coerceNumber(obj["normal_probability"])
	return res
}

//Parse decodes a JSON document into generic values for Normalize
func Parse(data []byte) (interface{}, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// Decode parses and normalizes a single result payload. Invalid JSON yields
// Zero() together with the parse error.
func Decode(data []byte) (Result, error) {
	raw, err := Parse(data)
	if err != nil {
		return Zero(), err
	}
	return Normalize(raw), nil
}

//Flag converts a result into its trend value, 1 for an intrusion
func Flag(r Result) int {
	if r.IsIntrusion {
		return 1
	}
	return 0
}

//FormatConfidence renders a confidence the way the dashboard displays it
func FormatConfidence(c float64) string {
	return fmt.Sprintf("%.2f%%", c)
}

func truthy(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case float64:
		return val != 0 && !math.IsNaN(val)
	case string:
		return val != ""
	}
	return true
}

func finiteNumber(v interface{}) (float64, bool) {
	val, ok := v.(float64)
	if !ok || math.IsNaN(val) || math.IsInf(val, 0) {
		return 0, false
	}
	return val, true
}

func coerceNumber(v interface{}) float64 {
	var val float64
	switch typed := v.(type) {
	case float64:
		val = typed
	case bool:
		if typed {
			val = 1
		}
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return 0
		}
		val = parsed
	default:
		return 0
	}
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return 0
	}
	return val
}

func label(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}
