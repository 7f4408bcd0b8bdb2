package common

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// ParseJSON cleans and unmarshals a JSON object string into a type T.
// It handles common LLM quirks like surrounding markdown or extra text.
func ParseJSON[T any](response string) (T, error) {
	var zero T

	jsonStr, err := extractJSON(response, '{', '}')
	if err != nil {
		return zero, err
	}

	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return result, nil
}

// DecodeList normalizes an inference response into a list of raw elements.
// A response may be a bare JSON array, an object wrapping an array under the
// given key, or a single object (treated as a one-element list). Elements are
// returned raw so callers can drop individually malformed ones without
// aborting the batch.
func DecodeList(response, key string) ([]json.RawMessage, error) {
	jsonStr, err := extractJSON(response, 0, 0)
	if err != nil {
		return nil, err
	}

	parsed := gjson.Parse(jsonStr)
	switch {
	case parsed.IsArray():
		return rawElements(parsed), nil
	case parsed.IsObject():
		if inner := parsed.Get(key); inner.IsArray() {
			return rawElements(inner), nil
		}
		// Object without the known key: treat it as a single element.
		return []json.RawMessage{json.RawMessage(jsonStr)}, nil
	default:
		return nil, fmt.Errorf("response is neither a JSON array nor an object")
	}
}

func rawElements(list gjson.Result) []json.RawMessage {
	var elems []json.RawMessage
	list.ForEach(func(_, value gjson.Result) bool {
		elems = append(elems, json.RawMessage(value.Raw))
		return true
	})
	return elems
}

// extractJSON trims markdown fences and surrounding prose from an LLM
// response by scanning for the outermost JSON delimiters. Passing zero
// delimiters accepts either an object or an array, whichever opens first.
func extractJSON(response string, open, close byte) (string, error) {
	start := -1
	for i := 0; i < len(response); i++ {
		c := response[i]
		if c == open || (open == 0 && (c == '{' || c == '[')) {
			start = i
			if open == 0 {
				if c == '{' {
					open, close = '{', '}'
				} else {
					open, close = '[', ']'
				}
			}
			break
		}
	}
	if start == -1 {
		return "", fmt.Errorf("no JSON found in response")
	}

	end := -1
	for i := len(response) - 1; i >= start; i-- {
		if response[i] == close {
			end = i + 1
			break
		}
	}
	if end == -1 {
		return "", fmt.Errorf("no closing %q found in response", string(close))
	}

	jsonStr := response[start:end]
	if !gjson.Valid(jsonStr) {
		return "", fmt.Errorf("response contains invalid JSON")
	}
	return jsonStr, nil
}
