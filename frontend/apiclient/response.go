package apiclient

import (
	"bytes"
	"encoding/json"
)

// shape recognises one form of response body. matched=false means "not
// this shape, try the next one".
type shape func(body map[string]json.RawMessage, raw []byte, statusCode int) (payload json.RawMessage, matched bool, err error)

// shapes are tried in order; plainResource always matches.
func shapes(nestedKey string) []shape {
	return []shape{envelope(nestedKey), nestedResource(nestedKey), plainResource}
}

// envelope is {"success": bool, ...}. success:false is a failure whatever the status.
func envelope(nestedKey string) shape {
	return func(body map[string]json.RawMessage, raw []byte, statusCode int) (json.RawMessage, bool, error) {
		rawSuccess, ok := body["success"]
		if !ok {
			return nil, false, nil
		}
		var success bool
		if err := json.Unmarshal(rawSuccess, &success); err != nil {
			return nil, false, nil
		}
		if !success {
			return nil, true, &APIError{StatusCode: statusCode, Message: failureMessage(body, statusCode)}
		}
		if nested, ok := body[nestedKey]; ok && nestedKey != "" {
			return nested, true, nil
		}
		return raw, true, nil
	}
}

// nestedResource is a bare object carrying the resource under one key.
func nestedResource(nestedKey string) shape {
	return func(body map[string]json.RawMessage, raw []byte, statusCode int) (json.RawMessage, bool, error) {
		if nestedKey == "" {
			return nil, false, nil
		}
		nested, ok := body[nestedKey]
		if !ok || !isObject(nested) {
			return nil, false, nil
		}
		return nested, true, nil
	}
}

func plainResource(body map[string]json.RawMessage, raw []byte, statusCode int) (json.RawMessage, bool, error) {
	return raw, true, nil
}

// interpret normalises a response into its payload or an *APIError.
func interpret(statusCode int, raw []byte, nestedKey string) (json.RawMessage, error) {
	var body map[string]json.RawMessage
	isJSONObject := json.Unmarshal(raw, &body) == nil

	if statusCode < 200 || statusCode > 299 {
		if !isJSONObject {
			return nil, &APIError{StatusCode: statusCode, Message: httpErrorMessage(statusCode)}
		}
		return nil, &APIError{StatusCode: statusCode, Message: failureMessage(body, statusCode)}
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	if !isJSONObject {
		// arrays and scalars are plain resources
		return raw, nil
	}
	for _, s := range shapes(nestedKey) {
		if payload, matched, err := s(body, raw, statusCode); matched {
			return payload, err
		}
	}
	return raw, nil
}

// failureMessage prefers "error", then a string "detail", then the status fallback.
func failureMessage(body map[string]json.RawMessage, statusCode int) string {
	for _, key := range []string{"error", "detail"} {
		var msg string
		if raw, ok := body[key]; ok && json.Unmarshal(raw, &msg) == nil && msg != "" {
			return msg
		}
	}
	return httpErrorMessage(statusCode)
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
