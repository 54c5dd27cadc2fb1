package store

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// idField is the JSON key carrying the document id
const idField = "id"

// encodeBody marshals a document to a JSON object without its id.
func encodeBody(doc any) (map[string]any, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}

	body := map[string]any{}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("document must encode to a JSON object: %w", err)
	}
	delete(body, idField)

	return body, nil
}

// decodeBodies decodes raw JSON objects into out, a pointer to a slice.
func decodeBodies(raws [][]byte, out any) error {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, raw := range raws {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(raw)
	}
	buf.WriteByte(']')

	if err := json.Unmarshal(buf.Bytes(), out); err != nil {
		return fmt.Errorf("failed to decode documents: %w", err)
	}
	return nil
}
