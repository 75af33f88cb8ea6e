package params

import (
	"encoding/json"
	"fmt"
)

// Record is one persisted parameter: its name and value array.
type Record struct {
	Name  string `json:"name"`
	Value []any  `json:"value"`
}

// Document is the on-disk shape of a parameter file.
type Document struct {
	Parameters []Record          `json:"parameters"`
	Children   []json.RawMessage `json:"children"`
}

// Encode renders doc as indented JSON.
func Encode(doc Document) ([]byte, error) {
	if doc.Parameters == nil {
		doc.Parameters = []Record{}
	}
	if doc.Children == nil {
		doc.Children = []json.RawMessage{}
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Decode parses a parameter file. Records without a name are dropped.
func Decode(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	records := doc.Parameters[:0]
	for _, r := range doc.Parameters {
		if r.Name == "" {
			continue
		}
		records = append(records, r)
	}
	doc.Parameters = records
	return doc, nil
}
