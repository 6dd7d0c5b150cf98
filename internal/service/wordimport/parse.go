package wordimport

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// ParseEntries splits an import payload into raw entries. The payload is
// either a JSON array or an object with an "entries" array. Entries are not
// inspected; a malformed entry is reported per entry by ImportWords.
func ParseEntries(data []byte) ([]json.RawMessage, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: body is not valid JSON", ErrInvalidPayload)
	}

	root := gjson.ParseBytes(data)
	list := root
	if root.IsObject() {
		list = root.Get("entries")
		if !list.Exists() {
			return nil, fmt.Errorf("%w: object payload has no \"entries\" field", ErrInvalidPayload)
		}
	}
	if !list.IsArray() {
		return nil, fmt.Errorf("%w: expected an array of entries", ErrInvalidPayload)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(list.Raw), &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if entries == nil {
		entries = []json.RawMessage{}
	}
	return entries, nil
}
