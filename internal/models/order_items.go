package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// OrderItems is the normalized item list of an order.
// Legacy records store either a single string or a list mixing strings and objects;
// both decode into a flat list of strings, objects keeping their compact JSON form.
type OrderItems []string

func (items OrderItems) MarshalJSON() ([]byte, error) {
	if items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(items))
}

func (items *OrderItems) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*items = nil
		return nil
	}

	switch data[0] {
	case '"':
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}
		*items = OrderItems{single}
	case '[':
		var elements []json.RawMessage
		if err := json.Unmarshal(data, &elements); err != nil {
			return err
		}
		flattened := make(OrderItems, 0, len(elements))
		for _, element := range elements {
			item, err := itemString(element)
			if err != nil {
				return err
			}
			flattened = append(flattened, item)
		}
		*items = flattened
	default:
		item, err := itemString(data)
		if err != nil {
			return err
		}
		*items = OrderItems{item}
	}

	return nil
}

func itemString(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}

	var compacted bytes.Buffer
	if err := json.Compact(&compacted, raw); err != nil {
		return "", fmt.Errorf("invalid order item: %w", err)
	}
	return compacted.String(), nil
}

func (items *OrderItems) Scan(value any) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*items = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported order items type %T", value)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		*items = nil
		return nil
	}

	// Rows written before items were JSON encoded hold plain text.
	if err := items.UnmarshalJSON(raw); err != nil {
		*items = OrderItems{string(raw)}
	}
	return nil
}

func (items OrderItems) Value() (driver.Value, error) {
	b, err := items.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
