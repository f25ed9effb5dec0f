package sqltype

import (
	"encoding/json"
	"fmt"
)

// UnmarshalJSON decodes a DuckDB logical type object, resolving type_info
// by its "type" field.
func (lt *LogicalType) UnmarshalJSON(data []byte) error {
	parsed, err := parseLogicalType(data)
	if err != nil {
		return err
	}
	*lt = parsed
	return nil
}

// parseLogicalType parses a LogicalType from JSON.
func parseLogicalType(data json.RawMessage) (LogicalType, error) {
	if len(data) == 0 || string(data) == "null" {
		return LogicalType{}, nil
	}

	var raw struct {
		ID       string          `json:"id"`
		TypeInfo json.RawMessage `json:"type_info"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return LogicalType{}, fmt.Errorf("invalid logical type: %w", err)
	}

	lt := LogicalType{
		ID: TypeID(raw.ID).Normalize(),
	}

	if len(raw.TypeInfo) > 0 && string(raw.TypeInfo) != "null" {
		typeInfo, err := parseExtraTypeInfo(raw.TypeInfo)
		if err != nil {
			return LogicalType{}, fmt.Errorf("invalid type info: %w", err)
		}
		lt.TypeInfo = typeInfo
	}

	return lt, nil
}

// parseExtraTypeInfo parses ExtraTypeInfo based on its "type" field.
// Unknown kinds are ignored.
func parseExtraTypeInfo(data json.RawMessage) (ExtraTypeInfo, error) {
	var typeCheck struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &typeCheck); err != nil {
		return nil, err
	}

	switch typeCheck.Type {
	case DecimalTypeInfoKind:
		var info DecimalTypeInfo
		if err := json.Unmarshal(data, &info); err != nil {
			return nil, err
		}
		return &info, nil
	case StringTypeInfoKind:
		var info StringTypeInfo
		if err := json.Unmarshal(data, &info); err != nil {
			return nil, err
		}
		return &info, nil
	default:
		return nil, nil
	}
}
