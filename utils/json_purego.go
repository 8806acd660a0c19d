//go:build purego

package utils

import (
	"encoding/json" //nolint:depguard
)

func MarshalJSON(val any) ([]byte, error) {
	return json.Marshal(val)
}

func MarshalJSONIndent(val any, indent string) ([]byte, error) {
	return json.MarshalIndent(val, "", indent)
}

func UnmarshalJSON(data []byte, val any) error {
	return json.Unmarshal(data, val)
}
