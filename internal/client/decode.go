// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package client

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/pdiddy/vocabsearch/pkg/types"
)

// DecodeResults parses a {"result": [...]} body into rows.
//
// Each element of result is either an array of values, taken in order, or
// an object, whose fields are placed by columns; a field missing from the
// object becomes a blank cell. Scalars are rendered as their JSON text
// (strings unquoted), null as blank, nested arrays and objects as raw JSON.
func DecodeResults(body []byte, columns []string) ([]types.Row, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("malformed JSON response")
	}

	result := gjson.GetBytes(body, "result")
	if !result.Exists() || result.Type == gjson.Null {
		return nil, nil
	}
	if !result.IsArray() {
		return nil, fmt.Errorf("result is %s, want array", result.Type)
	}

	var (
		rows []types.Row
		err  error
		n    int
	)
	result.ForEach(func(_, v gjson.Result) bool {
		defer func() { n++ }()
		switch {
		case v.IsArray():
			items := v.Array()
			row := make(types.Row, len(items))
			for i, item := range items {
				row[i] = cell(item)
			}
			rows = append(rows, row)
		case v.IsObject():
			fields := v.Map()
			row := make(types.Row, len(columns))
			for i, col := range columns {
				if f, ok := fields[col]; ok {
					row[i] = cell(f)
				}
			}
			rows = append(rows, row)
		default:
			err = fmt.Errorf("result row %d is %s, want array or object", n, v.Type)
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func cell(v gjson.Result) string {
	switch v.Type {
	case gjson.Null:
		return ""
	case gjson.String:
		return v.Str
	case gjson.JSON:
		return v.Raw
	default:
		return v.String()
	}
}
