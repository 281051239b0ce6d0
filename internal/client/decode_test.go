// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/vocabsearch/pkg/types"
)

func TestDecodeResults(t *testing.T) {
	columns := []string{"A", "B", "C"}

	tests := []struct {
		name string
		body string
		want []types.Row
	}{
		{
			name: "array rows",
			body: `{"result":[["x","y","z"],["1","2","3"]]}`,
			want: []types.Row{{"x", "y", "z"}, {"1", "2", "3"}},
		},
		{
			name: "object rows follow column order",
			body: `{"result":[{"C":"z","A":"x","B":"y"}]}`,
			want: []types.Row{{"x", "y", "z"}},
		},
		{
			name: "object row missing field is blank",
			body: `{"result":[{"A":"x"}]}`,
			want: []types.Row{{"x", "", ""}},
		},
		{
			name: "scalar values",
			body: `{"result":[[42, 1.5, true, null, "s"]]}`,
			want: []types.Row{{"42", "1.5", "true", "", "s"}},
		},
		{
			name: "nested values kept as JSON",
			body: `{"result":[[["a"], {"k":1}]]}`,
			want: []types.Row{{`["a"]`, `{"k":1}`}},
		},
		{
			name: "short array row is kept as is",
			body: `{"result":[["x"]]}`,
			want: []types.Row{{"x"}},
		},
		{
			name: "empty",
			body: `{"result":[]}`,
			want: nil,
		},
		{
			name: "absent",
			body: `{"other":1}`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeResults([]byte(tt.body), columns)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeResultsMalformed(t *testing.T) {
	for _, body := range []string{``, `not json`, `{"result":[`} {
		_, err := DecodeResults([]byte(body), nil)
		assert.Error(t, err, "body %q", body)
	}
}
