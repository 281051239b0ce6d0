// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/vocabsearch/pkg/types"
)

func TestLoadConfigDefaults(t *testing.T) {
	want := types.DefaultConfig()
	got := loadConfig()

	assert.Equal(t, want.Store, got.Store)
	assert.Equal(t, want.Server, got.Server)
	assert.Equal(t, want.Log, got.Log)
	assert.Equal(t, want.Client.BaseURL, got.Client.BaseURL)
	assert.Equal(t, want.Client.MaxRetries, got.Client.MaxRetries)
	assert.Equal(t, want.Client.Timeout, got.Client.Timeout)
	assert.Equal(t, "vocabsearch/"+version, got.Client.UserAgent)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("VOCABSEARCH_SERVER_ADDR", ":9090")
	t.Setenv("VOCABSEARCH_SERVER_RESULT_TTL", "45m")
	t.Setenv("VOCABSEARCH_STORE_DB_PATH", "/tmp/other.db")
	bindEnv()

	cfg := loadConfig()
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 45*time.Minute, cfg.Server.ResultTTL)
	assert.Equal(t, "/tmp/other.db", cfg.Store.DBPath)
}

func TestFlagOverridesDefault(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("db", "", "")
	fs.String("addr", "", "")
	mustBind("store.db_path", fs.Lookup("db"))
	mustBind("server.addr", fs.Lookup("addr"))
	t.Cleanup(func() {
		mustBind("store.db_path", rootCmd.PersistentFlags().Lookup("db"))
		mustBind("server.addr", serveCmd.Flags().Lookup("addr"))
	})

	cfg := loadConfig()
	assert.Equal(t, types.DefaultConfig().Store.DBPath, cfg.Store.DBPath, "unset flag leaves the default")

	require.NoError(t, fs.Parse([]string{"--db", "custom.db", "--addr", ":1234"}))
	cfg = loadConfig()
	assert.Equal(t, "custom.db", cfg.Store.DBPath)
	assert.Equal(t, ":1234", cfg.Server.Addr)
}

func TestFormatSearchOutput(t *testing.T) {
	columns := []string{"A", "B"}
	rows := []types.Row{{"x", "y"}}

	tests := []struct {
		name       string
		json, html bool
		rows       []types.Row
		want       []string
	}{
		{"text", false, false, rows, []string{"x", "y", "1 results"}},
		{"json", true, false, rows, []string{`"result"`, `"x"`, `"y"`}},
		{"json empty", true, false, nil, []string{`"result": []`}},
		{"html", false, true, rows, []string{`<table border="1"><tr><th>A</th><th>B</th></tr><tr><td>x</td><td>y</td></tr></table>`}},
		{"html empty", false, true, nil, []string{"<p>No results found.</p>"}},
		{"text empty", false, false, nil, []string{"No results found."}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b strings.Builder
			require.NoError(t, formatSearchOutput(&b, columns, tt.rows, tt.json, tt.html))
			for _, w := range tt.want {
				assert.Contains(t, b.String(), w)
			}
		})
	}
}
