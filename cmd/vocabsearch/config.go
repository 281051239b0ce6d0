package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/vocabsearch/pkg/types"
)

// envKeyReplacer maps nested keys to env names: store.db_path reads
// VOCABSEARCH_STORE_DB_PATH.
var envKeyReplacer = strings.NewReplacer(".", "_")

// mustBind binds a flag to a viper key. It panics on a missing flag, which
// is a programming error caught at startup.
func mustBind(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding %s: %v", key, err))
	}
}

// bindEnv makes every key readable from a VOCABSEARCH_ variable.
func bindEnv() {
	viper.SetEnvPrefix("VOCABSEARCH")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()
}

// setDefaults seeds viper with DefaultConfig so config files, env and flags
// only need to name what they change.
func setDefaults() {
	d := types.DefaultConfig()

	viper.SetDefault("store.db_path", d.Store.DBPath)
	viper.SetDefault("store.table", d.Store.Table)
	viper.SetDefault("store.columns", d.Store.Columns)
	viper.SetDefault("store.delimiter", d.Store.Delimiter)
	viper.SetDefault("store.max_results", d.Store.MaxResults)

	viper.SetDefault("server.addr", d.Server.Addr)
	viper.SetDefault("server.result_ttl", d.Server.ResultTTL)
	viper.SetDefault("server.max_stored_results", d.Server.MaxStoredResults)
	viper.SetDefault("server.gzip", d.Server.Gzip)
	viper.SetDefault("server.requests_per_second", d.Server.RequestsPerSecond)
	viper.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	viper.SetDefault("server.write_timeout", d.Server.WriteTimeout)

	viper.SetDefault("client.base_url", d.Client.BaseURL)
	viper.SetDefault("client.timeout", d.Client.Timeout)
	viper.SetDefault("client.user_agent", "vocabsearch/"+version)
	viper.SetDefault("client.max_retries", d.Client.MaxRetries)

	viper.SetDefault("log.level", d.Log.Level)
	viper.SetDefault("log.format", d.Log.Format)
}

// loadConfig assembles the effective configuration from viper.
func loadConfig() types.Config {
	return types.Config{
		Store: types.StoreConfig{
			DBPath:     viper.GetString("store.db_path"),
			Table:      viper.GetString("store.table"),
			Columns:    viper.GetStringSlice("store.columns"),
			Delimiter:  viper.GetString("store.delimiter"),
			MaxResults: viper.GetInt("store.max_results"),
		},
		Server: types.ServerConfig{
			Addr:              viper.GetString("server.addr"),
			ResultTTL:         viper.GetDuration("server.result_ttl"),
			MaxStoredResults:  viper.GetUint64("server.max_stored_results"),
			Gzip:              viper.GetBool("server.gzip"),
			RequestsPerSecond: viper.GetFloat64("server.requests_per_second"),
			ReadTimeout:       viper.GetDuration("server.read_timeout"),
			WriteTimeout:      viper.GetDuration("server.write_timeout"),
		},
		Client: types.ClientConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("client.timeout"),
				UserAgent: viper.GetString("client.user_agent"),
			},
			BaseURL:    viper.GetString("client.base_url"),
			MaxRetries: viper.GetInt("client.max_retries"),
		},
		Log: types.LogConfig{
			Level:  viper.GetString("log.level"),
			Format: viper.GetString("log.format"),
		},
	}
}
