/*
Copyright © 2026 Sellerdash <eng@sellerdash.io>
*/
package cmd

import (
	"net/http"
	"time"

	"github.com/sellerdash/sellertray/internal/api"
	"github.com/sellerdash/sellertray/internal/channel"
	"github.com/sellerdash/sellertray/internal/config"
	"github.com/sellerdash/sellertray/internal/ports"
	"github.com/sellerdash/sellertray/internal/search"
	"github.com/sellerdash/sellertray/internal/store"
)

// newBackend builds the REST backend from configuration. Constructed lazily
// so config is loaded before the first command runs.
func newBackend() ports.Backend {
	opts := []api.Option{}
	if token := config.Get("api_token", ""); token != "" {
		opts = append(opts, api.WithToken(token))
	}
	return api.NewClient(config.Get("api_url", "http://localhost:8080/api"), opts...)
}

// newChannel builds the live event channel from configuration.
func newChannel() ports.EventChannel {
	header := http.Header{}
	if token := config.Get("api_token", ""); token != "" {
		header.Set("Authorization", "Bearer "+token)
	}
	return channel.NewAdapter(config.Get("ws_url", "ws://localhost:8080/ws/notifications"), channel.Options{
		MaxAttempts: config.GetInt("reconnect_max_attempts", 10),
		MinDelay:    time.Duration(config.GetInt("reconnect_min_delay_ms", 500)) * time.Millisecond,
		MaxDelay:    time.Duration(config.GetInt("reconnect_max_delay_ms", 10000)) * time.Millisecond,
		Header:      header,
	})
}

// newStore builds the paginated working set scoped to the configured
// marketplaces.
func newStore(backend ports.Backend) *store.Store {
	return store.New(backend, store.Options{
		PageLimit: config.GetInt("page_limit", 20),
		ItemsCap:  config.GetInt("items_cap", 100),
		Query: store.QueryScope{
			MarketplaceIDs: config.GetStringSlice("marketplace_ids"),
		},
	})
}

// newSearchProvider builds the configured search provider, falling back to
// substring matching on an unknown strategy.
func newSearchProvider() search.Provider {
	provider, err := search.NewProvider(config.Get("search_strategy", "substring"))
	if err != nil {
		return search.NewSubstringProvider()
	}
	return provider
}
