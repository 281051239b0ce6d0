// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package results holds search result sets under opaque search keys until
// they expire.
package results

import (
	"time"

	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"

	"github.com/pdiddy/vocabsearch/pkg/types"
)

const (
	defaultTTL      = 30 * time.Minute
	defaultCapacity = 1000
)

// Vault maps search keys to result sets. Entries expire after the TTL given
// to NewVault; when capacity is reached the least recently used set is
// evicted. Both Put and Get count as a use. A Vault is safe for concurrent use.
type Vault struct {
	cache *ttlcache.Cache[string, types.ResultSet]
	now   func() time.Time
}

// NewVault returns a Vault. Zero ttl or capacity select the defaults.
func NewVault(ttl time.Duration, capacity uint64) *Vault {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if capacity == 0 {
		capacity = defaultCapacity
	}
	return &Vault{
		cache: ttlcache.New[string, types.ResultSet](
			ttlcache.WithTTL[string, types.ResultSet](ttl),
			ttlcache.WithCapacity[string, types.ResultSet](capacity),
			ttlcache.WithDisableTouchOnHit[string, types.ResultSet](),
		),
		now: time.Now,
	}
}

// Start runs the expiry loop until Stop is called. It blocks.
func (v *Vault) Start() { v.cache.Start() }

// Stop ends the expiry loop.
func (v *Vault) Stop() { v.cache.Stop() }

// Put stores set under a new random search key and returns the key. The
// stored copy carries the key and a creation time.
func (v *Vault) Put(set types.ResultSet) string {
	set.Key = uuid.NewString()
	if set.CreatedAt.IsZero() {
		set.CreatedAt = v.now()
	}
	v.cache.Set(set.Key, set, ttlcache.DefaultTTL)
	return set.Key
}

// Get returns the result set stored under key.
func (v *Vault) Get(key string) (types.ResultSet, bool) {
	item := v.cache.Get(key)
	if item == nil || item.IsExpired() {
		return types.ResultSet{}, false
	}
	return item.Value(), true
}

// Delete removes key.
func (v *Vault) Delete(key string) { v.cache.Delete(key) }

// Len returns the number of stored result sets, including expired sets not
// yet collected.
func (v *Vault) Len() int { return v.cache.Len() }
