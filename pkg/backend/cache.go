package backend

import (
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/lodgeworks/lodged/pkg/config"
	"github.com/lodgeworks/lodged/pkg/proto"
)

// cache holds advisory read caches. Entries are keyed on the full
// scoping+pagination tuple; nothing correctness-bearing lives here, and
// every successful decision purges the derived entries.
type cache struct {
	pages     *expirable.LRU[pageKey, proto.MemberPage]
	summaries *expirable.LRU[string, proto.CollectorSummary]
	scopes    *expirable.LRU[string, string]
}

// pageKey identifies a cached directory page. A struct key keeps distinct
// scoping tuples distinct regardless of what characters the collector name
// or search term contain.
type pageKey struct {
	term      string
	collector string
	page      int
	perPage   int
}

func newCache(cfg *config.Config) *cache {
	size := cfg.Cache.Size
	if size <= 0 {
		size = 1
	}
	return &cache{
		pages:     expirable.NewLRU[pageKey, proto.MemberPage](size, nil, cfg.CacheTTL()),
		summaries: expirable.NewLRU[string, proto.CollectorSummary](size, nil, cfg.CacheTTL()),
		// Collector assignment changes rarely so scope entries live longer.
		scopes: expirable.NewLRU[string, string](size, nil, cfg.ScopeTTL()),
	}
}

// invalidate drops every derived entry that a finalized decision could have
// changed.
func (c *cache) invalidate() {
	c.pages.Purge()
	c.summaries.Purge()
}
