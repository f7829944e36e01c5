package inference

import (
	"reflect"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/adalundhe/owlreasoner/core/knowledge/swrl"
	"github.com/adalundhe/owlreasoner/core/ontology"
)

// DefaultExtensionCacheSize is the number of class extensions kept when no
// size is given.
const DefaultExtensionCacheSize = 4096

// extensionKey identifies one class extension of one ontology version. ont
// always holds a pointer, so the key stays hashable and the ontology cannot
// be collected while an entry refers to it.
type extensionKey struct {
	ont       ontology.Ontology
	version   uint64
	class     string
	reasoning bool
}

// ExtensionCache keeps class extensions across reasoner runs. Entries are
// keyed by ontology version, so a changed ontology never reads a stale
// extension; old versions age out of the LRU.
type ExtensionCache struct {
	cache  *lru.Cache[extensionKey, []ontology.Term]
	hits   atomic.Int64
	misses atomic.Int64
}

// NewExtensionCache creates a cache holding at most size extensions.
func NewExtensionCache(size int) *ExtensionCache {
	if size <= 0 {
		size = DefaultExtensionCacheSize
	}
	cache, _ := lru.New[extensionKey, []ontology.Term](size)
	return &ExtensionCache{cache: cache}
}

// IndividualsOf returns the cached extension of class, computing it on a miss.
// Ontologies that are not pointers have no stable identity and are never
// cached.
func (c *ExtensionCache) IndividualsOf(ont ontology.Ontology, class ontology.ClassExpression, reasoning bool) []ontology.Term {
	if reflect.TypeOf(ont).Kind() != reflect.Pointer {
		c.misses.Add(1)
		return ont.IndividualsOf(class, reasoning)
	}
	key := extensionKey{ont: ont, version: ont.Version(), class: class.String(), reasoning: reasoning}
	if members, ok := c.cache.Get(key); ok {
		c.hits.Add(1)
		return members
	}
	c.misses.Add(1)
	members := ont.IndividualsOf(class, reasoning)
	c.cache.Add(key, members)
	return members
}

// Len returns the number of cached extensions.
func (c *ExtensionCache) Len() int {
	return c.cache.Len()
}

// Purge drops every cached extension.
func (c *ExtensionCache) Purge() {
	c.cache.Purge()
}

// Stats returns the hit and miss counts since creation.
func (c *ExtensionCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

var _ swrl.ExtensionProvider = (*ExtensionCache)(nil)
