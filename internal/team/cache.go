package team

import (
	"slices"
	"strings"
	"sync"
)

// Key identifies a team by its members, independently of the order they are listed in.
type Key string

const keySeparator = "\x1f"

// KeyOf builds the key of the team made of names.
func KeyOf(names ...string) Key {
	sorted := slices.Clone(names)
	slices.Sort(sorted)

	return Key(strings.Join(sorted, keySeparator))
}

// Members splits the key back into the sorted member names.
func (k Key) Members() []string {
	if k == "" {
		return nil
	}

	return strings.Split(string(k), keySeparator)
}

// MeanCache maps a team to its mean score. Enumeration workers write to it concurrently.
// The partition search then only reads from it.
type MeanCache struct {
	mu    sync.RWMutex
	means map[Key]float64
}

func NewMeanCache() *MeanCache {
	return &MeanCache{means: make(map[Key]float64)}
}

func (c *MeanCache) Put(key Key, mean float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.means[key] = mean
}

func (c *MeanCache) Get(key Key) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	mean, ok := c.means[key]

	return mean, ok
}

func (c *MeanCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.means)
}
