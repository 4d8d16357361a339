// Package cmap provides a string-keyed concurrent map split into shards.
//
// Keys are spread across shards with murmur3, and each shard has its own
// RWMutex. Range and Count visit shards one at a time, so they do not see
// a consistent snapshot of the whole map.
//
//	m := cmap.New[*Conn]()
//	m.Set(id, c)
//	c, ok := m.Get(id)
package cmap
