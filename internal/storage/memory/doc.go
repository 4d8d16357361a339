// Package memory provides the in-memory type stores for rudis.
//
// There is one store per value type: strings, hashes, lists, sets, sorted
// sets and bitmaps. Each store owns a single mutex that serializes every
// operation on it, so an operation on one key is atomic with respect to
// every other operation on the same store. Stores never share state and a
// key name may exist in several of them at once.
//
// Nothing here is persisted and there is no eviction or expiry.
package memory
