//nolint
package store

import "github.com/cask-protocol/cask"

// Move references for all storage types into this package
// for shorter names everywhere.

type ReadOnlyKVStore = cask.ReadOnlyKVStore
type KVStore = cask.KVStore
type SetDeleter = cask.SetDeleter
type Batch = cask.Batch
type CacheableKVStore = cask.CacheableKVStore
type KVCacheWrap = cask.KVCacheWrap
