package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// YoNameExistsKey returns the cache key for a Yo username existence lookup.
// Names are cached uppercased, the form they are validated and stored in.
func (r *CacheKeyStruct) YoNameExistsKey(name string) string {
	return fmt.Sprintf("yoname:%s:exists", name)
}

var CacheKey = NewCacheKeyStruct()
