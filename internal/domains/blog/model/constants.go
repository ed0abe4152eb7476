package model

import "time"

const (
	// WordsPerMinute drives the read time estimate.
	WordsPerMinute = 200

	// SlugSuffixRange bounds the random suffix appended on a slug collision.
	SlugSuffixRange = 10000

	CacheKeyPrefix = "blog:"
	CacheTTL       = 15 * time.Minute

	DefaultSearchLimit = 20
	MaxSearchLimit     = 50

	MaxImages = 20
)
