package constants

import "time"

// Centralized Redis cache keys and TTL values.
// Pattern: campusmind:{module}:{operation}:{identifier?}

const CachePrefix = "campusmind"

// TTL tiers. The sport and court catalogs change only when an administrator
// reseeds, so they sit in the long tier. Availability answers go stale the
// moment anyone books, so they get seconds, not minutes.
const (
	TTLCatalog      = 12 * time.Hour
	TTLAvailability = 30 * time.Second
)

// Catalog keys.
const (
	CacheKeySportsList  = CachePrefix + ":sports:list"
	CacheKeySportByName = CachePrefix + ":sports:by_name:" // + sport name
	CacheKeyCourtsList  = CachePrefix + ":courts:list"
)

// Availability keys.
const (
	// CacheKeyAvailability + ":{sport}:{date}:{start}-{end}"
	CacheKeyAvailability = CachePrefix + ":courts:available"
)

// Invalidation pattern, used with a SCAN-based pattern delete after an
// admission changes what is bookable.
const PatternInvalidateAvailability = CacheKeyAvailability + ":*"

// BuildAvailabilityKey assembles the cache key for one availability query.
func BuildAvailabilityKey(sport, date, startTime, endTime string) string {
	return CacheKeyAvailability + ":" + sport + ":" + date + ":" + startTime + "-" + endTime
}
