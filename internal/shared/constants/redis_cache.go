package constants

import (
	"fmt"
	"time"
)

// Redis cache keys and TTLs for the medq application.
// Pattern: medq:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_STATIC_LONG = 24 * time.Hour // facility catalog barely changes

	TTL_DYNAMIC_MEDIUM = 10 * time.Minute // analytics aggregates
	TTL_DYNAMIC_SHORT  = 5 * time.Minute  // per-slot dashboard counts
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "medq"
)

// ================== FACILITIES MODULE ==================

const (
	CACHE_KEY_FACILITIES_ACTIVE = CACHE_PREFIX + ":facilities:active:all"
	CACHE_KEY_FACILITY_DETAIL   = CACHE_PREFIX + ":facilities:detail:uuid:" // + facility-id
)

const (
	TTL_FACILITIES_LIST = TTL_STATIC_LONG
	TTL_FACILITY_DETAIL = TTL_STATIC_LONG
)

// ================== ANALYTICS MODULE ==================

const (
	CACHE_KEY_ANALYTICS_OVERVIEW = CACHE_PREFIX + ":analytics:overview"
	CACHE_KEY_ANALYTICS_SLOTS    = CACHE_PREFIX + ":analytics:slots:facility:" // + facility:day:YYYY-MM-DD
)

const (
	TTL_ANALYTICS_OVERVIEW = TTL_DYNAMIC_MEDIUM
	TTL_ANALYTICS_SLOTS    = TTL_DYNAMIC_SHORT
)

// ================== CACHE INVALIDATION PATTERNS ==================

const (
	PATTERN_INVALIDATE_FACILITIES = CACHE_PREFIX + ":facilities:*"
	PATTERN_INVALIDATE_ANALYTICS  = CACHE_PREFIX + ":analytics:*"
)

// ================== HELPER FUNCTIONS ==================

func BuildFacilityDetailKey(facilityID string) string {
	return CACHE_KEY_FACILITY_DETAIL + facilityID
}

func BuildAnalyticsOverviewKey(facility string) string {
	if facility == "" {
		return CACHE_KEY_ANALYTICS_OVERVIEW
	}
	return CACHE_KEY_ANALYTICS_OVERVIEW + ":facility:" + facility
}

func BuildAnalyticsSlotsKey(facility, day string) string {
	return fmt.Sprintf("%s%s:day:%s", CACHE_KEY_ANALYTICS_SLOTS, facility, day)
}
