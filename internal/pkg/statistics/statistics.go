package statistics

import (
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/pythh/hotmatch/app/repository"
	"github.com/pythh/hotmatch/internal/pkg/cache"
)

const (
	CacheKeyPairingsTotal = "statistics:pairings:total"
	CacheKeyPairingsToday = "statistics:pairings:today"
	CacheKeyShareViews    = "statistics:sharelinks:views"
	CacheExpiration       = 30 * time.Minute
)

// StatisticsData feeds the public landing ticker.
type StatisticsData struct {
	TodayPairings int
	TotalPairings int
	ShareViews    int
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// ShouldUpdateCache reports whether the cached aggregates are stale.
func ShouldUpdateCache() bool {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	return time.Since(lastCacheUpdate) > cacheUpdateInterval
}

// UpdateCacheIfNeeded refreshes the cached aggregates when stale.
func UpdateCacheIfNeeded() {
	if ShouldUpdateCache() {
		cacheUpdateMutex.Lock()
		defer cacheUpdateMutex.Unlock()

		if err := UpdateStatisticsCache(); err != nil {
			log.Printf("Failed to update statistics cache: %v", err)
		} else {
			lastCacheUpdate = time.Now()
		}
	}
}

// ResetCacheUpdateTimer forces the next UpdateCacheIfNeeded to refresh.
func ResetCacheUpdateTimer() {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	lastCacheUpdate = time.Time{}
}

// UpdateStatisticsCache recomputes all aggregates and stores them in the cache.
func UpdateStatisticsCache() error {
	repos := repository.GetGlobalRepositories()

	totalPairings, err := repos.Pairing.Count()
	if err != nil {
		log.Printf("Error counting pairings: %v", err)
		return err
	}

	todayStart, _ := time.Parse("2006-01-02", time.Now().Format("2006-01-02"))
	todayPairings, err := repos.Pairing.CountSince(todayStart)
	if err != nil {
		log.Printf("Error counting today's pairings: %v", err)
		return err
	}

	shareViews, err := repos.ShareLink.TotalViews()
	if err != nil {
		log.Printf("Error summing share views: %v", err)
		return err
	}

	if err := cache.Set(CacheKeyPairingsTotal, strconv.FormatInt(totalPairings, 10), CacheExpiration); err != nil {
		return err
	}
	if err := cache.Set(CacheKeyPairingsToday, strconv.FormatInt(todayPairings, 10), CacheExpiration); err != nil {
		return err
	}
	if err := cache.Set(CacheKeyShareViews, strconv.FormatInt(shareViews, 10), CacheExpiration); err != nil {
		return err
	}

	return nil
}

func getCachedCount(key string, fallback func() (int64, error)) int {
	val, err := cache.Get(key)
	if err != nil {
		count, err := fallback()
		if err != nil {
			log.Printf("Error computing statistic %s: %v", key, err)
			return 0
		}
		if err := cache.Set(key, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
			log.Printf("Error caching statistic %s: %v", key, err)
		}
		return int(count)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}
	return int(count)
}

// GetTotalPairings returns the total pairing count from cache or database.
func GetTotalPairings() int {
	return getCachedCount(CacheKeyPairingsTotal, func() (int64, error) {
		return repository.GetGlobalRepositories().Pairing.Count()
	})
}

// GetTodayPairings returns today's pairing count from cache or database.
func GetTodayPairings() int {
	return getCachedCount(CacheKeyPairingsToday, func() (int64, error) {
		todayStart, _ := time.Parse("2006-01-02", time.Now().Format("2006-01-02"))
		return repository.GetGlobalRepositories().Pairing.CountSince(todayStart)
	})
}

// GetShareViews returns the total share-link view count from cache or database.
func GetShareViews() int {
	return getCachedCount(CacheKeyShareViews, func() (int64, error) {
		return repository.GetGlobalRepositories().ShareLink.TotalViews()
	})
}

// GetStatisticsData returns all ticker statistics.
func GetStatisticsData() StatisticsData {
	UpdateCacheIfNeeded()

	return StatisticsData{
		TodayPairings: GetTodayPairings(),
		TotalPairings: GetTotalPairings(),
		ShareViews:    GetShareViews(),
	}
}
