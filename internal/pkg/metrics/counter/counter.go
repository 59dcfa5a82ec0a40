package counter

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/pythh/hotmatch/app/repository"
	"github.com/pythh/hotmatch/internal/pkg/cache"
)

const shareViewsKey = "sharelink:counters:views"

// AddShareView increments the pending view counter for a share link in Redis.
// Views are buffered here and applied to MySQL in batches so resolving a
// popular link never does a synchronous row update per hit.
func AddShareView(linkID uint) error {
	ctx := context.Background()
	field := strconv.FormatUint(uint64(linkID), 10)
	return cache.GetClient().HIncrBy(ctx, shareViewsKey, field, 1).Err()
}

// Flush drains pending view counts and applies them to the database.
func Flush() error {
	ctx := context.Background()
	rdb := cache.GetClient()

	// Atomically move the hash to a temp key for draining, so increments
	// arriving mid-flush land in a fresh hash instead of being lost.
	tmpKey := fmt.Sprintf("%s:tmp:%d", shareViewsKey, time.Now().UnixNano())
	if err := rdb.Do(ctx, "RENAME", shareViewsKey, tmpKey).Err(); err != nil {
		// If the key does not exist, nothing to flush
		if strings.Contains(strings.ToLower(err.Error()), "no such key") {
			return nil
		}
		return err
	}

	fields, err := rdb.HGetAll(ctx, tmpKey).Result()
	if err != nil {
		return err
	}

	counts := make(map[uint]int64, len(fields))
	for field, raw := range fields {
		id, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			log.Warnf("[ViewCounter] Skipping malformed counter field %q", field)
			continue
		}
		delta, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			log.Warnf("[ViewCounter] Skipping malformed counter value %q for link %d", raw, id)
			continue
		}
		counts[uint(id)] = delta
	}

	if len(counts) > 0 {
		repo := repository.GetGlobalFactory().GetShareLinkRepository()
		if err := repo.ApplyViewCounts(counts); err != nil {
			return err
		}
	}

	return rdb.Del(ctx, tmpKey).Err()
}

var (
	flusherMu      sync.Mutex
	flusherStop    chan struct{}
	flusherRunning bool
	flusherWG      sync.WaitGroup
)

// StartFlusher runs Flush on the given interval until StopFlusher is called.
func StartFlusher(interval time.Duration) {
	flusherMu.Lock()
	defer flusherMu.Unlock()

	if flusherRunning {
		return
	}
	flusherRunning = true
	flusherStop = make(chan struct{})

	flusherWG.Add(1)
	go func() {
		defer flusherWG.Done()
		log.Infof("[ViewCounter] Flusher running (interval=%s)", interval)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-flusherStop:
				// Final drain on shutdown.
				if err := Flush(); err != nil {
					log.Errorf("[ViewCounter] Final flush failed: %v", err)
				}
				log.Info("[ViewCounter] Flusher stopped")
				return
			case <-ticker.C:
				if err := Flush(); err != nil {
					log.Errorf("[ViewCounter] Flush failed: %v", err)
				}
			}
		}
	}()
}

// StopFlusher stops the background flusher and waits for the final drain.
func StopFlusher() {
	flusherMu.Lock()
	defer flusherMu.Unlock()

	if !flusherRunning {
		return
	}
	close(flusherStop)
	flusherRunning = false
	flusherWG.Wait()
}
