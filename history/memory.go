package history

import (
	"context"
	"sort"
	"sync"
	"time"
)

type memoryStore struct {
	records []Record
	now     func() time.Time
	lock    *sync.RWMutex
}

// NewMemoryStore returns a Store keeping records in process memory
func NewMemoryStore() Store {
	return NewMemoryStoreWithClock(time.Now)
}

/*
NewMemoryStoreWithClock is NewMemoryStore with the function used to get the
current time for Since windows.
*/
func NewMemoryStoreWithClock(now func() time.Time) Store {
	return &memoryStore{now: now, lock: &sync.RWMutex{}}
}

func (ms *memoryStore) Save(ctx context.Context, r Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ms.lock.Lock()
	defer ms.lock.Unlock()
	ms.records = append(ms.records, r)
	return nil
}

func (ms *memoryStore) Latest(ctx context.Context, algorithm string) (*Record, error) {
	records, err := ms.matching(ctx, algorithm, time.Time{})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return &records[0], nil
}

func (ms *memoryStore) Since(ctx context.Context, algorithm string, days int) ([]Record, error) {
	return ms.matching(ctx, algorithm, Cutoff(ms.now(), days))
}

func (ms *memoryStore) Close(ctx context.Context) error {
	return nil
}

func (ms *memoryStore) matching(ctx context.Context, algorithm string, from time.Time) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ms.lock.RLock()
	var result []Record
	for _, r := range ms.records {
		if r.Algorithm == algorithm && !r.CalculatedAt.Before(from) {
			result = append(result, r)
		}
	}
	ms.lock.RUnlock()
	SortNewestFirst(result)
	return result, nil
}

// SortNewestFirst sorts records by descending calculation time
func SortNewestFirst(records []Record) {
	sort.SliceStable(records, func(i, j int) bool { return records[i].CalculatedAt.After(records[j].CalculatedAt) })
}
