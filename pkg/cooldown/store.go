// Copyright © 2022 Alibaba Group Holding Ltd.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cooldown

import (
	"context"
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Store keeps the buckets of every key.
type Store interface {
	// Allow consumes one invocation from the bucket of key and returns how long
	// the caller has to wait before retrying, zero if the invocation is allowed.
	Allow(ctx context.Context, key string, cd Cooldown) (time.Duration, error)
}

type memoryBucket struct {
	limiter  *rate.Limiter
	refill   time.Duration
	lastSeen time.Time
}

// MemoryStore is a process local Store backed by token buckets.
type MemoryStore struct {
	mu      sync.Mutex
	buckets map[string]*memoryBucket
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		buckets: map[string]*memoryBucket{},
		now:     time.Now,
	}
}

func (s *MemoryStore) Allow(_ context.Context, key string, cd Cooldown) (time.Duration, error) {
	if cd.Per <= 0 {
		return 0, nil
	}
	// NaN rates are treated like zero rates.
	if !(cd.Rate > 0) {
		return cd.Per, nil
	}
	burst, limited := cd.burst()
	if !limited {
		return 0, nil
	}

	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.prune(now)

	id := key + "|" + cd.String()
	b, ok := s.buckets[id]
	if !ok {
		b = newMemoryBucket(cd, burst)
		s.buckets[id] = b
	}
	b.lastSeen = now

	r := b.limiter.ReserveN(now, 1)
	if !r.OK() {
		return cd.Per, nil
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return delay, nil
	}
	return 0, nil
}

// Len returns the number of live buckets.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buckets)
}

// prune drops buckets that have been idle long enough to be full again.
func (s *MemoryStore) prune(now time.Time) {
	for id, b := range s.buckets {
		if now.Sub(b.lastSeen) >= b.refill {
			delete(s.buckets, id)
		}
	}
}

func newMemoryBucket(cd Cooldown, burst int) *memoryBucket {
	perSecond := cd.Rate / cd.Per.Seconds()
	refill := time.Duration(math.MaxInt64)
	if r := float64(burst) / perSecond * float64(time.Second); r < math.MaxInt64 {
		refill = time.Duration(r)
	}
	return &memoryBucket{
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
		refill:  refill,
	}
}
