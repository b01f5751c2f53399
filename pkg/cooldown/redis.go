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
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	DefaultRedisPrefix  = "cooldown:"
	defaultRedisTimeout = 2 * time.Second
)

var windowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
return {current, ttl}
`)

// RedisStore is a Store shared between processes, every key gets a fixed
// window of Per that admits Rate invocations.
type RedisStore struct {
	Client *redis.Client
	Prefix string
	// Fallback serves requests while redis is unreachable, errors are
	// returned when it is nil.
	Fallback Store
	Timeout  time.Duration
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		Client:   client,
		Prefix:   DefaultRedisPrefix,
		Fallback: NewMemoryStore(),
		Timeout:  defaultRedisTimeout,
	}
}

func (s *RedisStore) Allow(ctx context.Context, key string, cd Cooldown) (time.Duration, error) {
	if cd.Per <= 0 {
		return 0, nil
	}
	if !(cd.Rate > 0) {
		return cd.Per, nil
	}
	burst, limited := cd.burst()
	if !limited {
		return 0, nil
	}
	if s.Client == nil {
		return s.fallback(ctx, key, cd, errors.New("redis client is not configured"))
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = defaultRedisTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	redisKey := fmt.Sprintf("%s%s|%s", s.Prefix, key, cd)
	res, err := windowScript.Run(ctx, s.Client, []string{redisKey}, cd.Per.Milliseconds()).Result()
	if err != nil {
		return s.fallback(ctx, key, cd, errors.Wrapf(err, "failed to run cooldown script for %s", redisKey))
	}

	vals, ok := res.([]interface{})
	if !ok || len(vals) < 2 {
		return s.fallback(ctx, key, cd, errors.Errorf("unexpected cooldown script result %v", res))
	}
	count, _ := vals[0].(int64)
	ttl, _ := vals[1].(int64)
	if ttl < 0 {
		ttl = cd.Per.Milliseconds()
	}

	if count <= int64(burst) {
		return 0, nil
	}
	return time.Duration(ttl) * time.Millisecond, nil
}

func (s *RedisStore) fallback(ctx context.Context, key string, cd Cooldown, cause error) (time.Duration, error) {
	if s.Fallback == nil {
		return 0, cause
	}
	logrus.Warnf("cooldown store falls back to local buckets: %v", cause)
	return s.Fallback.Allow(ctx, key, cd)
}
