/*
Package rediscache provides an implementation of evaluation.Cache
that keeps results as JSON documents on redis keys that expire with
the cache time to live.
*/
package rediscache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pbanos/ripeness/evaluation"
	"gopkg.in/redis.v5"
)

type redisCache struct {
	rc     *redis.Client
	prefix string
}

/*
New builds an evaluation.Cache backed by a redis DB. Results are
kept at keys "prefix:evaluation:<algorithm>".
*/
func New(rc *redis.Client, prefix string) evaluation.Cache {
	return &redisCache{rc, prefix}
}

func (c *redisCache) Get(ctx context.Context, algorithm string) (*evaluation.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := c.rc.Get(c.key(algorithm)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("retrieving %s evaluation from redis: %v", algorithm, err)
	}
	r := &evaluation.Result{}
	err = json.Unmarshal(data, r)
	if err != nil {
		return nil, fmt.Errorf("decoding %s evaluation: %v", algorithm, err)
	}
	return r, nil
}

func (c *redisCache) Set(ctx context.Context, r *evaluation.Result, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding %s evaluation: %v", r.Algorithm, err)
	}
	err = c.rc.Set(c.key(r.Algorithm), data, ttl).Err()
	if err != nil {
		return fmt.Errorf("storing %s evaluation in redis: %v", r.Algorithm, err)
	}
	return nil
}

func (c *redisCache) Invalidate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	keys, err := c.rc.Keys(c.key("*")).Result()
	if err != nil {
		return fmt.Errorf("listing cached evaluations: %v", err)
	}
	if len(keys) == 0 {
		return nil
	}
	err = c.rc.Del(keys...).Err()
	if err != nil {
		return fmt.Errorf("dropping cached evaluations: %v", err)
	}
	return nil
}

func (c *redisCache) key(algorithm string) string {
	return fmt.Sprintf("%s:evaluation:%s", c.prefix, algorithm)
}
