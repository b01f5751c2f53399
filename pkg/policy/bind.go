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

package policy

import (
	"math"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/sealerio/cooldown/pkg/cmdtree"
	"github.com/sealerio/cooldown/pkg/cooldown"
	"github.com/sealerio/cooldown/pkg/groupcooldown"
)

// NewStore creates the Store configured by b.
func NewStore(b Backend) (cooldown.Store, error) {
	switch b.Type {
	case "", BackendMemory:
		return cooldown.NewMemoryStore(), nil
	case BackendRedis:
		s := cooldown.NewRedisStore(redis.NewClient(&redis.Options{
			Addr:     b.Redis.Addr,
			Password: b.Redis.Password,
			DB:       b.Redis.DB,
		}))
		if b.Redis.Prefix != "" {
			s.Prefix = b.Redis.Prefix
		}
		return s, nil
	default:
		return nil, errors.Errorf("unknown cooldown backend %q", b.Type)
	}
}

// Bind validates cfg and applies every cooldown policy of it to target, all
// policies share one store.
func Bind(target interface{}, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid cooldown config")
	}

	store, err := NewStore(cfg.Backend)
	if err != nil {
		return err
	}

	for _, p := range cfg.Cooldowns {
		d, err := p.Decorator(store)
		if err != nil {
			return errors.Wrapf(err, "failed to build cooldown %q", p.Name)
		}
		if _, err := d(target); err != nil {
			return errors.Wrapf(err, "failed to bind cooldown %q", p.Name)
		}
		logrus.Debugf("bound cooldown %q (%g every %gs, key %s) excluding %v", p.Name, p.Rate, p.Per, p.Key, p.Exclude)
	}
	return nil
}

// Decorator builds the decorator of p. Policies with exempt users or
// overrides are dynamic, all others are fixed.
func (p *Policy) Decorator(store cooldown.Store) (groupcooldown.Decorator, error) {
	key, err := cooldown.KeyByName(p.Key)
	if err != nil {
		return nil, err
	}

	excluded := sets.NewString(p.Exclude...)
	opts := []cooldown.Option{cooldown.WithStore(store), cooldown.WithNamespace(p.Name)}

	if len(p.Exempt) == 0 && len(p.Overrides) == 0 {
		return groupcooldown.Fixed(p.Rate, p.Per, key, excluded, opts...)
	}
	return groupcooldown.Dynamic(p.Factory(), key, excluded, opts...)
}

// Factory returns the cooldown of an invocation: none for exempt users, the
// override of the user if any, the policy's own cooldown otherwise.
func (p *Policy) Factory() cooldown.Factory {
	exempt := sets.NewString(p.Exempt...)
	overrides := map[string]cooldown.Cooldown{}
	for _, o := range p.Overrides {
		overrides[o.User] = cooldown.FromSeconds(math.Abs(o.Rate), math.Abs(o.Per))
	}
	fallback := cooldown.FromSeconds(math.Abs(p.Rate), math.Abs(p.Per))

	return func(inv *cmdtree.Invocation) *cooldown.Cooldown {
		if exempt.Has(inv.User) {
			return nil
		}
		if cd, ok := overrides[inv.User]; ok {
			return &cd
		}
		cd := fallback
		return &cd
	}
}
