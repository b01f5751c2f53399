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
	"fmt"
	"math"

	"github.com/hashicorp/go-multierror"
	"github.com/imdario/mergo"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/sealerio/cooldown/pkg/cooldown"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config is the `backend` and `cooldowns` section of a config file:
//
//	backend:
//	  type: redis
//	  redis:
//	    addr: 127.0.0.1:6379
//	cooldowns:
//	- name: default
//	  rate: 1
//	  per: 5
//	  key: user
//	  exclude: [alpha]
//	  exempt: [root]
//	  overrides:
//	  - user: ci
//	    rate: 10
//	    per: 5
type Config struct {
	Backend   Backend  `mapstructure:"backend" yaml:"backend"`
	Cooldowns []Policy `mapstructure:"cooldowns" yaml:"cooldowns"`
}

type Backend struct {
	Type  string `mapstructure:"type" yaml:"type"`
	Redis Redis  `mapstructure:"redis" yaml:"redis"`
}

type Redis struct {
	Addr     string `mapstructure:"addr" yaml:"addr"`
	Password string `mapstructure:"password" yaml:"password"`
	DB       int    `mapstructure:"db" yaml:"db"`
	Prefix   string `mapstructure:"prefix" yaml:"prefix"`
}

// Policy binds one cooldown to a command tree.
type Policy struct {
	// Name identifies the buckets of the policy, policies with the same name
	// in different processes share buckets through a redis backend.
	Name string  `mapstructure:"name" yaml:"name"`
	Rate float64 `mapstructure:"rate" yaml:"rate"`
	// Per is the period in seconds.
	Per float64 `mapstructure:"per" yaml:"per"`
	// Key is one of user, global, command or user-command.
	Key     string   `mapstructure:"key" yaml:"key"`
	Exclude []string `mapstructure:"exclude" yaml:"exclude"`
	// Exempt users are never limited.
	Exempt    []string   `mapstructure:"exempt" yaml:"exempt"`
	Overrides []Override `mapstructure:"overrides" yaml:"overrides"`
}

// Override replaces the cooldown of a single user.
type Override struct {
	User string  `mapstructure:"user" yaml:"user"`
	Rate float64 `mapstructure:"rate" yaml:"rate"`
	Per  float64 `mapstructure:"per" yaml:"per"`
}

var defaultConfig = Config{
	Backend: Backend{
		Type:  BackendMemory,
		Redis: Redis{Prefix: cooldown.DefaultRedisPrefix},
	},
}

var defaultPolicy = Policy{
	Key: "user",
}

// Load reads the config from v and fills in defaults. It does not validate.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode cooldown config")
	}

	if err := mergo.Merge(cfg, defaultConfig); err != nil {
		return nil, errors.Wrap(err, "failed to merge default cooldown config")
	}
	for i := range cfg.Cooldowns {
		if err := mergo.Merge(&cfg.Cooldowns[i], defaultPolicy); err != nil {
			return nil, errors.Wrapf(err, "failed to merge default cooldown policy %q", cfg.Cooldowns[i].Name)
		}
	}
	return cfg, nil
}

// Validate returns every problem of the config at once.
func (c *Config) Validate() error {
	var result error

	switch c.Backend.Type {
	case BackendMemory:
	case BackendRedis:
		if c.Backend.Redis.Addr == "" {
			result = multierror.Append(result, fmt.Errorf("backend.redis.addr must be set for the redis backend"))
		}
	default:
		result = multierror.Append(result, fmt.Errorf("unknown cooldown backend %q", c.Backend.Type))
	}

	names := map[string]bool{}
	for i, p := range c.Cooldowns {
		if p.Name == "" {
			result = multierror.Append(result, fmt.Errorf("cooldowns[%d]: name must be set", i))
		} else if names[p.Name] {
			result = multierror.Append(result, fmt.Errorf("cooldowns[%d]: duplicated name %q", i, p.Name))
		}
		names[p.Name] = true

		if err := p.Validate(); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "cooldowns[%d]", i))
		}
	}
	return result
}

func (p *Policy) Validate() error {
	var result error

	if p.Rate == 0 && p.Per == 0 {
		result = multierror.Append(result, fmt.Errorf("rate, per must be provided"))
	} else if !finite(p.Rate) || !finite(p.Per) {
		result = multierror.Append(result, fmt.Errorf("rate, per must be finite"))
	}
	if _, err := cooldown.KeyByName(p.Key); err != nil {
		result = multierror.Append(result, err)
	}
	for j, o := range p.Overrides {
		if o.User == "" {
			result = multierror.Append(result, fmt.Errorf("overrides[%d]: user must be set", j))
		}
		if o.Rate == 0 && o.Per == 0 {
			result = multierror.Append(result, fmt.Errorf("overrides[%d]: rate, per must be provided", j))
		} else if !finite(o.Rate) || !finite(o.Per) {
			result = multierror.Append(result, fmt.Errorf("overrides[%d]: rate, per must be finite", j))
		}
	}
	return result
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
