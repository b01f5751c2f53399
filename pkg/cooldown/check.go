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

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/sealerio/cooldown/pkg/cmdtree"
)

type checkOptions struct {
	store     Store
	namespace string
}

// Option configures a check built by NewFixedCheck or NewDynamicCheck.
type Option func(*checkOptions)

// WithStore sets the Store holding the buckets, every check gets its own
// MemoryStore by default.
func WithStore(store Store) Option {
	return func(o *checkOptions) {
		o.store = store
	}
}

// WithNamespace prefixes every bucket key of the check. Checks sharing a Store
// and a namespace share their buckets, a random namespace is used by default.
func WithNamespace(namespace string) Option {
	return func(o *checkOptions) {
		o.namespace = namespace
	}
}

func newCheckOptions(opts []Option) *checkOptions {
	o := &checkOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.store == nil {
		o.store = NewMemoryStore()
	}
	if o.namespace == "" {
		o.namespace = uuid.New().String()
	}
	return o
}

// NewFixedCheck returns a check allowing rate invocations every per seconds
// for each key. A nil key defaults to UserKey.
func NewFixedCheck(rate, per float64, key KeyFunc, opts ...Option) cmdtree.Check {
	cd := FromSeconds(rate, per)
	return NewDynamicCheck(func(*cmdtree.Invocation) *Cooldown { return &cd }, key, opts...)
}

// NewDynamicCheck returns a check asking factory for the cooldown of every
// invocation. A nil key defaults to UserKey.
func NewDynamicCheck(factory Factory, key KeyFunc, opts ...Option) cmdtree.Check {
	if key == nil {
		key = UserKey
	}
	o := newCheckOptions(opts)

	return func(inv *cmdtree.Invocation) error {
		cd := factory(inv)
		if cd == nil {
			return nil
		}

		ctx := inv.Context
		if ctx == nil {
			ctx = context.Background()
		}

		bucket := o.namespace + "/" + key(inv)
		retryAfter, err := o.store.Allow(ctx, bucket, *cd)
		if err != nil {
			return errors.Wrapf(err, "failed to check cooldown of %s", inv.Command)
		}
		if retryAfter > 0 {
			logrus.Debugf("%s is on cooldown for %s, retry after %s", inv.Command, bucket, retryAfter)
			return &OnCooldownError{Cooldown: *cd, RetryAfter: retryAfter}
		}
		return nil
	}
}
