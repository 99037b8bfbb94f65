/*
 * MIT License
 *
 * Copyright (c) 2022-2026 GoAkt Team
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package actor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/tochemey/miniakt/log"
)

func TestDispatcher(t *testing.T) {
	t.Run("With a single worker no actor starves", func(t *testing.T) {
		const count = 500

		ctx := context.TODO()
		// one worker and a small batch force the actors to interleave
		sys := testSystem(t, WithWorkers(1), WithThroughput(10))

		var leftSeen, rightSeen atomic.Int32
		done := make(chan struct{}, 2)

		counting := func(counter *atomic.Int32) BehaviorFactory {
			return func(*Context) (Behavior, error) {
				return func(*ReceiveContext) Directive {
					if counter.Inc() == count {
						done <- struct{}{}
					}
					return Same()
				}, nil
			}
		}

		left, err := sys.Spawn(ctx, "left", counting(&leftSeen))
		require.NoError(t, err)
		right, err := sys.Spawn(ctx, "right", counting(&rightSeen))
		require.NoError(t, err)

		for i := 0; i < count; i++ {
			require.NoError(t, Tell(ctx, left, i))
			require.NoError(t, Tell(ctx, right, i))
		}

		recvWithin(t, done, 5*time.Second)
		recvWithin(t, done, 5*time.Second)
		assert.EqualValues(t, count, leftSeen.Load())
		assert.EqualValues(t, count, rightSeen.Load())
	})
	t.Run("With stop draining the run queue", func(t *testing.T) {
		const count = 200

		ctx := context.TODO()
		sys := testSystem(t, WithWorkers(2))

		var seen atomic.Int32
		pid, err := sys.Spawn(ctx, "drained", func(*Context) (Behavior, error) {
			return func(*ReceiveContext) Directive {
				seen.Inc()
				return Same()
			}, nil
		})
		require.NoError(t, err)

		for i := 0; i < count; i++ {
			require.NoError(t, Tell(ctx, pid, i))
		}
		require.NoError(t, sys.Stop(ctx))
		assert.True(t, pid.IsStopped())
	})
	t.Run("With double start and stop being no-ops", func(t *testing.T) {
		pool := newDispatcher(2, log.DiscardLogger)
		pool.Start()
		pool.Start()
		require.NoError(t, pool.Stop(context.TODO()))
		require.NoError(t, pool.Stop(context.TODO()))
	})
}
