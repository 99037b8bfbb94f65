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
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/tochemey/miniakt/log"
)

func TestActorSystem(t *testing.T) {
	noop := func(*Context) (Behavior, error) {
		return func(*ReceiveContext) Directive { return Same() }, nil
	}

	t.Run("With invalid system name", func(t *testing.T) {
		sys, err := NewActorSystem("$omeN@me")
		assert.ErrorIs(t, err, ErrInvalidActorSystemName)
		assert.Nil(t, sys)
	})
	t.Run("With double start", func(t *testing.T) {
		sys := testSystem(t)
		assert.ErrorIs(t, sys.Start(context.TODO()), ErrActorSystemAlreadyStarted)
	})
	t.Run("With stop of a non started system", func(t *testing.T) {
		sys, err := NewActorSystem("testSys", WithLogger(log.DiscardLogger))
		require.NoError(t, err)
		assert.ErrorIs(t, sys.Stop(context.TODO()), ErrActorSystemNotStarted)
	})
	t.Run("With spawn on a non started system", func(t *testing.T) {
		sys, err := NewActorSystem("testSys", WithLogger(log.DiscardLogger))
		require.NoError(t, err)
		pid, err := sys.Spawn(context.TODO(), "early", noop)
		assert.ErrorIs(t, err, ErrActorSystemNotStarted)
		assert.Nil(t, pid)
	})
	t.Run("With invalid actor name", func(t *testing.T) {
		sys := testSystem(t)
		pid, err := sys.Spawn(context.TODO(), "-bad", noop)
		assert.ErrorIs(t, err, ErrInvalidActorName)
		assert.Nil(t, pid)
	})
	t.Run("With duplicate name rejected and reusable after stop", func(t *testing.T) {
		ctx := context.TODO()
		sys := testSystem(t)

		first, err := sys.Spawn(ctx, "singleton", noop)
		require.NoError(t, err)

		dup, err := sys.Spawn(ctx, "singleton", noop)
		assert.ErrorIs(t, err, ErrActorAlreadyExists)
		assert.Nil(t, dup)

		require.NoError(t, first.Shutdown(ctx))

		// the name is free again once the first incarnation stopped
		second, err := sys.Spawn(ctx, "singleton", noop)
		require.NoError(t, err)
		assert.False(t, first.Equals(second))
	})
	t.Run("With duplicate child names scoped per parent", func(t *testing.T) {
		ctx := context.TODO()
		sys := testSystem(t)

		withChild := func(*Context) (Behavior, error) {
			return func(*ReceiveContext) Directive { return Same() }, nil
		}
		left, err := sys.Spawn(ctx, "leftParent", withChild)
		require.NoError(t, err)
		right, err := sys.Spawn(ctx, "rightParent", withChild)
		require.NoError(t, err)

		// same child name under different parents is fine
		_, err = left.SpawnChild(ctx, "worker", noop)
		require.NoError(t, err)
		_, err = right.SpawnChild(ctx, "worker", noop)
		require.NoError(t, err)

		// but not twice under the same parent
		_, err = left.SpawnChild(ctx, "worker", noop)
		assert.ErrorIs(t, err, ErrActorAlreadyExists)
	})
	t.Run("With spawn on a stopping parent", func(t *testing.T) {
		ctx := context.TODO()
		sys := testSystem(t)

		parent, err := sys.Spawn(ctx, "leaving", noop)
		require.NoError(t, err)

		// a parent already tearing down must refuse new children, even when
		// its registry node is still present
		parent.setState(stoppingState, true)
		child, err := parent.SpawnChild(ctx, "late", noop)
		assert.ErrorIs(t, err, ErrDead)
		assert.Nil(t, child)
		assert.False(t, sys.ActorExists("leaving/late"))

		parent.setState(stoppingState, false)
		require.NoError(t, parent.Shutdown(ctx))
	})
	t.Run("With failing behavior factory", func(t *testing.T) {
		ctx := context.TODO()
		sys := testSystem(t)

		var attempts atomic.Int32
		initFailure := errors.New("db not reachable")
		pid, err := sys.Spawn(ctx, "sick", func(*Context) (Behavior, error) {
			attempts.Inc()
			return nil, initFailure
		}, WithInitMaxRetries(2), WithInitTimeout(2*time.Second))

		assert.Nil(t, pid)
		assert.ErrorIs(t, err, ErrInitFailure)
		assert.GreaterOrEqual(t, attempts.Load(), int32(2))

		// the name was released by the failed spawn
		_, err = sys.Spawn(ctx, "sick", noop)
		require.NoError(t, err)
	})
	t.Run("With failing behavior factory stopping its children", func(t *testing.T) {
		ctx := context.TODO()
		sys := testSystem(t)

		// the factory spawns a child and then fails; the child must not
		// outlive its aborted parent
		var child *PID
		initFailure := errors.New("bad config")
		pid, err := sys.Spawn(ctx, "aborted", func(spawnCtx *Context) (Behavior, error) {
			kid, err := spawnCtx.Spawn("kid", func(*Context) (Behavior, error) {
				return func(*ReceiveContext) Directive { return Same() }, nil
			})
			if err != nil {
				return nil, err
			}
			child = kid
			return nil, initFailure
		})

		assert.Nil(t, pid)
		assert.ErrorIs(t, err, ErrInitFailure)

		require.NotNil(t, child)
		assert.True(t, child.IsStopped())
		assert.EqualValues(t, 0, sys.NumActors())

		// the parent name is free again
		_, err = sys.Spawn(ctx, "aborted", noop)
		require.NoError(t, err)
	})
	t.Run("With ActorOf and Actors", func(t *testing.T) {
		ctx := context.TODO()
		sys := testSystem(t)

		pid, err := sys.Spawn(ctx, "known", noop)
		require.NoError(t, err)

		found, err := sys.ActorOf("known")
		require.NoError(t, err)
		assert.True(t, pid.Equals(found))

		_, err = sys.ActorOf("unknown")
		assert.ErrorIs(t, err, ErrActorNotFound)

		assert.True(t, sys.ActorExists("known"))
		assert.False(t, sys.ActorExists("unknown"))

		assert.Len(t, sys.Actors(), 1)
		assert.EqualValues(t, 1, sys.NumActors())

		require.NoError(t, pid.Shutdown(ctx))
		assert.False(t, sys.ActorExists("known"))
	})
	t.Run("With Kill", func(t *testing.T) {
		ctx := context.TODO()
		sys := testSystem(t)

		pid, err := sys.Spawn(ctx, "victim", noop)
		require.NoError(t, err)

		require.NoError(t, sys.Kill(ctx, "victim"))
		assert.True(t, pid.IsStopped())

		assert.ErrorIs(t, sys.Kill(ctx, "victim"), ErrActorNotFound)
	})
	t.Run("With lifecycle events", func(t *testing.T) {
		ctx := context.TODO()
		sys := testSystem(t)

		subscriber, err := sys.Subscribe(TopicLifecycle)
		require.NoError(t, err)

		pid, err := sys.Spawn(ctx, "observed", noop)
		require.NoError(t, err)

		started := awaitEvent(t, subscriber, func(payload any) bool {
			event, ok := payload.(*ActorStarted)
			return ok && event.Path == "observed"
		})
		require.NotNil(t, started)

		require.NoError(t, pid.Shutdown(ctx))
		stopped := awaitEvent(t, subscriber, func(payload any) bool {
			event, ok := payload.(*ActorStopped)
			return ok && event.Path == "observed"
		})
		require.NotNil(t, stopped)

		require.NoError(t, sys.Unsubscribe(subscriber))
	})
	t.Run("With system stop terminating all actors", func(t *testing.T) {
		ctx := context.TODO()
		sys, err := NewActorSystem("testSys", WithLogger(log.DiscardLogger))
		require.NoError(t, err)
		require.NoError(t, sys.Start(ctx))

		var pids []*PID
		for _, name := range []string{"one", "two", "three"} {
			pid, err := sys.Spawn(ctx, name, func(spawnCtx *Context) (Behavior, error) {
				_, err := spawnCtx.Spawn("kid", noop)
				if err != nil {
					return nil, err
				}
				return func(*ReceiveContext) Directive { return Same() }, nil
			})
			require.NoError(t, err)
			pids = append(pids, pid)
		}
		require.EqualValues(t, 6, sys.NumActors())

		require.NoError(t, sys.Stop(ctx))
		for _, pid := range pids {
			assert.True(t, pid.IsStopped())
		}
		assert.False(t, sys.Running())
	})
}
