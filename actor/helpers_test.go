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

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/tochemey/miniakt/eventstream"
	"github.com/tochemey/miniakt/log"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// testSystem creates a started actor system torn down with the test
func testSystem(t *testing.T, opts ...Option) ActorSystem {
	t.Helper()
	opts = append([]Option{WithLogger(log.DiscardLogger)}, opts...)
	sys, err := NewActorSystem("testSys", opts...)
	require.NoError(t, err)
	require.NoError(t, sys.Start(context.TODO()))
	t.Cleanup(func() {
		_ = sys.Stop(context.TODO())
	})
	return sys
}

// recvWithin receives from the given channel or fails the test after the
// given timeout
func recvWithin[T any](t *testing.T, ch <-chan T, timeout time.Duration) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(timeout):
		t.Fatalf("timed out after %v waiting on channel", timeout)
		var zero T
		return zero
	}
}

// awaitEvent polls the given subscriber until an event matching the
// predicate shows up
func awaitEvent(t *testing.T, subscriber eventstream.Subscriber, match func(payload any) bool) any {
	t.Helper()
	var found any
	require.Eventually(t, func() bool {
		for message := range subscriber.Iterator() {
			if match(message.Payload()) {
				found = message.Payload()
				return true
			}
		}
		return false
	}, time.Second, 10*time.Millisecond)
	return found
}
