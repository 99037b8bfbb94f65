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

package queue

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueFIFO(t *testing.T) {
	q := New[int]()
	for i := 0; i < 100; i++ {
		assert.True(t, q.Push(i))
	}
	assert.Equal(t, 100, q.Len())
	for i := 0; i < 100; i++ {
		item, ok := q.Pop()
		require.True(t, ok)
		assert.Equal(t, i, item)
	}
	_, ok := q.Pop()
	assert.False(t, ok)
	assert.True(t, q.IsEmpty())
}

func TestQueueWaitUnblocksOnPush(t *testing.T) {
	q := New[string]()
	done := make(chan string, 1)
	go func() {
		item, ok := q.Wait()
		require.True(t, ok)
		done <- item
	}()

	q.Push("hello")
	assert.Equal(t, "hello", <-done)
}

func TestQueueCloseDrainsRemaining(t *testing.T) {
	q := New[int]()
	q.Push(1)
	q.Push(2)
	q.Close()
	assert.True(t, q.IsClosed())

	// pending items are still delivered after close
	item, ok := q.Wait()
	require.True(t, ok)
	assert.Equal(t, 1, item)
	item, ok = q.Wait()
	require.True(t, ok)
	assert.Equal(t, 2, item)

	// drained and closed: Wait returns immediately
	_, ok = q.Wait()
	assert.False(t, ok)

	// pushes after close are dropped
	assert.False(t, q.Push(3))
}

func TestQueueConcurrentProducers(t *testing.T) {
	q := New[int]()
	producers := 8
	perProducer := 1000

	var wg sync.WaitGroup
	wg.Add(producers)
	for p := 0; p < producers; p++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Push(i)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, producers*perProducer, q.Len())
}
