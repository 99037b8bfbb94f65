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
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnboundedMailbox(t *testing.T) {
	t.Run("With FIFO ordering", func(t *testing.T) {
		mailbox := NewUnboundedMailbox()
		assert.True(t, mailbox.IsEmpty())
		for i := 0; i < 10; i++ {
			require.NoError(t, mailbox.Enqueue(getContext(context.TODO(), nil, nil, i)))
		}
		assert.EqualValues(t, 10, mailbox.Len())
		for i := 0; i < 10; i++ {
			received := mailbox.Dequeue()
			require.NotNil(t, received)
			assert.Equal(t, i, received.Message())
			releaseContext(received)
		}
		assert.Nil(t, mailbox.Dequeue())
		assert.True(t, mailbox.IsEmpty())
	})
	t.Run("With concurrent producers", func(t *testing.T) {
		mailbox := NewUnboundedMailbox()
		producers := 10
		perProducer := 100

		var wg sync.WaitGroup
		wg.Add(producers)
		for p := 0; p < producers; p++ {
			go func() {
				defer wg.Done()
				for i := 0; i < perProducer; i++ {
					assert.NoError(t, mailbox.Enqueue(getContext(context.TODO(), nil, nil, i)))
				}
			}()
		}
		wg.Wait()

		assert.EqualValues(t, producers*perProducer, mailbox.Len())
		count := 0
		for {
			received := mailbox.Dequeue()
			if received == nil {
				break
			}
			count++
			releaseContext(received)
		}
		assert.Equal(t, producers*perProducer, count)
	})
}

func TestBoundedMailbox(t *testing.T) {
	t.Run("With enqueue and dequeue", func(t *testing.T) {
		mailbox := NewBoundedMailbox(5)
		assert.True(t, mailbox.IsEmpty())
		for i := 0; i < 5; i++ {
			require.NoError(t, mailbox.Enqueue(getContext(context.TODO(), nil, nil, i)))
		}
		assert.EqualValues(t, 5, mailbox.Len())
		received := mailbox.Dequeue()
		require.NotNil(t, received)
		assert.Equal(t, 0, received.Message())
		releaseContext(received)
	})
	t.Run("With full mailbox", func(t *testing.T) {
		mailbox := NewBoundedMailbox(2)
		require.NoError(t, mailbox.Enqueue(getContext(context.TODO(), nil, nil, "a")))
		require.NoError(t, mailbox.Enqueue(getContext(context.TODO(), nil, nil, "b")))
		err := mailbox.Enqueue(getContext(context.TODO(), nil, nil, "c"))
		assert.ErrorIs(t, err, ErrFullMailbox)
		// draining frees capacity again
		received := mailbox.Dequeue()
		require.NotNil(t, received)
		releaseContext(received)
		require.NoError(t, mailbox.Enqueue(getContext(context.TODO(), nil, nil, "c")))
		mailbox.Dispose()
	})
	t.Run("With capacity below the ring minimum", func(t *testing.T) {
		// a capacity of 1 is rounded up to 2; the mailbox must report full
		// instead of overwriting the unread slot
		mailbox := NewBoundedMailbox(1)
		require.NoError(t, mailbox.Enqueue(getContext(context.TODO(), nil, nil, "a")))
		require.NoError(t, mailbox.Enqueue(getContext(context.TODO(), nil, nil, "b")))
		assert.ErrorIs(t, mailbox.Enqueue(getContext(context.TODO(), nil, nil, "c")), ErrFullMailbox)

		// the earliest message is still intact and the consumer never blocks
		received := mailbox.Dequeue()
		require.NotNil(t, received)
		assert.Equal(t, "a", received.Message())
		releaseContext(received)
	})
	t.Run("With empty dequeue", func(t *testing.T) {
		mailbox := NewBoundedMailbox(1)
		assert.Nil(t, mailbox.Dequeue())
	})
}
