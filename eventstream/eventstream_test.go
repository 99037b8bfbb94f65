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

package eventstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeAndPublish(t *testing.T) {
	broker := New()
	sub := broker.AddSubscriber()
	broker.Subscribe(sub, "topic.test")
	require.Equal(t, 1, broker.SubscribersCount("topic.test"))

	broker.Publish("topic.test", "hello")
	broker.Publish("topic.test", "world")

	var payloads []any
	for message := range sub.Iterator() {
		assert.Equal(t, "topic.test", message.Topic())
		payloads = append(payloads, message.Payload())
	}
	assert.Equal(t, []any{"hello", "world"}, payloads)
	broker.Close()
}

func TestBroadcast(t *testing.T) {
	broker := New()
	sub := broker.AddSubscriber()
	broker.Subscribe(sub, "t1")
	broker.Subscribe(sub, "t2")
	assert.ElementsMatch(t, []string{"t1", "t2"}, sub.Topics())

	broker.Broadcast("payload", []string{"t1", "t2"})

	count := 0
	for range sub.Iterator() {
		count++
	}
	assert.Equal(t, 2, count)
	broker.Close()
}

func TestUnsubscribe(t *testing.T) {
	broker := New()
	sub := broker.AddSubscriber()
	broker.Subscribe(sub, "topic.test")
	broker.Unsubscribe(sub, "topic.test")
	assert.Zero(t, broker.SubscribersCount("topic.test"))

	broker.Publish("topic.test", "dropped")
	_, ok := <-sub.Iterator()
	assert.False(t, ok)
	broker.Close()
}

func TestRemoveSubscriberDeactivates(t *testing.T) {
	broker := New()
	sub := broker.AddSubscriber()
	broker.Subscribe(sub, "topic.test")
	broker.RemoveSubscriber(sub)
	assert.False(t, sub.Active())
	assert.Zero(t, broker.SubscribersCount("topic.test"))
	broker.Close()
}
