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
	"sync"
	"sync/atomic"
	"unsafe"
)

// cacheLinePadding separates the producer and consumer ends of the mailbox
// onto distinct cache lines so that enqueues and dequeues do not false-share
type cacheLinePadding [64]byte

// mailboxNode is a single link of the mailbox. Nodes cycle through a shared
// pool: one Get per enqueue, one Put per dequeue.
type mailboxNode struct {
	value atomic.Pointer[ReceiveContext]
	next  unsafe.Pointer
}

var nodePool = sync.Pool{New: func() any { return new(mailboxNode) }}

// UnboundedMailbox is the default actor mailbox: an intrusive MPSC linked
// queue in the style of Vyukov's non-intrusive design. Any number of
// producers may Enqueue concurrently; the runtime guarantees a single
// consumer, which is what lets Dequeue run without atomic contention on the
// head beyond plain pointer loads.
//
// Enqueue never fails and never blocks, so the mailbox grows without limit
// when producers outpace the actor. Pick BoundedMailbox instead when a
// runaway producer must be shed rather than buffered.
//
// Always construct through NewUnboundedMailbox; the zero value has no stub
// node and is unusable.
type UnboundedMailbox struct {
	head unsafe.Pointer // *mailboxNode, consumer side
	_    cacheLinePadding
	tail unsafe.Pointer // *mailboxNode, producer side
	_    cacheLinePadding
}

// enforce compilation error
var _ Mailbox = (*UnboundedMailbox)(nil)

// NewUnboundedMailbox creates an empty unbounded mailbox. Head and tail
// share a stub node until the first enqueue.
func NewUnboundedMailbox() *UnboundedMailbox {
	stub := new(mailboxNode)
	return &UnboundedMailbox{
		head: unsafe.Pointer(stub),
		tail: unsafe.Pointer(stub),
	}
}

// Enqueue appends the given delivery to the mailbox. It is wait-free for
// producers: a single atomic swap claims the tail, then the previous tail is
// linked forward. The error is always nil and only present for the Mailbox
// contract.
func (mailbox *UnboundedMailbox) Enqueue(value *ReceiveContext) error {
	newTail := nodePool.Get().(*mailboxNode)
	newTail.value.Store(value)
	atomic.StorePointer(&newTail.next, nil)

	prev := (*mailboxNode)(atomic.SwapPointer(&mailbox.tail, unsafe.Pointer(newTail)))
	atomic.StorePointer(&prev.next, unsafe.Pointer(newTail))
	return nil
}

// Dequeue pops the oldest delivery, nil when the mailbox is empty. Single
// consumer only; the runtime's processing flag provides that exclusivity.
//
// A producer that has swapped the tail but not yet linked prev.next makes
// its message momentarily invisible here; the post-batch recheck in the
// runtime picks it up.
func (mailbox *UnboundedMailbox) Dequeue() *ReceiveContext {
	head := (*mailboxNode)(atomic.LoadPointer(&mailbox.head))
	next := (*mailboxNode)(atomic.LoadPointer(&head.next))
	if next == nil {
		return nil
	}

	atomic.StorePointer(&mailbox.head, unsafe.Pointer(next))
	value := next.value.Load()
	// the dequeued node becomes the new stub; drop its payload reference so
	// the pool does not pin the message
	next.value.Store(nil)

	nodePool.Put(head)
	return value
}

// Len counts the pending deliveries by walking the links. O(n) and racy
// under concurrent producers; meant for introspection, not hot paths.
func (mailbox *UnboundedMailbox) Len() int64 {
	var count int64
	head := (*mailboxNode)(atomic.LoadPointer(&mailbox.head))
	current := (*mailboxNode)(atomic.LoadPointer(&head.next))
	for current != nil {
		count++
		current = (*mailboxNode)(atomic.LoadPointer(&current.next))
	}
	return count
}

// IsEmpty reports whether the mailbox holds no visible message. O(1); the
// answer can go stale the instant a producer lands.
func (mailbox *UnboundedMailbox) IsEmpty() bool {
	head := (*mailboxNode)(atomic.LoadPointer(&mailbox.head))
	return atomic.LoadPointer(&head.next) == nil
}

// Dispose implements the Mailbox interface. Nothing to release: pooled
// nodes are reclaimed through normal dequeues.
func (mailbox *UnboundedMailbox) Dispose() {}
