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

import "time"

// Topics of the actor system events stream. Subscribe to them via
// ActorSystem.Subscribe.
const (
	// TopicDeadletters carries Deadletter events for every message the
	// runtime could not deliver.
	TopicDeadletters = "topic.deadletters"
	// TopicLifecycle carries ActorStarted and ActorStopped events.
	TopicLifecycle = "topic.lifecycle"
)

// Deadletter is published on TopicDeadletters whenever a message cannot be
// delivered to, or processed by, its target actor. Delivery to a stopped
// actor is not an error for the sender; the deadletter is the only trace it
// leaves.
type Deadletter struct {
	// Sender is the path of the sending actor, or the NoSender path.
	Sender string
	// Receiver is the path of the intended recipient.
	Receiver string
	// Message is the undelivered message.
	Message any
	// Reason states why delivery failed.
	Reason string
	// At is the time the deadletter was recorded.
	At time.Time
}

// ActorStarted is published on TopicLifecycle once an actor has completed
// initialization and is ready to process messages.
type ActorStarted struct {
	// Path is the path of the started actor.
	Path string
	// At is the time the actor reached the running state.
	At time.Time
}

// ActorStopped is published on TopicLifecycle once an actor has fully
// terminated: its mailbox is discarded, its children are stopped and its
// name is released for reuse.
type ActorStopped struct {
	// Path is the path of the stopped actor.
	Path string
	// At is the time the actor reached the stopped state.
	At time.Time
}
