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

	"github.com/tochemey/miniakt/log"
)

// ReceiveContext carries per-message context and operations available to a
// behavior while handling a single message.
//
// Concurrency and lifecycle:
//   - A ReceiveContext instance is created by the runtime for each delivered
//     message and is only valid within the scope of handling that message.
//     Do not retain it beyond the current behavior invocation.
//   - All messaging operations exposed here are non-blocking.
//
// Message immutability:
//   - Message returns the value as sent. Treat it as immutable; ownership is
//     transferred to the receiver at send time.
type ReceiveContext struct {
	ctx     context.Context
	message any
	sender  *PID
	self    *PID
}

// build initializes the context for a new delivery
func (rctx *ReceiveContext) build(ctx context.Context, self, sender *PID, message any) {
	rctx.ctx = ctx
	rctx.self = self
	rctx.sender = sender
	rctx.message = message
}

// reset clears the context before it goes back to the pool
func (rctx *ReceiveContext) reset() {
	rctx.ctx = nil
	rctx.self = nil
	rctx.sender = nil
	rctx.message = nil
}

// Self returns the PID of the actor processing the current message.
func (rctx *ReceiveContext) Self() *PID {
	return rctx.self
}

// Sender returns the PID of the message sender. It returns NoSender when the
// message was system-generated or sent via the package-level Tell.
func (rctx *ReceiveContext) Sender() *PID {
	return rctx.sender
}

// Message returns the message being processed. Treat it as immutable.
func (rctx *ReceiveContext) Message() any {
	return rctx.message
}

// Context returns the context associated with the delivery of the current
// message. Do not store it beyond the current behavior invocation.
func (rctx *ReceiveContext) Context() context.Context {
	return rctx.ctx
}

// Logger returns the logger of the underlying actor system.
func (rctx *ReceiveContext) Logger() log.Logger {
	return rctx.self.Logger()
}

// ActorSystem returns the actor system the receiving actor belongs to.
func (rctx *ReceiveContext) ActorSystem() ActorSystem {
	return rctx.self.ActorSystem()
}

// Tell sends the given message to the given actor on behalf of the receiving
// actor. It is fire-and-forget: the call enqueues and returns immediately,
// never blocking the caller regardless of the target load. Sends to a
// stopped actor are dropped and surfaced only on the deadletters topic.
func (rctx *ReceiveContext) Tell(to *PID, message any) {
	_ = rctx.self.Tell(rctx.ctx, to, message)
}

// Spawn creates a child actor of the receiving actor and returns its PID.
// It fails with ErrActorAlreadyExists when a live sibling bears the same
// name.
func (rctx *ReceiveContext) Spawn(name string, factory BehaviorFactory, opts ...SpawnOption) (*PID, error) {
	return rctx.self.SpawnChild(rctx.ctx, name, factory, opts...)
}

// Stop requests the graceful stop of the given actor. The request is
// asynchronous and idempotent: the target finishes the message it is
// currently processing, then tears down.
func (rctx *ReceiveContext) Stop(to *PID) {
	to.requestStop()
}

// BecomeStacked pushes a new behavior on top of the current one.
//
// The current message continues to be processed by the existing behavior;
// subsequent messages are handled by the newly stacked behavior until
// UnBecomeStacked is called.
//
// Use this to model temporary protocol phases (e.g., awaiting a reply).
func (rctx *ReceiveContext) BecomeStacked(behavior Behavior) {
	rctx.self.setBehaviorStacked(behavior)
}

// UnBecomeStacked pops the most recently stacked behavior.
//
// After calling UnBecomeStacked, the actor resumes the previous behavior.
// No effect if there is no stacked behavior.
func (rctx *ReceiveContext) UnBecomeStacked() {
	rctx.self.unsetBehaviorStacked()
}

// UnBecome resets the actor behavior to its initial behavior, clearing any
// stacked or swapped behavior.
func (rctx *ReceiveContext) UnBecome() {
	rctx.self.resetBehavior()
}
