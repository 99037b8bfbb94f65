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

// Context is handed to the BehaviorFactory during spawn. It exposes the
// self-reference of the actor under construction, the owning actor system
// and the logging sink, and lets the factory register a post-stop hook.
//
// The Context is only valid for the duration of the factory call; do not
// retain it. The self PID it carries, however, is the durable handle of the
// actor and may be captured by the returned behavior.
type Context struct {
	ctx           context.Context
	self          *PID
	system        ActorSystem
	postStopHooks []func(ctx context.Context) error
}

// newContext creates an instance of Context
func newContext(ctx context.Context, self *PID, system ActorSystem) *Context {
	return &Context{
		ctx:    ctx,
		self:   self,
		system: system,
	}
}

// Context returns the context of the ongoing spawn call.
func (c *Context) Context() context.Context {
	return c.ctx
}

// Self returns the PID of the actor under construction.
func (c *Context) Self() *PID {
	return c.self
}

// ActorSystem returns the actor system the actor belongs to.
func (c *Context) ActorSystem() ActorSystem {
	return c.system
}

// Logger returns the logging sink of the actor system.
func (c *Context) Logger() log.Logger {
	return c.system.Logger()
}

// Spawn creates a child of the actor under construction. The child is
// stopped together with its parent.
func (c *Context) Spawn(name string, factory BehaviorFactory, opts ...SpawnOption) (*PID, error) {
	return c.self.SpawnChild(c.ctx, name, factory, opts...)
}

// OnPostStop registers a hook that runs once the actor has processed its
// final message and is about to reach the Stopped state. Hooks run in
// registration order; a failing hook is logged but does not abort the
// teardown.
func (c *Context) OnPostStop(hook func(ctx context.Context) error) {
	c.postStopHooks = append(c.postStopHooks, hook)
}
