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

// Behavior is the message-handling function of an actor.
//
// A behavior is applied to exactly one message at a time: the runtime
// guarantees that no two invocations of the same actor's behavior ever run
// concurrently, which is why behaviors may freely close over mutable state
// without synchronization.
//
// The returned Directive tells the runtime what to do next:
//   - Same() keeps the current behavior for the next message
//   - Become(next) replaces the current behavior with next
//   - Stopped() initiates the graceful teardown of the actor
//
// A nil Directive is treated as Same().
type Behavior func(ctx *ReceiveContext) Directive

// BehaviorFactory constructs the initial behavior of an actor.
//
// It is invoked exactly once during spawn, before the actor processes any
// message. Use the given Context to capture the self reference, spawn
// children, access the logger or register a post-stop hook. Returning an
// error fails the spawn: the actor never starts and its name is released.
type BehaviorFactory func(ctx *Context) (Behavior, error)

// Directive is the closed set of behavior transitions an actor can request
// after handling a message.
type Directive interface {
	isDirective()
}

type sameDirective struct{}

type becomeDirective struct {
	next Behavior
}

type stoppedDirective struct{}

func (sameDirective) isDirective()    {}
func (becomeDirective) isDirective()  {}
func (stoppedDirective) isDirective() {}

// Same keeps the current behavior for the next message.
func Same() Directive {
	return sameDirective{}
}

// Become replaces the actor's current behavior with the given one.
// The replacement takes effect for the next message; the current message
// finishes under the behavior that returned the directive.
func Become(next Behavior) Directive {
	return becomeDirective{next: next}
}

// Stopped requests the graceful teardown of the actor. Messages still in the
// mailbox are not processed; they are routed to the deadletters topic.
func Stopped() Directive {
	return stoppedDirective{}
}
