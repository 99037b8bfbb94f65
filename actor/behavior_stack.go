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

// behaviorStack holds the active behaviors of an actor, top of stack last.
// It carries no lock: it is only ever touched during spawn (before the actor
// is runnable) and from within message processing, which the runtime
// serializes per actor.
type behaviorStack []Behavior

// Push pushes a behavior on top of the stack
func (bs *behaviorStack) Push(behavior Behavior) {
	*bs = append(*bs, behavior)
}

// Pop removes the behavior on top of the stack. The bottom behavior is never
// popped.
func (bs *behaviorStack) Pop() {
	if len(*bs) > 1 {
		*bs = (*bs)[:len(*bs)-1]
	}
}

// Peek returns the behavior on top of the stack
func (bs *behaviorStack) Peek() Behavior {
	if len(*bs) == 0 {
		return nil
	}
	return (*bs)[len(*bs)-1]
}

// Swap replaces the behavior on top of the stack
func (bs *behaviorStack) Swap(behavior Behavior) {
	if len(*bs) == 0 {
		*bs = append(*bs, behavior)
		return
	}
	(*bs)[len(*bs)-1] = behavior
}

// Reset drops everything but the bottom behavior
func (bs *behaviorStack) Reset() {
	if len(*bs) > 1 {
		*bs = (*bs)[:1]
	}
}

// Len returns the depth of the stack
func (bs *behaviorStack) Len() int {
	return len(*bs)
}
