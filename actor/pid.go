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
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/tochemey/miniakt/log"
)

// values of the PID processing flag
const (
	// idle means there is no message processing scheduled for the actor
	idle int32 = iota
	// busy means the actor is on the run queue or processing a batch
	busy
)

// PID is the reference to an actor. It is the only handle other goroutines
// ever hold: all interaction with the actor goes through its PID, and the
// runtime guarantees that the behavior behind it processes one message at a
// time.
//
// A PID stays valid after the actor stopped; sends to it are then dropped
// and surfaced on the deadletters topic.
type PID struct {
	id     string
	name   string
	path   string
	parent *PID

	system  ActorSystem
	mailbox Mailbox

	// processing arbitrates ownership of the message loop. Whoever flips it
	// from idle to busy owns the right (and the duty) to submit the PID to
	// the dispatcher; everyone else backs off. This is what keeps a PID on
	// the run queue at most once and the behavior single-threaded.
	processing atomic.Int32
	// state is the lifecycle bitmask. See pidState.
	state atomic.Uint32

	behaviors behaviorStack

	throughput    int
	postStopHooks []func(ctx context.Context) error
	stopDone      chan struct{}
}

// newPID creates a PID in the Starting state. The caller registers it in the
// actors tree and flips it to running once the initial behavior is built.
func newPID(name, path string, parent *PID, system ActorSystem, mailbox Mailbox, throughput int) *PID {
	return &PID{
		id:         uuid.NewString(),
		name:       name,
		path:       path,
		parent:     parent,
		system:     system,
		mailbox:    mailbox,
		throughput: throughput,
		stopDone:   make(chan struct{}),
	}
}

// ID returns the unique identifier of the actor
func (pid *PID) ID() string {
	return pid.id
}

// Name returns the name of the actor
func (pid *PID) Name() string {
	return pid.name
}

// Path returns the hierarchical path of the actor, e.g. "parent/child".
func (pid *PID) Path() string {
	return pid.path
}

// Parent returns the parent PID of the actor. Top-level actors and NoSender
// have no parent.
func (pid *PID) Parent() *PID {
	return pid.parent
}

// Children returns the live children of the actor
func (pid *PID) Children() []*PID {
	if pid.system == nil {
		return nil
	}
	return pid.system.tree().children(pid)
}

// ChildrenCount returns the number of live children of the actor
func (pid *PID) ChildrenCount() int {
	if pid.system == nil {
		return 0
	}
	return pid.system.tree().childrenCount(pid)
}

// Equals reports whether both PIDs refer to the same actor incarnation
func (pid *PID) Equals(other *PID) bool {
	if other == nil {
		return false
	}
	return pid.id == other.id && pid.path == other.path
}

// IsRunning returns true when the actor is alive and accepting messages
func (pid *PID) IsRunning() bool {
	return pid.isStateSet(runningState) &&
		!pid.isStateSet(stoppingState) &&
		!pid.isStateSet(stoppedState)
}

// IsStopped returns true when the actor has fully terminated
func (pid *PID) IsStopped() bool {
	return pid.isStateSet(stoppedState)
}

// ActorSystem returns the actor system the actor belongs to
func (pid *PID) ActorSystem() ActorSystem {
	return pid.system
}

// Logger returns the logger of the underlying actor system
func (pid *PID) Logger() log.Logger {
	if pid.system == nil {
		return log.DiscardLogger
	}
	return pid.system.Logger()
}

// Tell sends the given message to the given actor on behalf of the receiving
// PID. The call is fire-and-forget: it enqueues into the target mailbox and
// returns without waiting for processing. Sends to a stopped actor are
// dropped silently; the only error a send can surface is ErrFullMailbox when
// the target uses a bounded mailbox.
func (pid *PID) Tell(ctx context.Context, to *PID, message any) error {
	return tell(ctx, pid, to, message)
}

// SpawnChild creates a child actor of the receiving PID. The child path is
// the parent path extended with the child name; the child is stopped
// together with its parent.
func (pid *PID) SpawnChild(ctx context.Context, name string, factory BehaviorFactory, opts ...SpawnOption) (*PID, error) {
	if pid.system == nil {
		return nil, ErrDead
	}
	return pid.system.spawnOn(ctx, pid, name, factory, opts...)
}

// Shutdown requests the graceful stop of the actor and waits for the
// teardown to complete. The actor finishes the message it is currently
// processing, stops its children, then discards its mailbox. Shutdown is
// idempotent: stopping an already stopped actor returns immediately.
func (pid *PID) Shutdown(ctx context.Context) error {
	if pid.system == nil {
		return ErrDead
	}
	if pid.isStateSet(stoppedState) {
		return nil
	}
	pid.requestStop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-pid.stopDone:
		return nil
	}
}

// tell routes a message from sender to the target actor. A nil or dead
// target makes the send a silent drop recorded on the deadletters topic.
func tell(ctx context.Context, sender, to *PID, message any) error {
	if sender == nil {
		sender = NoSender
	}
	if to == nil || to.system == nil {
		return nil
	}
	if !to.IsRunning() {
		to.system.publishDeadletter(&Deadletter{
			Sender:   sender.Path(),
			Receiver: to.Path(),
			Message:  message,
			Reason:   "actor is not running",
			At:       time.Now(),
		})
		return nil
	}
	received := getContext(ctx, to, sender, message)
	return to.doReceive(received)
}

// doReceive enqueues the delivery into the mailbox and makes sure the actor
// gets processing time.
func (pid *PID) doReceive(received *ReceiveContext) error {
	if pid.isStateSet(stoppedState) {
		pid.system.publishDeadletter(&Deadletter{
			Sender:   received.Sender().Path(),
			Receiver: pid.path,
			Message:  received.Message(),
			Reason:   "actor is stopped",
			At:       time.Now(),
		})
		releaseContext(received)
		return nil
	}
	if err := pid.mailbox.Enqueue(received); err != nil {
		pid.system.publishDeadletter(&Deadletter{
			Sender:   received.Sender().Path(),
			Receiver: pid.path,
			Message:  received.Message(),
			Reason:   err.Error(),
			At:       time.Now(),
		})
		releaseContext(received)
		return err
	}
	pid.schedule()
	return nil
}

// schedule puts the actor on the dispatcher run queue unless it is already
// there. Losing the CAS means another goroutine owns the submission; the
// post-batch recheck in processBatch guarantees the freshly enqueued work is
// not lost.
func (pid *PID) schedule() {
	if pid.system == nil {
		return
	}
	if pid.processing.CompareAndSwap(idle, busy) {
		pid.system.dispatch().Submit(pid)
	}
}

// processBatch runs on a dispatcher worker. It drains up to throughput
// messages, then yields the worker so siblings get processing time.
func (pid *PID) processBatch() {
	defer func() {
		pid.processing.Store(idle)
		// recheck after releasing the flag: a producer that lost the CAS
		// while the batch was draining must not leave its message stranded
		if pid.hasWork() {
			pid.schedule()
		}
	}()

	for i := 0; i < pid.throughput; i++ {
		if pid.isStateSet(stoppedState) {
			return
		}
		if pid.isStateSet(stoppingState) {
			pid.tryFinalizeStop()
			return
		}
		received := pid.mailbox.Dequeue()
		if received == nil {
			return
		}
		pid.handleReceived(received)
		releaseContext(received)
	}
}

// hasWork reports whether the actor needs another trip through the
// dispatcher.
func (pid *PID) hasWork() bool {
	switch {
	case pid.isStateSet(stoppedState):
		return false
	case pid.isStateSet(stoppingState):
		// a stopping actor only needs the worker back once its last child
		// is gone
		return pid.system.tree().childrenCount(pid) == 0
	default:
		return !pid.mailbox.IsEmpty()
	}
}

// handleReceived applies the current behavior to one message and interprets
// the resulting directive.
func (pid *PID) handleReceived(received *ReceiveContext) {
	defer pid.recovery()
	behavior := pid.behaviors.Peek()
	if behavior == nil {
		return
	}
	switch directive := behavior(received).(type) {
	case sameDirective:
	case becomeDirective:
		pid.behaviors.Swap(directive.next)
	case stoppedDirective:
		pid.requestStop()
	case nil:
		// a nil directive keeps the current behavior
	}
}

// recovery contains a panicking behavior: the panic is logged and the actor
// is stopped. Messages already in the mailbox go to the deadletters topic.
func (pid *PID) recovery() {
	r := recover()
	if r == nil {
		return
	}
	var err error
	switch v := r.(type) {
	case error:
		err = NewPanicError(v)
	default:
		err = NewPanicError(fmt.Errorf("%v", v))
	}
	pid.Logger().Errorf("actor=(%s) is stopping: %v", pid.path, err)
	pid.requestStop()
}

// requestStop flips the actor into the Stopping state and makes sure the
// teardown gets processing time. It is idempotent and safe to call from any
// goroutine.
func (pid *PID) requestStop() {
	if pid.system == nil ||
		pid.isStateSet(stoppedState) ||
		pid.isStateSet(stoppingState) {
		return
	}
	pid.setState(stoppingState, true)
	pid.schedule()
}

// tryFinalizeStop runs on a dispatcher worker once the actor is stopping.
// Children are stopped before the parent: as long as any child is alive the
// parent stays parked off the run queue and is rescheduled by the last
// terminating child, so teardown never blocks a worker.
func (pid *PID) tryFinalizeStop() {
	tree := pid.system.tree()
	if kids := tree.children(pid); len(kids) > 0 {
		for _, kid := range kids {
			kid.requestStop()
		}
		return
	}

	pid.setState(stoppedState, true)
	pid.setState(runningState, false)
	pid.setState(stoppingState, false)

	// everything enqueued before the stopped bit became visible is
	// discarded here; everything after is dropped at the door by doReceive
	for {
		received := pid.mailbox.Dequeue()
		if received == nil {
			break
		}
		pid.system.publishDeadletter(&Deadletter{
			Sender:   received.Sender().Path(),
			Receiver: pid.path,
			Message:  received.Message(),
			Reason:   "actor is stopped",
			At:       time.Now(),
		})
		releaseContext(received)
	}

	for _, hook := range pid.postStopHooks {
		if err := hook(context.Background()); err != nil {
			pid.Logger().Errorf("actor=(%s) post-stop hook failed: %v", pid.path, err)
		}
	}

	pid.mailbox.Dispose()
	tree.remove(pid)
	pid.system.publishLifecycle(&ActorStopped{Path: pid.path, At: time.Now()})
	close(pid.stopDone)

	// poke a stopping parent that was waiting on this child
	if pid.parent != nil && pid.parent.isStateSet(stoppingState) {
		pid.parent.schedule()
	}
}

// behavior stack mutations. Only called from within message processing,
// which the runtime serializes per actor.

func (pid *PID) setInitialBehavior(behavior Behavior) {
	pid.behaviors = behaviorStack{behavior}
}

func (pid *PID) setBehaviorStacked(behavior Behavior) {
	pid.behaviors.Push(behavior)
}

func (pid *PID) unsetBehaviorStacked() {
	pid.behaviors.Pop()
}

func (pid *PID) resetBehavior() {
	pid.behaviors.Reset()
}
