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
	"regexp"
	"runtime"
	"time"

	"github.com/flowchartsman/retry"
	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/tochemey/miniakt/eventstream"
	"github.com/tochemey/miniakt/log"
)

// nameRegex matches valid actor and actor system names
var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-_]*$`)

// defaults applied when the corresponding option is not set
const (
	defaultThroughput      = 300
	defaultShutdownTimeout = 3 * time.Second
	initRetryDelay         = 100 * time.Millisecond
)

// ActorSystem is the root of the actor runtime: it owns the dispatcher
// worker pool, the actors registry, the messages scheduler and the events
// stream, and is the entry point for spawning top-level actors.
//
// An actor system must be started before use and stopped exactly once;
// stopping it terminates every actor it hosts.
type ActorSystem interface {
	// Name returns the name of the actor system
	Name() string
	// Logger returns the logger used by the actor system
	Logger() log.Logger
	// Start starts the actor system
	Start(ctx context.Context) error
	// Stop gracefully stops the actor system: every actor is terminated,
	// children before parents, then the runtime is shut down.
	Stop(ctx context.Context) error
	// Running returns true when the actor system is up
	Running() bool
	// Spawn creates a top-level actor with the given name and returns its
	// PID once the actor is ready to process messages. Spawning a second
	// live actor with the same name fails with ErrActorAlreadyExists; the
	// name becomes available again once the first actor stopped.
	Spawn(ctx context.Context, name string, factory BehaviorFactory, opts ...SpawnOption) (*PID, error)
	// Kill stops the top-level actor with the given name and waits for its
	// termination
	Kill(ctx context.Context, name string) error
	// ActorOf returns the PID registered under the given path
	ActorOf(path string) (*PID, error)
	// ActorExists reports whether a live actor is registered under the
	// given path
	ActorExists(path string) bool
	// Actors returns the list of all live actors in the system
	Actors() []*PID
	// NumActors returns the number of live actors in the system
	NumActors() int64
	// ScheduleOnce delivers the given message to the given actor once,
	// after the given delay
	ScheduleOnce(message any, pid *PID, delay time.Duration, opts ...SenderOption) error
	// Schedule delivers the given message to the given actor repeatedly at
	// the given interval
	Schedule(message any, pid *PID, interval time.Duration, opts ...SenderOption) error
	// ScheduleWithCron delivers the given message to the given actor
	// following the given cron expression
	ScheduleWithCron(message any, pid *PID, cronExpression string, opts ...SenderOption) error
	// Subscribe returns a subscriber receiving the events published on the
	// given topics, all system topics when none is given
	Subscribe(topics ...string) (eventstream.Subscriber, error)
	// Unsubscribe detaches the given subscriber from the events stream
	Unsubscribe(subscriber eventstream.Subscriber) error

	// internal surface used by PIDs
	tree() *tree
	dispatch() *dispatcher
	publishDeadletter(deadletter *Deadletter)
	publishLifecycle(event any)
	spawnOn(ctx context.Context, parent *PID, name string, factory BehaviorFactory, opts ...SpawnOption) (*PID, error)
}

// enforce compilation error
var _ ActorSystem = (*actorSystem)(nil)

// actorSystem is the default implementation of ActorSystem
type actorSystem struct {
	name    string
	logger  log.Logger
	started atomic.Bool

	actors           *tree
	pool             *dispatcher
	eventsStream     eventstream.Stream
	messagesSchedule *scheduler

	workersCount    int
	throughput      int
	shutdownTimeout time.Duration
}

// NewActorSystem creates an actor system with the given name. The name must
// be made of word characters with non-leading '-' or '_'.
func NewActorSystem(name string, opts ...Option) (ActorSystem, error) {
	if !nameRegex.MatchString(name) {
		return nil, ErrInvalidActorSystemName
	}

	system := &actorSystem{
		name:            name,
		logger:          log.DefaultLogger,
		actors:          newTree(),
		eventsStream:    eventstream.New(),
		workersCount:    runtime.NumCPU(),
		throughput:      defaultThroughput,
		shutdownTimeout: defaultShutdownTimeout,
	}

	for _, opt := range opts {
		opt.Apply(system)
	}

	system.pool = newDispatcher(system.workersCount, system.logger)
	system.messagesSchedule = newScheduler(system.logger, system.shutdownTimeout)
	return system, nil
}

// Name returns the name of the actor system
func (x *actorSystem) Name() string {
	return x.name
}

// Logger returns the logger used by the actor system
func (x *actorSystem) Logger() log.Logger {
	return x.logger
}

// Running returns true when the actor system is up
func (x *actorSystem) Running() bool {
	return x.started.Load()
}

// Start starts the actor system
func (x *actorSystem) Start(ctx context.Context) error {
	if !x.started.CompareAndSwap(false, true) {
		return ErrActorSystemAlreadyStarted
	}
	x.pool.Start()
	x.messagesSchedule.Start(ctx)
	x.logger.Infof("%s actor system started", x.name)
	return nil
}

// Stop stops the actor system. Actors are stopped first, children before
// parents, then the scheduler, the dispatcher and the events stream are torn
// down.
func (x *actorSystem) Stop(ctx context.Context) error {
	if !x.started.CompareAndSwap(true, false) {
		return ErrActorSystemNotStarted
	}
	x.logger.Infof("%s actor system is shutting down", x.name)

	shutdownCtx, cancel := context.WithTimeout(ctx, x.shutdownTimeout)
	defer cancel()

	eg, egCtx := errgroup.WithContext(shutdownCtx)
	for _, pid := range x.actors.roots() {
		pid := pid
		eg.Go(func() error {
			return pid.Shutdown(egCtx)
		})
	}
	err := eg.Wait()

	x.messagesSchedule.Stop(ctx)
	err = multierr.Append(err, x.pool.Stop(shutdownCtx))
	x.eventsStream.Close()

	if err != nil {
		x.logger.Errorf("%s actor system shutdown: %v", x.name, err)
		return err
	}
	x.logger.Infof("%s actor system stopped", x.name)
	return nil
}

// Spawn creates a top-level actor
func (x *actorSystem) Spawn(ctx context.Context, name string, factory BehaviorFactory, opts ...SpawnOption) (*PID, error) {
	return x.spawnOn(ctx, nil, name, factory, opts...)
}

// Kill stops the top-level actor with the given name
func (x *actorSystem) Kill(ctx context.Context, name string) error {
	if !x.started.Load() {
		return ErrActorSystemNotStarted
	}
	pid, ok := x.actors.lookup(name)
	if !ok {
		return NewErrActorNotFound(name)
	}
	return pid.Shutdown(ctx)
}

// ActorOf returns the PID registered under the given path
func (x *actorSystem) ActorOf(path string) (*PID, error) {
	if !x.started.Load() {
		return nil, ErrActorSystemNotStarted
	}
	pid, ok := x.actors.lookup(path)
	if !ok {
		return nil, NewErrActorNotFound(path)
	}
	return pid, nil
}

// ActorExists reports whether a live actor is registered under the given
// path
func (x *actorSystem) ActorExists(path string) bool {
	return x.actors.exists(path)
}

// Actors returns the list of all live actors in the system
func (x *actorSystem) Actors() []*PID {
	return x.actors.actors()
}

// NumActors returns the number of live actors in the system
func (x *actorSystem) NumActors() int64 {
	return x.actors.count()
}

// ScheduleOnce delivers the given message to the given actor once after the
// given delay
func (x *actorSystem) ScheduleOnce(message any, pid *PID, delay time.Duration, opts ...SenderOption) error {
	return x.messagesSchedule.ScheduleOnce(message, pid, delay, opts...)
}

// Schedule delivers the given message to the given actor repeatedly at the
// given interval
func (x *actorSystem) Schedule(message any, pid *PID, interval time.Duration, opts ...SenderOption) error {
	return x.messagesSchedule.Schedule(message, pid, interval, opts...)
}

// ScheduleWithCron delivers the given message to the given actor following
// the given cron expression
func (x *actorSystem) ScheduleWithCron(message any, pid *PID, cronExpression string, opts ...SenderOption) error {
	return x.messagesSchedule.ScheduleWithCron(message, pid, cronExpression, opts...)
}

// Subscribe returns a subscriber attached to the given topics, or to all
// system topics when none is given
func (x *actorSystem) Subscribe(topics ...string) (eventstream.Subscriber, error) {
	if !x.started.Load() {
		return nil, ErrActorSystemNotStarted
	}
	if len(topics) == 0 {
		topics = []string{TopicDeadletters, TopicLifecycle}
	}
	subscriber := x.eventsStream.AddSubscriber()
	for _, topic := range topics {
		x.eventsStream.Subscribe(subscriber, topic)
	}
	return subscriber, nil
}

// Unsubscribe detaches the given subscriber from the events stream
func (x *actorSystem) Unsubscribe(subscriber eventstream.Subscriber) error {
	if !x.started.Load() {
		return ErrActorSystemNotStarted
	}
	for _, topic := range subscriber.Topics() {
		x.eventsStream.Unsubscribe(subscriber, topic)
	}
	x.eventsStream.RemoveSubscriber(subscriber)
	return nil
}

// tree returns the actors registry
func (x *actorSystem) tree() *tree {
	return x.actors
}

// dispatch returns the dispatcher worker pool
func (x *actorSystem) dispatch() *dispatcher {
	return x.pool
}

// publishDeadletter publishes the given deadletter on the events stream
func (x *actorSystem) publishDeadletter(deadletter *Deadletter) {
	x.eventsStream.Publish(TopicDeadletters, deadletter)
}

// publishLifecycle publishes the given lifecycle event on the events stream
func (x *actorSystem) publishLifecycle(event any) {
	x.eventsStream.Publish(TopicLifecycle, event)
}

// spawnOn creates an actor under the given parent, a top-level actor when
// parent is nil. It registers the name first so a duplicate sibling fails
// fast, then builds the initial behavior; a factory failure releases the
// name.
func (x *actorSystem) spawnOn(ctx context.Context, parent *PID, name string, factory BehaviorFactory, opts ...SpawnOption) (*PID, error) {
	if !x.started.Load() {
		return nil, ErrActorSystemNotStarted
	}
	if !nameRegex.MatchString(name) {
		return nil, NewSpawnError(ErrInvalidActorName)
	}

	config := newSpawnConfig(opts...)
	path := name
	if parent != nil {
		path = parent.Path() + "/" + name
	}

	pid := newPID(name, path, parent, x, config.mailbox, x.throughput)
	if err := x.actors.add(parent, pid); err != nil {
		return nil, NewSpawnError(err)
	}

	spawnContext := newContext(ctx, pid, x)
	var behavior Behavior
	retrier := retry.NewRetrier(config.initMaxRetries, initRetryDelay, config.initTimeout)
	initCtx, cancel := context.WithTimeout(ctx, config.initTimeout)
	err := retrier.RunContext(initCtx, func(_ context.Context) error {
		built, err := factory(spawnContext)
		if err != nil {
			return err
		}
		behavior = built
		return nil
	})
	cancel()
	if err != nil {
		// children spawned by the failed factory are live actors owned by a
		// parent that will never run; stop them before releasing the name
		for _, child := range x.actors.children(pid) {
			if cerr := child.Shutdown(ctx); cerr != nil {
				x.logger.Errorf("actor=(%s) failed to stop child of aborted spawn: %v", child.Path(), cerr)
			}
		}
		x.actors.remove(pid)
		return nil, NewSpawnError(NewErrInitFailure(err))
	}

	pid.postStopHooks = spawnContext.postStopHooks
	pid.setInitialBehavior(behavior)
	pid.setState(runningState, true)
	x.publishLifecycle(&ActorStarted{Path: pid.Path(), At: time.Now()})
	x.logger.Debugf("actor=(%s) started", pid.Path())
	return pid, nil
}

// Tell sends the given message to the given actor with no sender identity.
// It is fire-and-forget: the call enqueues and returns immediately. Sends to
// a stopped actor are dropped and surfaced only on the deadletters topic.
func Tell(ctx context.Context, to *PID, message any) error {
	return tell(ctx, NoSender, to, message)
}
