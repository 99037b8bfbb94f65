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
	"time"

	"github.com/tochemey/miniakt/log"
)

// Option is the interface that applies a configuration option to the actor
// system.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(sys *actorSystem)
}

var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(sys *actorSystem)

// Apply applies the options to the actor system
func (f OptionFunc) Apply(sys *actorSystem) {
	f(sys)
}

// WithLogger sets the logger used by the actor system and every actor in it.
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(sys *actorSystem) {
		sys.logger = logger
	})
}

// WithWorkers sets the size of the dispatcher worker pool. It bounds the
// number of actors processing messages at the same time; the default is
// runtime.NumCPU().
func WithWorkers(count int) Option {
	return OptionFunc(func(sys *actorSystem) {
		sys.workersCount = count
	})
}

// WithThroughput sets the number of messages an actor may process per trip
// through a dispatcher worker before yielding it to siblings.
func WithThroughput(throughput int) Option {
	return OptionFunc(func(sys *actorSystem) {
		sys.throughput = throughput
	})
}

// WithShutdownTimeout sets the limit the actor system waits for actors to
// terminate when stopping.
func WithShutdownTimeout(timeout time.Duration) Option {
	return OptionFunc(func(sys *actorSystem) {
		sys.shutdownTimeout = timeout
	})
}
