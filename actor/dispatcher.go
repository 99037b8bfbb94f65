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
	"sync"

	"go.uber.org/atomic"

	"github.com/tochemey/miniakt/internal/queue"
	"github.com/tochemey/miniakt/log"
)

// dispatcher runs actor message processing on a fixed pool of workers.
//
// Actors with pending work are submitted to the run queue at most once at a
// time; the per-PID processing flag enforces that. A worker picks a PID off
// the queue, lets it process a batch of messages bounded by its throughput
// and moves on, so a busy actor cannot starve the others even on a pool of
// size one.
type dispatcher struct {
	runQueue *queue.Queue[*PID]
	size     int
	logger   log.Logger
	started  atomic.Bool
	wg       sync.WaitGroup
}

// newDispatcher creates a dispatcher with the given pool size
func newDispatcher(size int, logger log.Logger) *dispatcher {
	if size <= 0 {
		size = 1
	}
	return &dispatcher{
		runQueue: queue.New[*PID](),
		size:     size,
		logger:   logger,
	}
}

// Start spins up the worker pool. Subsequent calls are no-ops.
func (d *dispatcher) Start() {
	if !d.started.CompareAndSwap(false, true) {
		return
	}
	d.logger.Debugf("starting dispatcher with %d workers", d.size)
	for i := 0; i < d.size; i++ {
		d.wg.Add(1)
		go d.run()
	}
}

// Submit hands the given PID to the worker pool. The caller must have won
// the PID processing flag beforehand; Submit itself performs no
// de-duplication.
func (d *dispatcher) Submit(pid *PID) {
	d.runQueue.Push(pid)
}

// Stop closes the run queue and waits for the workers to drain it. It
// returns the context error when the given context expires first.
func (d *dispatcher) Stop(ctx context.Context) error {
	if !d.started.CompareAndSwap(true, false) {
		return nil
	}
	d.runQueue.Close()
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		d.logger.Debug("dispatcher stopped")
		return nil
	}
}

// run is a single worker loop. It blocks on the run queue and exits once
// the queue is closed and drained.
func (d *dispatcher) run() {
	defer d.wg.Done()
	for {
		pid, ok := d.runQueue.Wait()
		if !ok {
			return
		}
		pid.processBatch()
	}
}
