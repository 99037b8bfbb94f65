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

// pidState models the bitmask used to track the PID's lifecycle. Instead of
// sprinkling multiple atomic.Bool fields across the struct, individual bits
// are flipped inside a single atomic.Uint32.
//
// Lifecycle: Starting -> Running -> Stopping -> Stopped. A freshly built PID
// with no bit set is Starting; runningState is set once the initial behavior
// has been constructed; stoppingState once teardown has been requested;
// stoppedState once the teardown completed. Stopped is terminal.
type pidState uint32

const (
	runningState pidState = 1 << iota
	stoppingState
	stoppedState
)

func (pid *PID) isStateSet(state pidState) bool {
	return pid.state.Load()&uint32(state) != 0
}

// setState sets or clears the given flag.
// It uses a CAS loop to avoid races when multiple goroutines try to update
// different PID state bits at the same time.
func (pid *PID) setState(state pidState, enabled bool) {
	for {
		current := pid.state.Load()
		var desired uint32
		if enabled {
			desired = current | uint32(state)
		} else {
			desired = current &^ uint32(state)
		}
		if desired == current {
			return
		}
		if pid.state.CompareAndSwap(current, desired) {
			return
		}
	}
}
