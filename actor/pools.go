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
)

// contextPool caches ReceiveContext instances. One context is allocated per
// delivered message; pooling keeps the per-message allocation count flat.
var contextPool = sync.Pool{
	New: func() any {
		return new(ReceiveContext)
	},
}

// getContext builds a ReceiveContext from the pool
func getContext(ctx context.Context, self, sender *PID, message any) *ReceiveContext {
	received := contextPool.Get().(*ReceiveContext)
	received.build(ctx, self, sender, message)
	return received
}

// releaseContext returns the given ReceiveContext to the pool
func releaseContext(received *ReceiveContext) {
	received.reset()
	contextPool.Put(received)
}
