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
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/zeebo/xxh3"
	"go.uber.org/atomic"
)

// treeShardsCount is the number of shards of the path index.
// Must be a power of two for bitwise modulus.
const treeShardsCount = 32

// tree is the process-wide registry mapping actor paths to their PID.
//
// Actor paths are hierarchical (parent path "/" child name). The tree owns
// the parent/child links: a parent node holds strong references to its
// children while children only refer back to their parent node, which keeps
// the ownership a strict arena-style tree. register/unregister are called
// only from PID lifecycle transitions.
type tree struct {
	shards  [treeShardsCount]*treeShard
	root    *pidNode
	paths   mapset.Set[string]
	counter atomic.Int64
}

// treeShard is one slice of the path index
type treeShard struct {
	mu    sync.RWMutex
	nodes map[string]*pidNode
}

// pidNode is a single node of the actors tree. The synthetic root node has a
// nil pid and parents all the actors spawned directly on the system.
type pidNode struct {
	pid      *PID
	parent   *pidNode
	mu       sync.RWMutex
	children map[string]*pidNode
}

// newTree creates an instance of the actors tree
func newTree() *tree {
	t := &tree{
		root: &pidNode{
			children: make(map[string]*pidNode),
		},
		paths: mapset.NewSet[string](),
	}
	for i := range t.shards {
		t.shards[i] = &treeShard{
			nodes: make(map[string]*pidNode),
		}
	}
	return t
}

// shardFor returns the shard owning the given path
func (t *tree) shardFor(path string) *treeShard {
	return t.shards[xxh3.HashString(path)&(treeShardsCount-1)]
}

// add registers the given child under the given parent. A nil parent
// registers the child at the top level. It returns ErrActorAlreadyExists
// when a live sibling bears the same name.
func (t *tree) add(parent, child *PID) error {
	parentNode := t.root
	if parent != nil {
		node, ok := t.nodeOf(parent.Path())
		if !ok {
			return NewErrActorNotFound(parent.Path())
		}
		parentNode = node
	}

	childNode := &pidNode{
		pid:      child,
		parent:   parentNode,
		children: make(map[string]*pidNode),
	}

	// the liveness check, the duplicate-sibling check and the insert must be
	// a single critical section on the parent node
	parentNode.mu.Lock()
	// re-check under the lock: a parent that began tearing down after the
	// nodeOf lookup must not adopt a child it would never stop. The teardown
	// scans this children map under the same lock after flipping the
	// stopping bit, so an insert that wins the lock first is still seen.
	if parent != nil && (parent.isStateSet(stoppingState) || parent.isStateSet(stoppedState)) {
		parentNode.mu.Unlock()
		return ErrDead
	}
	if _, ok := parentNode.children[child.Name()]; ok {
		parentNode.mu.Unlock()
		return NewErrActorAlreadyExists(child.Name())
	}
	parentNode.children[child.Name()] = childNode
	parentNode.mu.Unlock()

	shard := t.shardFor(child.Path())
	shard.mu.Lock()
	shard.nodes[child.Path()] = childNode
	shard.mu.Unlock()

	t.paths.Add(child.Path())
	t.counter.Inc()
	return nil
}

// remove unregisters the given PID. Children of the PID must have been
// removed beforehand; teardown guarantees that ordering.
func (t *tree) remove(pid *PID) {
	node, ok := t.nodeOf(pid.Path())
	if !ok {
		return
	}

	parentNode := node.parent
	if parentNode != nil {
		parentNode.mu.Lock()
		delete(parentNode.children, pid.Name())
		parentNode.mu.Unlock()
	}

	shard := t.shardFor(pid.Path())
	shard.mu.Lock()
	delete(shard.nodes, pid.Path())
	shard.mu.Unlock()

	t.paths.Remove(pid.Path())
	t.counter.Dec()
}

// nodeOf returns the tree node registered under the given path
func (t *tree) nodeOf(path string) (*pidNode, bool) {
	shard := t.shardFor(path)
	shard.mu.RLock()
	node, ok := shard.nodes[path]
	shard.mu.RUnlock()
	return node, ok
}

// lookup returns the PID registered under the given path
func (t *tree) lookup(path string) (*PID, bool) {
	node, ok := t.nodeOf(path)
	if !ok {
		return nil, false
	}
	return node.pid, true
}

// exists reports whether an actor is registered under the given path
func (t *tree) exists(path string) bool {
	return t.paths.Contains(path)
}

// children returns the live children of the given PID
func (t *tree) children(pid *PID) []*PID {
	node, ok := t.nodeOf(pid.Path())
	if !ok {
		return nil
	}
	node.mu.RLock()
	kids := make([]*PID, 0, len(node.children))
	for _, child := range node.children {
		kids = append(kids, child.pid)
	}
	node.mu.RUnlock()
	return kids
}

// childrenCount returns the number of live children of the given PID
func (t *tree) childrenCount(pid *PID) int {
	node, ok := t.nodeOf(pid.Path())
	if !ok {
		return 0
	}
	node.mu.RLock()
	count := len(node.children)
	node.mu.RUnlock()
	return count
}

// roots returns the actors registered at the top level
func (t *tree) roots() []*PID {
	t.root.mu.RLock()
	out := make([]*PID, 0, len(t.root.children))
	for _, child := range t.root.children {
		out = append(out, child.pid)
	}
	t.root.mu.RUnlock()
	return out
}

// actors returns all the registered actors
func (t *tree) actors() []*PID {
	var out []*PID
	for _, shard := range t.shards {
		shard.mu.RLock()
		for _, node := range shard.nodes {
			out = append(out, node.pid)
		}
		shard.mu.RUnlock()
	}
	return out
}

// count returns the number of registered actors
func (t *tree) count() int64 {
	return t.counter.Load()
}
