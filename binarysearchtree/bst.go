package binarysearchtree

import (
	"sync"

	"golang.org/x/exp/constraints"
)

type node[K constraints.Ordered, V any] struct {
	key    K
	value  V
	height int
	left   *node[K, V]
	right  *node[K, V]
	parent *node[K, V]
}

type Iterator[K constraints.Ordered, V any] struct {
	n *node[K, V]
}

func (it Iterator[K, V]) Key() K {
	return it.n.key
}

func (it Iterator[K, V]) Value() V {
	return it.n.value
}

func (it Iterator[K, V]) End() bool {
	return it.n == nil
}

func (it Iterator[K, V]) Next() Iterator[K, V] {
	return Iterator[K, V]{n: nextNode(it.n)}
}

// AVLTree is a height balanced tree keyed by K. The zero value is empty
// and ready to use.
type AVLTree[K constraints.Ordered, V any] struct {
	root *node[K, V]
	size int
	lock sync.RWMutex
}

// Insert stores value under key, replacing any previous value. It reports
// whether the key was new.
func (t *AVLTree[K, V]) Insert(key K, value V) bool {
	t.lock.Lock()
	defer t.lock.Unlock()

	var added bool
	t.root, added = insert(t.root, key, value)
	t.root.parent = nil
	if added {
		t.size++
	}
	return added
}

func (t *AVLTree[K, V]) Size() int {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.size
}

func (t *AVLTree[K, V]) Search(key K) Iterator[K, V] {
	t.lock.RLock()
	defer t.lock.RUnlock()

	n := t.root
	for n != nil && n.key != key {
		if key < n.key {
			n = n.left
		} else {
			n = n.right
		}
	}
	return Iterator[K, V]{n: n}
}

// Floor returns the greatest key <= key.
func (t *AVLTree[K, V]) Floor(key K) Iterator[K, V] {
	t.lock.RLock()
	defer t.lock.RUnlock()

	var found *node[K, V]
	for n := t.root; n != nil; {
		if n.key == key {
			return Iterator[K, V]{n: n}
		}
		if n.key < key {
			found = n
			n = n.right
		} else {
			n = n.left
		}
	}
	return Iterator[K, V]{n: found}
}

func (t *AVLTree[K, V]) Min() Iterator[K, V] {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return Iterator[K, V]{n: leftmost(t.root)}
}

func (t *AVLTree[K, V]) Max() Iterator[K, V] {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return Iterator[K, V]{n: rightmost(t.root)}
}

func height[K constraints.Ordered, V any](n *node[K, V]) int {
	if n == nil {
		return 0
	}
	return n.height
}

// fix recomputes height and re-parents the children.
func (n *node[K, V]) fix() {
	l, r := height(n.left), height(n.right)
	if l > r {
		n.height = l + 1
	} else {
		n.height = r + 1
	}
	if n.left != nil {
		n.left.parent = n
	}
	if n.right != nil {
		n.right.parent = n
	}
}

func rotateRight[K constraints.Ordered, V any](y *node[K, V]) *node[K, V] {
	x := y.left
	y.left = x.right
	x.right = y
	y.fix()
	x.fix()
	return x
}

func rotateLeft[K constraints.Ordered, V any](x *node[K, V]) *node[K, V] {
	y := x.right
	x.right = y.left
	y.left = x
	x.fix()
	y.fix()
	return y
}

func rebalance[K constraints.Ordered, V any](n *node[K, V]) *node[K, V] {
	n.fix()
	switch bf := height(n.left) - height(n.right); {
	case bf > 1:
		if height(n.left.left) < height(n.left.right) {
			n.left = rotateLeft(n.left)
		}
		return rotateRight(n)
	case bf < -1:
		if height(n.right.right) < height(n.right.left) {
			n.right = rotateRight(n.right)
		}
		return rotateLeft(n)
	}
	return n
}

func insert[K constraints.Ordered, V any](n *node[K, V], key K, value V) (*node[K, V], bool) {
	if n == nil {
		return &node[K, V]{key: key, value: value, height: 1}, true
	}

	var added bool
	switch {
	case key < n.key:
		n.left, added = insert(n.left, key, value)
	case key > n.key:
		n.right, added = insert(n.right, key, value)
	default:
		n.value = value
		return n, false
	}
	return rebalance(n), added
}

func leftmost[K constraints.Ordered, V any](n *node[K, V]) *node[K, V] {
	for n != nil && n.left != nil {
		n = n.left
	}
	return n
}

func rightmost[K constraints.Ordered, V any](n *node[K, V]) *node[K, V] {
	for n != nil && n.right != nil {
		n = n.right
	}
	return n
}

func nextNode[K constraints.Ordered, V any](n *node[K, V]) *node[K, V] {
	if n == nil {
		return nil
	}
	if n.right != nil {
		return leftmost(n.right)
	}

	parent := n.parent
	for parent != nil && n == parent.right {
		n = parent
		parent = parent.parent
	}
	return parent
}
