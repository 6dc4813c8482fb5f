/*
* The MIT License (MIT)
* =====================
*
* Copyright (c) 2015, Cagatay Dogan
*
* Permission is hereby granted, free of charge, to any person obtaining a copy
* of this software and associated documentation files (the "Software"), to deal
* in the Software without restriction, including without limitation the rights
* to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
* copies of the Software, and to permit persons to whom the Software is
* furnished to do so, subject to the following conditions:
*
* The above copyright notice and this permission notice shall be included in
* all copies or substantial portions of the Software.
*
* THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
* IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
* FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
* AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
* LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
* OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
* THE SOFTWARE.
 */

// Package tree provides a left-leaning red-black tree used as the
// ordered backing structure for extremum aggregate state. The tree is
// not synchronized; each aggregate state owns its tree exclusively.
package tree

type KeyComparison int8

const (
	// KeyIsLess is returned as result of key comparison if the first key is less than the second key
	KeyIsLess KeyComparison = iota - 1
	// KeysAreEqual is returned as result of key comparison if the first key is equal to the second key
	KeysAreEqual
	// KeyIsGreater is returned as result of key comparison if the first key is greater than the second key
	KeyIsGreater
)

const (
	red   = byte(0)
	black = byte(1)
)

type RbKey interface {
	ComparedTo(key RbKey) KeyComparison
}

type rbNode struct {
	key    RbKey
	value  interface{}
	colour byte
	left   *rbNode
	right  *rbNode
}

type RbTree struct {
	root  *rbNode
	count int
}

func NewRbTree() *RbTree {
	return &RbTree{}
}

func newRbNode(key RbKey, value interface{}) *rbNode {
	return &rbNode{
		key:    key,
		value:  value,
		colour: red,
	}
}

func isRed(node *rbNode) bool {
	return node != nil && node.colour == red
}

func isBlack(node *rbNode) bool {
	return node != nil && node.colour == black
}

func minNode(node *rbNode) *rbNode {
	if node != nil {
		for node.left != nil {
			node = node.left
		}
	}
	return node
}

func maxNode(node *rbNode) *rbNode {
	if node != nil {
		for node.right != nil {
			node = node.right
		}
	}
	return node
}

func flipSingleNodeColour(node *rbNode) {
	if node.colour == black {
		node.colour = red
	} else {
		node.colour = black
	}
}

// Flips the colours of node, and its two children
func colourFlip(node *rbNode) {
	flipSingleNodeColour(node)
	flipSingleNodeColour(node.left)
	flipSingleNodeColour(node.right)
}

func rotateLeft(node *rbNode) *rbNode {
	child := node.right
	node.right = child.left
	child.left = node
	child.colour = node.colour
	node.colour = red
	return child
}

func rotateRight(node *rbNode) *rbNode {
	child := node.left
	node.left = child.right
	child.right = node
	child.colour = node.colour
	node.colour = red
	return child
}

// moveRedLeft makes node.left or one of its children red,
// assuming that node is red and both children are black.
func moveRedLeft(node *rbNode) *rbNode {
	colourFlip(node)

	if isRed(node.right.left) {
		node.right = rotateRight(node.right)
		node = rotateLeft(node)
		colourFlip(node)
	}
	return node
}

// moveRedRight makes node.right or one of its children red,
// assuming that node is red and both children are black.
func moveRedRight(node *rbNode) *rbNode {
	colourFlip(node)
	if isRed(node.left.left) {
		node = rotateRight(node)
		colourFlip(node)
	}
	return node
}

func balance(node *rbNode) *rbNode {
	if isRed(node.right) {
		node = rotateLeft(node)
	}

	if isRed(node.left) && isRed(node.left.left) {
		node = rotateRight(node)
	}
	if isRed(node.left) && isRed(node.right) {
		colourFlip(node)
	}
	return node
}

func deleteMin(node *rbNode) *rbNode {
	if node.left == nil {
		return nil
	}

	if isBlack(node.left) && !isRed(node.left.left) {
		node = moveRedLeft(node)
	}
	node.left = deleteMin(node.left)
	return balance(node)
}

func (tree *RbTree) Count() int {
	return tree.count
}

func (tree *RbTree) IsEmpty() bool {
	return tree.root == nil
}

func (tree *RbTree) Min() (RbKey, interface{}) {
	if tree.root != nil {
		result := minNode(tree.root)
		return result.key, result.value
	}
	return nil, nil
}

func (tree *RbTree) Max() (RbKey, interface{}) {
	if tree.root != nil {
		result := maxNode(tree.root)
		return result.key, result.value
	}
	return nil, nil
}

func (tree *RbTree) find(key RbKey) *rbNode {
	for node := tree.root; node != nil; {
		switch key.ComparedTo(node.key) {
		case KeyIsLess:
			node = node.left
		case KeyIsGreater:
			node = node.right
		default:
			return node
		}
	}
	return nil
}

func (tree *RbTree) Get(key RbKey) (interface{}, bool) {
	if key != nil && tree.root != nil {
		node := tree.find(key)
		if node != nil {
			return node.value, true
		}
	}
	return nil, false
}

func (tree *RbTree) Exists(key RbKey) bool {
	_, found := tree.Get(key)
	return found
}

// insertNode adds the given key and value into the node
func (tree *RbTree) insertNode(node *rbNode, key RbKey, value interface{}) *rbNode {
	if node == nil {
		tree.count++
		return newRbNode(key, value)
	}

	switch key.ComparedTo(node.key) {
	case KeyIsLess:
		node.left = tree.insertNode(node.left, key, value)
	case KeyIsGreater:
		node.right = tree.insertNode(node.right, key, value)
	default:
		node.value = value
	}
	return balance(node)
}

// Insert inserts the given key and value into the tree. Inserting an
// existing key replaces its value.
func (tree *RbTree) Insert(key RbKey, value interface{}) {
	if key != nil {
		tree.root = tree.insertNode(tree.root, key, value)
		tree.root.colour = black
	}
}

// deleteNode deletes the given key from the node
func (tree *RbTree) deleteNode(node *rbNode, key RbKey) *rbNode {
	if node == nil {
		return nil
	}

	cmp := key.ComparedTo(node.key)
	if cmp == KeyIsLess {
		if isBlack(node.left) && !isRed(node.left.left) {
			node = moveRedLeft(node)
		}
		node.left = tree.deleteNode(node.left, key)
	} else {
		if isRed(node.left) {
			node = rotateRight(node)
		}

		if isBlack(node.right) && !isRed(node.right.left) {
			node = moveRedRight(node)
		}

		if key.ComparedTo(node.key) != KeysAreEqual {
			node.right = tree.deleteNode(node.right, key)
		} else {
			if node.right == nil {
				return nil
			}

			rm := minNode(node.right)
			node.key = rm.key
			node.value = rm.value
			node.right = deleteMin(node.right)

			rm.left = nil
			rm.right = nil
		}
	}
	return balance(node)
}

// Delete deletes the given key from the tree.
func (tree *RbTree) Delete(key RbKey) {
	if !tree.Exists(key) {
		// the extra look-up keeps count exact
		return
	}

	tree.count--
	tree.root = tree.deleteNode(tree.root, key)
	if tree.root != nil {
		tree.root.colour = black
	}
}

type RbTreeCallback func(RbKey, interface{}) bool

func traverseAll(node *rbNode, callback RbTreeCallback) bool {
	if node == nil {
		return false
	}

	if node.left != nil {
		if traverseAll(node.left, callback) {
			return true
		}
	}

	if callback(node.key, node.value) {
		return true
	}

	if node.right != nil {
		if traverseAll(node.right, callback) {
			return true
		}
	}
	return false
}

// Map calls fn for every entry in ascending key order until fn
// returns true.
func (tree *RbTree) Map(fn RbTreeCallback) {
	if tree.IsEmpty() {
		return
	}
	traverseAll(tree.root, fn)
}
