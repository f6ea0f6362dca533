// Package recipetree declares the Node and Tree types, node kinds and
// ingredient tags, sentinel errors, and the Tree constructor.
//
// Errors:
//
//	ErrNilNode        - node pointer is nil.
//	ErrEmptyKey       - node key is the empty string.
//	ErrDuplicateKey   - a node with the same key already exists.
//	ErrTagOnAction    - tags supplied for an Action node.
//	ErrBadKind        - serialized node type is neither ingredient nor action.
//	ErrBadTag         - serialized tag outside {structure, taste, core}.
//	ErrNodeNotFound   - requested node does not exist.
//	ErrMalformedTree  - a structural invariant is violated (see Validate).
package recipetree

import "errors"

// Sentinel errors for tree construction and validation.
var (
	// ErrNilNode indicates a nil *Node was passed to Add.
	ErrNilNode = errors.New("recipetree: node is nil")

	// ErrEmptyKey indicates the provided Node has an empty key.
	ErrEmptyKey = errors.New("recipetree: node key is empty")

	// ErrDuplicateKey indicates a node key is already present in the tree.
	ErrDuplicateKey = errors.New("recipetree: duplicate node key")

	// ErrTagOnAction indicates tags were attached to an Action node.
	ErrTagOnAction = errors.New("recipetree: tags are only meaningful for ingredient nodes")

	// ErrBadKind indicates an unknown node kind in serialized input.
	ErrBadKind = errors.New("recipetree: unknown node type")

	// ErrBadTag indicates a tag outside the allowed set in serialized input.
	ErrBadTag = errors.New("recipetree: unknown ingredient tag")

	// ErrNodeNotFound indicates an operation referenced a non-existent node.
	ErrNodeNotFound = errors.New("recipetree: node not found")

	// ErrMalformedTree indicates a violated structural invariant.
	// Validate wraps it with the specific violation; check with errors.Is.
	ErrMalformedTree = errors.New("recipetree: malformed tree")
)

// Kind distinguishes the two node variants of a recipe tree.
type Kind int

const (
	// Ingredient nodes are always leaves.
	Ingredient Kind = iota

	// Action nodes are always internal.
	Action
)

// String returns the serialized form of the kind ("ingredient" / "action").
func (k Kind) String() string {
	if k == Action {
		return "action"
	}
	return "ingredient"
}

// Tag is an ingredient flag carried in the external extra_info field.
type Tag string

const (
	// TagStructure marks ingredients that carry the dish's physical structure.
	TagStructure Tag = "structure"

	// TagTaste marks ingredients that primarily contribute flavor.
	TagTaste Tag = "taste"

	// TagCore marks the dish-defining ingredients (e.g. lemon in lemon pie).
	TagCore Tag = "core"
)

// validTag reports whether t belongs to the allowed tag set.
func validTag(t Tag) bool {
	return t == TagStructure || t == TagTaste || t == TagCore
}

// Node is a single recipe-tree node.
//
// Key uniquely identifies the node within its Tree. Children order is
// semantically meaningful for ingredient grouping under an action but is
// not a strict sibling ranking; SortChildrenByLabel canonicalizes it.
type Node struct {
	// Key is the unique identifier of this node within its tree.
	Key string

	// Label is the free-text name ("bread", "toast").
	Label string

	// Kind is Ingredient or Action.
	Kind Kind

	// Abstraction is the normalized semantic category ("bread", "heat").
	Abstraction string

	// Tags holds ingredient flags; must be empty for Action nodes.
	Tags []Tag

	// Root marks the single root node of the tree.
	Root bool

	// Parent is the parent node key; empty only for the root.
	Parent string

	// Children are the ordered child node keys.
	Children []string
}

// clone returns a deep copy of the node.
func (n *Node) clone() *Node {
	c := *n
	if n.Tags != nil {
		c.Tags = append([]Tag(nil), n.Tags...)
	}
	if n.Children != nil {
		c.Children = append([]string(nil), n.Children...)
	}
	return &c
}

// Tree is a mapping from node key to Node.
//
// Invariants (checked by Validate, not enforced on every mutation):
// exactly one root; every non-root node appears in its parent's Children;
// no cycles; every node reachable from the root; leaves are Ingredients,
// internal nodes are Actions.
type Tree struct {
	nodes map[string]*Node
}

// New creates an empty Tree.
// Complexity: O(1)
func New() *Tree {
	return &Tree{nodes: make(map[string]*Node)}
}

// Add inserts n into the tree.
// Returns ErrNilNode, ErrEmptyKey, ErrDuplicateKey or ErrTagOnAction.
// Structural invariants are deliberately not checked here; call Validate
// once construction is complete.
func (t *Tree) Add(n *Node) error {
	if n == nil {
		return ErrNilNode
	}
	if n.Key == "" {
		return ErrEmptyKey
	}
	if _, ok := t.nodes[n.Key]; ok {
		return ErrDuplicateKey
	}
	if n.Kind == Action && len(n.Tags) > 0 {
		return ErrTagOnAction
	}
	t.nodes[n.Key] = n

	return nil
}

// Node returns the node stored under key, or nil when absent.
func (t *Tree) Node(key string) *Node {
	return t.nodes[key]
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}
