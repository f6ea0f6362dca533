package recipetree

import (
	"encoding/json"
	"fmt"
)

// nodeRecord is the external tree_dict schema for a single node:
//
//	{label, root, type: "ingredient"|"action", abstr,
//	 extra_info: [tags] (ingredient nodes only), parent: key|null, children}
type nodeRecord struct {
	Label     string   `json:"label"`
	Root      bool     `json:"root"`
	Type      string   `json:"type"`
	Abstr     string   `json:"abstr"`
	ExtraInfo []string `json:"extra_info,omitempty"`
	Parent    *string  `json:"parent"`
	Children  []string `json:"children"`
}

// MarshalJSON serializes the tree as a mapping from node key to record,
// round-tripping the external schema losslessly. extra_info is emitted for
// ingredient nodes only; a root's parent serializes as null.
func (t *Tree) MarshalJSON() ([]byte, error) {
	records := make(map[string]nodeRecord, len(t.nodes))
	for key, n := range t.nodes {
		rec := nodeRecord{
			Label:    n.Label,
			Root:     n.Root,
			Type:     n.Kind.String(),
			Abstr:    n.Abstraction,
			Children: n.Children,
		}
		if rec.Children == nil {
			rec.Children = []string{}
		}
		if n.Kind == Ingredient && len(n.Tags) > 0 {
			rec.ExtraInfo = make([]string, 0, len(n.Tags))
			for _, tag := range n.Tags {
				rec.ExtraInfo = append(rec.ExtraInfo, string(tag))
			}
		}
		if n.Parent != "" {
			parent := n.Parent
			rec.Parent = &parent
		}
		records[key] = rec
	}

	return json.Marshal(records)
}

// UnmarshalJSON rebuilds a tree from the external schema. Kind and tag
// values are checked (ErrBadKind, ErrBadTag, ErrTagOnAction); structural
// invariants are not — callers run Validate on the result, regardless of
// any is_tree flag the producer attached.
func (t *Tree) UnmarshalJSON(data []byte) error {
	var records map[string]nodeRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("recipetree: decode tree_dict: %w", err)
	}

	t.nodes = make(map[string]*Node, len(records))
	for key, rec := range records {
		n := &Node{
			Key:         key,
			Label:       rec.Label,
			Abstraction: rec.Abstr,
			Root:        rec.Root,
			Children:    append([]string(nil), rec.Children...),
		}
		switch rec.Type {
		case "ingredient":
			n.Kind = Ingredient
		case "action":
			n.Kind = Action
		default:
			return fmt.Errorf("%w: %q on node %q", ErrBadKind, rec.Type, key)
		}
		for _, raw := range rec.ExtraInfo {
			tag := Tag(raw)
			if !validTag(tag) {
				return fmt.Errorf("%w: %q on node %q", ErrBadTag, raw, key)
			}
			n.Tags = append(n.Tags, tag)
		}
		if rec.Parent != nil {
			n.Parent = *rec.Parent
		}
		if err := t.Add(n); err != nil {
			return fmt.Errorf("recipetree: node %q: %w", key, err)
		}
	}

	return nil
}
