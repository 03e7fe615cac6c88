package scene

// PatchOp describes one mutation needed to turn the previous frame into the
// next one.
type PatchOp string

const (
	OpInsert PatchOp = "insert"
	OpRemove PatchOp = "remove"
	OpUpdate PatchOp = "update"
)

// Patch is a single keyed mutation produced by Diff. Update patches carry
// only the attributes that changed; an empty value means the attribute was
// removed. Patches are self-contained copies, safe to serialize after the
// scene graph has moved on.
type Patch struct {
	Op    PatchOp           `json:"op"`
	Key   string            `json:"key"`
	Tag   string            `json:"tag"`
	Attrs map[string]string `json:"attrs,omitempty"`
	Text  string            `json:"text,omitempty"`
}

// Diff compares two frames level by level, matching children on their stable
// keys. It reports inserted, removed and attribute-changed nodes; unchanged
// subtrees produce no patches, which is what makes transform re-projection
// cheap compared to a full render.
func Diff(prev, next *Node) []Patch {
	var patches []Patch
	diffNodes(prev, next, &patches)
	return patches
}

func diffNodes(prev, next *Node, patches *[]Patch) {
	if prev == nil && next == nil {
		return
	}
	if prev == nil {
		next.Walk(func(n *Node) {
			*patches = append(*patches, Patch{Op: OpInsert, Key: n.Key, Tag: n.Tag, Attrs: copyAttrs(n.Attrs), Text: n.Text})
		})
		return
	}
	if next == nil {
		prev.Walk(func(n *Node) {
			*patches = append(*patches, Patch{Op: OpRemove, Key: n.Key, Tag: n.Tag})
		})
		return
	}

	if prev.Tag != next.Tag {
		// Key reuse across tags is a replace, not an update.
		*patches = append(*patches, Patch{Op: OpRemove, Key: prev.Key, Tag: prev.Tag})
		next.Walk(func(n *Node) {
			*patches = append(*patches, Patch{Op: OpInsert, Key: n.Key, Tag: n.Tag, Attrs: copyAttrs(n.Attrs), Text: n.Text})
		})
		return
	}

	if changed := changedAttrs(prev, next); len(changed) > 0 || prev.Text != next.Text {
		*patches = append(*patches, Patch{Op: OpUpdate, Key: next.Key, Tag: next.Tag, Attrs: changed, Text: next.Text})
	}

	prevByKey := make(map[string]*Node, len(prev.Children))
	for _, c := range prev.Children {
		prevByKey[c.Key] = c
	}

	seen := make(map[string]bool, len(next.Children))
	for _, c := range next.Children {
		seen[c.Key] = true
		diffNodes(prevByKey[c.Key], c, patches)
	}
	for _, c := range prev.Children {
		if !seen[c.Key] {
			diffNodes(c, nil, patches)
		}
	}
}

// changedAttrs returns the attributes of next that differ from prev, plus an
// empty entry for each attribute prev had and next dropped. Attribute values
// are never legitimately empty, so empty marks removal.
func changedAttrs(prev, next *Node) map[string]string {
	var changed map[string]string
	record := func(name, value string) {
		if changed == nil {
			changed = make(map[string]string)
		}
		changed[name] = value
	}
	for name, value := range next.Attrs {
		if prev.Attrs[name] != value {
			record(name, value)
		}
	}
	for name := range prev.Attrs {
		if _, ok := next.Attrs[name]; !ok {
			record(name, "")
		}
	}
	return changed
}

func copyAttrs(attrs map[string]string) map[string]string {
	if len(attrs) == 0 {
		return nil
	}
	cp := make(map[string]string, len(attrs))
	for name, value := range attrs {
		cp[name] = value
	}
	return cp
}
