package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/codemining/syntax"
)

// TreeJSONEncoder dumps a syntax tree, including the namespace and symbol
// of every name, for inspecting how names were classified.
type TreeJSONEncoder struct {
	w io.Writer
}

func NewTreeJSONEncoder(w io.Writer) *TreeJSONEncoder {
	return &TreeJSONEncoder{w: w}
}

func (e *TreeJSONEncoder) Encode(t *syntax.Tree) error {
	text, err := e.MarshalText(t)
	if err != nil {
		return err
	}
	if _, err := e.w.Write(text); err != nil {
		return err
	}
	_, err = io.WriteString(e.w, "\n")
	return err
}

func (e *TreeJSONEncoder) MarshalText(t *syntax.Tree) ([]byte, error) {
	doc := treeJSON{Incomplete: t.Incomplete, Errors: t.Errors}
	if t.Root != syntax.NoNode {
		doc.Root = nodeToJSON(t, t.Root)
	}
	return json.MarshalIndent(doc, "", "  ")
}

type treeJSON struct {
	Incomplete bool          `json:"incomplete,omitempty"`
	Errors     []string      `json:"errors,omitempty"`
	Root       *treeJSONNode `json:"root,omitempty"`
}

type treeJSONNode struct {
	Kind      string          `json:"kind"`
	Start     int             `json:"start"`
	Length    int             `json:"length"`
	Name      string          `json:"name,omitempty"`
	Namespace string          `json:"namespace,omitempty"`
	Symbol    int32           `json:"symbol,omitempty"`
	Children  []*treeJSONNode `json:"children,omitempty"`
}

func nodeToJSON(t *syntax.Tree, id syntax.NodeID) *treeJSONNode {
	n := t.Node(id)
	jn := &treeJSONNode{
		Kind:   n.Kind,
		Start:  n.Start,
		Length: n.Length,
		Symbol: int32(n.Symbol),
	}
	if n.IsName() {
		jn.Name = n.Name
		jn.Namespace = n.Namespace.String()
	}
	if len(n.Children) > 0 {
		jn.Children = make([]*treeJSONNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = nodeToJSON(t, child)
		}
	}
	return jn
}
