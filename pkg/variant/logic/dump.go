package logic

import (
	"fmt"
	"io"

	"github.com/xlab/treeprint"
)

// dependeeDescriber is implemented by owners able to name the variant
// behind a slot.
type dependeeDescriber interface {
	Dependee(slot uint32) (string, bool)
}

// Tree renders the graph rooted at root as a tree.
func Tree(root Node) treeprint.Tree {
	if root == nil {
		return treeprint.NewWithRoot("<none>")
	}
	tree := treeprint.NewWithRoot(label(root))
	addInputs(tree, root, map[Node]bool{root: true})
	return tree
}

// AddTo appends the graph rooted at root to tree as a branch tagged with
// meta.
func AddTo(tree treeprint.Tree, meta string, root Node) {
	if root == nil {
		tree.AddMetaNode(meta, "<none>")
		return
	}
	addInputs(tree.AddMetaBranch(meta, label(root)), root, map[Node]bool{root: true})
}

// Dump writes Tree(root) to w.
func Dump(w io.Writer, root Node) error {
	_, err := io.WriteString(w, Tree(root).String())
	return err
}

func addInputs(tree treeprint.Tree, n Node, onPath map[Node]bool) {
	for _, port := range n.Inputs() {
		child := n.Input(port)
		meta := fmt.Sprintf("port #%d", port)
		if onPath[child] {
			tree.AddMetaNode(meta, fmt.Sprintf("%s <cycle>", child.GUID()))
			continue
		}
		if len(child.Inputs()) == 0 {
			tree.AddMetaNode(meta, label(child))
			continue
		}
		onPath[child] = true
		addInputs(tree.AddMetaBranch(meta, label(child)), child, onPath)
		delete(onPath, child)
	}
}

func label(n Node) string {
	validity := "valid"
	if !n.IsValid() {
		validity = "invalid"
	}
	if s, ok := n.(DependeeSetter); ok {
		slot := s.DependeeSlot()
		if slot == UnsetSlot {
			return fmt.Sprintf("%s [#<unset>] (%s)", n.GUID(), validity)
		}
		if d, ok := n.Owner().(dependeeDescriber); ok {
			if path, ok := d.Dependee(slot); ok {
				return fmt.Sprintf("%s [#%d] '%s' (%s)", n.GUID(), slot, path, validity)
			}
		}
		return fmt.Sprintf("%s [#%d] (%s)", n.GUID(), slot, validity)
	}
	max := "*"
	if n.MaxPorts() != Unbounded {
		max = fmt.Sprintf("%d", n.MaxPorts())
	}
	return fmt.Sprintf("%s [%d..%s] (%s)", n.GUID(), n.MinPorts(), max, validity)
}
