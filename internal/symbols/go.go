package symbols

import sitter "github.com/smacker/go-tree-sitter"

func walkGo(root *sitter.Node, source []byte) []string {
	var names []string
	walk(root, func(n *sitter.Node) {
		switch n.Type() {
		case "function_declaration", "method_declaration", "type_spec", "const_spec":
			if name, ok := fieldText(n, "name", source); ok {
				names = append(names, name)
			}
		}
	})
	return names
}
