package symbols

import sitter "github.com/smacker/go-tree-sitter"

func walkPython(root *sitter.Node, source []byte) []string {
	var names []string
	walk(root, func(n *sitter.Node) {
		switch n.Type() {
		case "function_definition", "class_definition":
			if name, ok := fieldText(n, "name", source); ok {
				names = append(names, name)
			}
		}
	})
	return names
}
