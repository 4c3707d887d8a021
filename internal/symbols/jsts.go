package symbols

import sitter "github.com/smacker/go-tree-sitter"

// walkJSTS is shared by JavaScript and TypeScript: both grammars share node
// kinds for the base constructs; tsExtras additionally emits TypeScript-only
// declaration kinds.
func walkJSTS(root *sitter.Node, source []byte, tsExtras bool) []string {
	var names []string
	walk(root, func(n *sitter.Node) {
		switch n.Type() {
		case "function_declaration", "class_declaration", "method_definition":
			if name, ok := fieldText(n, "name", source); ok {
				names = append(names, name)
			}
		case "interface_declaration", "type_alias_declaration", "enum_declaration":
			if !tsExtras {
				return
			}
			if name, ok := fieldText(n, "name", source); ok {
				names = append(names, name)
			}
		case "variable_declarator":
			if !isTopLevelVariable(n) {
				return
			}
			if name, ok := fieldText(n, "name", source); ok {
				names = append(names, name)
			}
		}
	})
	return names
}

// isTopLevelVariable reports whether a variable_declarator's enclosing
// declaration sits directly under the program root or an export statement —
// i.e. a module-level `const`/`let` binding, not a binding local to a
// function or block.
func isTopLevelVariable(n *sitter.Node) bool {
	parent := n.Parent()
	if parent == nil {
		return false
	}
	switch parent.Type() {
	case "variable_declaration", "lexical_declaration":
	default:
		return false
	}
	grandparent := parent.Parent()
	if grandparent == nil {
		return false
	}
	switch grandparent.Type() {
	case "program", "export_statement":
		return true
	default:
		return false
	}
}
