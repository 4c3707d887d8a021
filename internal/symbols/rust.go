package symbols

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

var rustNamedKinds = map[string]bool{
	"function_item":           true,
	"function_signature_item": true,
	"struct_item":             true,
	"enum_item":               true,
	"trait_item":              true,
	"const_item":              true,
	"type_item":               true,
}

func walkRust(root *sitter.Node, source []byte) []string {
	var names []string
	walk(root, func(n *sitter.Node) {
		kind := n.Type()
		if rustNamedKinds[kind] {
			if name, ok := fieldText(n, "name", source); ok {
				names = append(names, name)
			}
			return
		}
		if kind == "impl_item" {
			if typeNode := n.ChildByFieldName("type"); typeNode != nil {
				if name := rustImplBaseIdentifier(typeNode, source); name != "" {
					names = append(names, name)
				}
			}
		}
	})
	return names
}

// rustImplBaseIdentifier extracts the base type identifier an `impl` block
// targets, stripping generics (Foo<T> -> Foo) and path prefixes (m::Bar -> Bar).
func rustImplBaseIdentifier(node *sitter.Node, source []byte) string {
	switch node.Type() {
	case "type_identifier":
		return strings.TrimSpace(node.Content(source))
	case "generic_type":
		if node.NamedChildCount() == 0 {
			return ""
		}
		return strings.TrimSpace(node.NamedChild(0).Content(source))
	case "scoped_type_identifier":
		if name, ok := fieldText(node, "name", source); ok {
			return name
		}
		return ""
	default:
		text := strings.TrimSpace(node.Content(source))
		if idx := strings.IndexByte(text, '<'); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}
}
