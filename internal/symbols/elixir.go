package symbols

import sitter "github.com/smacker/go-tree-sitter"

var defFamily = map[string]bool{
	"def":         true,
	"defp":        true,
	"defmacro":    true,
	"defmacrop":   true,
	"defguard":    true,
	"defguardp":   true,
	"defdelegate": true,
}

// walkElixir extracts module/protocol names from defmodule/defprotocol/
// defimpl and function names from the def family. Elixir has no dedicated
// declaration node kinds — everything is a `call` with a conventional
// target identifier, so the walker pattern-matches on that identifier's
// text rather than on node kind.
func walkElixir(root *sitter.Node, source []byte) []string {
	var names []string
	walk(root, func(n *sitter.Node) {
		if n.Type() != "call" {
			return
		}
		target := callTarget(n, source)
		if target == "" {
			return
		}
		args := callArguments(n)

		switch target {
		case "defmodule", "defprotocol":
			if name := firstAliasText(args, source); name != "" {
				names = append(names, name)
			}
		case "defimpl":
			if name := firstAliasText(args, source); name != "" {
				names = append(names, name)
			}
		default:
			if defFamily[target] {
				if name := elixirFunctionName(args, source); name != "" {
					names = append(names, name)
				}
			}
		}
	})
	return names
}

func callTarget(call *sitter.Node, source []byte) string {
	target := call.ChildByFieldName("target")
	if target == nil && call.NamedChildCount() > 0 {
		target = call.NamedChild(0)
	}
	if target == nil || target.Type() != "identifier" {
		return ""
	}
	return target.Content(source)
}

// callArguments returns the node holding a call's argument list, or nil.
func callArguments(call *sitter.Node) *sitter.Node {
	if args := call.ChildByFieldName("arguments"); args != nil {
		return args
	}
	count := int(call.NamedChildCount())
	for i := 0; i < count; i++ {
		c := call.NamedChild(i)
		if c.Type() == "arguments" {
			return c
		}
	}
	return nil
}

// firstAliasText returns the text of the first `alias` child found under
// args (the full dotted module/protocol name), or "" if none.
func firstAliasText(args *sitter.Node, source []byte) string {
	if args == nil {
		return ""
	}
	count := int(args.NamedChildCount())
	for i := 0; i < count; i++ {
		c := args.NamedChild(i)
		if c.Type() == "alias" {
			return c.Content(source)
		}
	}
	return ""
}

// elixirFunctionName inspects the first argument of a def-family call,
// matching the three AST shapes a function head can take:
//   - nested call (has parameters): def foo(a, b) do ... end
//   - bare identifier (no parameters): def foo do ... end
//   - binary_operator with a guard clause: def foo(a) when is_x(a) do ... end
func elixirFunctionName(args *sitter.Node, source []byte) string {
	if args == nil || args.NamedChildCount() == 0 {
		return ""
	}
	head := args.NamedChild(0)
	switch head.Type() {
	case "call":
		if target := callTarget(head, source); target != "" {
			return target
		}
		return ""
	case "identifier":
		return head.Content(source)
	case "binary_operator":
		left := head.ChildByFieldName("left")
		if left == nil {
			return ""
		}
		switch left.Type() {
		case "call":
			return callTarget(left, source)
		case "identifier":
			return left.Content(source)
		}
	}
	return ""
}
