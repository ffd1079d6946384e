package parser

import (
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// PythonExtractor turns a parsed Python syntax tree into a FileAnalysis.
type PythonExtractor struct{}

func (e *PythonExtractor) Extract(root *sitter.Node, source []byte, filePath string) *FileAnalysis {
	a := &FileAnalysis{
		Name: filepath.Base(filePath),
	}
	a.Docstring = e.docstring(root, source)

	seen := make(map[string]bool)
	for i := uint(0); i < root.ChildCount(); i++ {
		e.statement(root.Child(i), source, a, seen, true)
	}

	return a
}

// statement dispatches one statement node. moduleLevel is true only for
// direct children of the module: class extraction is restricted to that
// level, while functions and imports are collected at any depth.
func (e *PythonExtractor) statement(node *sitter.Node, source []byte, a *FileAnalysis, seen map[string]bool, moduleLevel bool) {
	switch node.Kind() {
	case "decorated_definition":
		if def := node.ChildByFieldName("definition"); def != nil {
			e.statement(def, source, a, seen, moduleLevel)
		}
		return

	case "import_statement":
		e.extractImport(node, source, a, seen)
		return

	case "import_from_statement":
		e.extractFromImport(node, source, a, seen)
		return

	case "function_definition":
		a.Functions = append(a.Functions, e.function(node, source))
		if body := node.ChildByFieldName("body"); body != nil {
			for i := uint(0); i < body.ChildCount(); i++ {
				e.statement(body.Child(i), source, a, seen, false)
			}
		}
		return

	case "class_definition":
		if moduleLevel {
			a.Classes = append(a.Classes, e.class(node, source))
		}
		if body := node.ChildByFieldName("body"); body != nil {
			for i := uint(0); i < body.ChildCount(); i++ {
				e.statement(body.Child(i), source, a, seen, false)
			}
		}
		return
	}

	// Compound statements (if, for, try, with, ...) may nest definitions.
	for i := uint(0); i < node.ChildCount(); i++ {
		e.statement(node.Child(i), source, a, seen, false)
	}
}

func (e *PythonExtractor) extractImport(node *sitter.Node, source []byte, a *FileAnalysis, seen map[string]bool) {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)

		switch child.Kind() {
		case "dotted_name", "identifier":
			e.addImport(a, seen, e.text(child, source))
		case "aliased_import":
			// "import X as y" imports module X; the alias is irrelevant here.
			for j := uint(0); j < child.ChildCount(); j++ {
				sub := child.Child(j)
				if sub.Kind() == "dotted_name" || sub.Kind() == "identifier" {
					e.addImport(a, seen, e.text(sub, source))
					break
				}
			}
		}
	}
}

func (e *PythonExtractor) extractFromImport(node *sitter.Node, source []byte, a *FileAnalysis, seen map[string]bool) {
	module := node.ChildByFieldName("module_name")
	if module == nil {
		return
	}

	// "from X import ..." contributes the module only, never the names.
	// Relative imports keep the module path with the leading dots stripped;
	// "from . import x" has no module name left and is skipped.
	text := strings.TrimLeft(e.text(module, source), ".")
	e.addImport(a, seen, text)
}

func (e *PythonExtractor) addImport(a *FileAnalysis, seen map[string]bool, module string) {
	if module == "" || seen[module] {
		return
	}
	seen[module] = true
	a.Imports = append(a.Imports, module)
}

func (e *PythonExtractor) function(node *sitter.Node, source []byte) Function {
	fn := Function{
		Name:      e.text(node.ChildByFieldName("name"), source),
		Docstring: e.docstring(node.ChildByFieldName("body"), source),
	}

	if ret := node.ChildByFieldName("return_type"); ret != nil {
		fn.Returns = e.text(ret, source)
	}

	if params := node.ChildByFieldName("parameters"); params != nil {
		for i := uint(0); i < params.ChildCount(); i++ {
			if name := e.parameterName(params.Child(i), source); name != "" {
				fn.Args = append(fn.Args, name)
			}
		}
	}

	return fn
}

// parameterName extracts the bare name of a positional parameter. Splat
// parameters (*args, **kwargs) are skipped, matching positional-only
// argument listing in signatures.
func (e *PythonExtractor) parameterName(node *sitter.Node, source []byte) string {
	switch node.Kind() {
	case "identifier":
		return e.text(node, source)
	case "typed_parameter":
		for i := uint(0); i < node.ChildCount(); i++ {
			if child := node.Child(i); child.Kind() == "identifier" {
				return e.text(child, source)
			}
		}
	case "default_parameter", "typed_default_parameter":
		if name := node.ChildByFieldName("name"); name != nil && name.Kind() == "identifier" {
			return e.text(name, source)
		}
	}
	return ""
}

func (e *PythonExtractor) class(node *sitter.Node, source []byte) Class {
	cls := Class{
		Name:      e.text(node.ChildByFieldName("name"), source),
		Docstring: e.docstring(node.ChildByFieldName("body"), source),
	}

	// Methods are the class body's immediate function definitions only.
	body := node.ChildByFieldName("body")
	if body == nil {
		return cls
	}
	for i := uint(0); i < body.ChildCount(); i++ {
		child := body.Child(i)
		if child.Kind() == "decorated_definition" {
			if def := child.ChildByFieldName("definition"); def != nil {
				child = def
			}
		}
		if child.Kind() == "function_definition" {
			cls.Methods = append(cls.Methods, e.function(child, source))
		}
	}

	return cls
}

// docstring returns the cleaned text of the first statement in body if it
// is a string-literal expression, else "".
func (e *PythonExtractor) docstring(body *sitter.Node, source []byte) string {
	if body == nil || body.ChildCount() == 0 {
		return ""
	}

	first := body.Child(0)
	if first.Kind() != "expression_statement" || first.ChildCount() == 0 {
		return ""
	}

	str := first.Child(0)
	if str.Kind() != "string" {
		return ""
	}

	for i := uint(0); i < str.ChildCount(); i++ {
		if child := str.Child(i); child.Kind() == "string_content" {
			return cleanDocstring(e.text(child, source))
		}
	}
	return ""
}

// cleanDocstring normalizes indentation the way documentation tooling
// expects: the first line is trimmed, continuation lines lose their common
// leading whitespace, and surrounding blank lines are dropped.
func cleanDocstring(raw string) string {
	lines := strings.Split(raw, "\n")
	if len(lines) == 0 {
		return ""
	}

	lines[0] = strings.TrimSpace(lines[0])

	margin := -1
	for _, line := range lines[1:] {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		indent := len(line) - len(trimmed)
		if margin < 0 || indent < margin {
			margin = indent
		}
	}

	for i, line := range lines[1:] {
		if margin > 0 && len(line) >= margin {
			line = line[margin:]
		}
		lines[i+1] = strings.TrimRight(line, " \t")
	}

	return strings.Trim(strings.Join(lines, "\n"), "\n")
}

func (e *PythonExtractor) text(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}
