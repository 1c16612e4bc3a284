// Package pyparse turns Python source text into the pyast tree the
// translator consumes. Parsing is delegated to the official tree-sitter
// Python grammar; this package only lowers the concrete syntax tree into
// position-annotated pyast nodes. Constructs without a pyast counterpart
// lower to Bad nodes instead of failing: the statement translator's uniform
// fallback owns them, so parsing is always best-effort.
package pyparse

import (
	"fmt"

	"fortio.org/safecast"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tspython "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"catalyst/internal/diag"
	"catalyst/internal/pyast"
	"catalyst/internal/source"
)

// Parser wraps a tree-sitter parser configured for Python.
type Parser struct {
	parser *sitter.Parser
}

// NewParser constructs a parser with the Python grammar loaded.
func NewParser() (*Parser, error) {
	lang := sitter.NewLanguage(tspython.Language())
	if lang == nil {
		return nil, fmt.Errorf("pyparse: python grammar not available")
	}

	p := sitter.NewParser()
	if err := p.SetLanguage(lang); err != nil {
		return nil, fmt.Errorf("pyparse: %w", err)
	}
	return &Parser{parser: p}, nil
}

// Close releases parser resources.
func (p *Parser) Close() {
	if p == nil || p.parser == nil {
		return
	}
	p.parser.Close()
}

// ParseModule parses one source file. Syntax problems are reported as
// diagnostics against file's ID; the returned tree is always usable.
func (p *Parser) ParseModule(file *source.File, rep diag.Reporter) (*pyast.Module, error) {
	if p == nil || p.parser == nil {
		return nil, fmt.Errorf("pyparse: nil parser")
	}

	tree := p.parser.Parse(file.Content, nil)
	if tree == nil {
		return nil, fmt.Errorf("pyparse: parse returned no tree")
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || root.Kind() != "module" {
		return nil, fmt.Errorf("pyparse: unexpected root node")
	}

	c := &converter{src: file.Content, fileID: file.ID, rep: rep}
	if root.HasError() {
		c.reportErrors(root)
	}

	mod := &pyast.Module{Base: c.base(root)}
	mod.Body = c.block(root)
	return mod, nil
}

type converter struct {
	src    []byte
	fileID source.FileID
	rep    diag.Reporter
}

func (c *converter) text(n *sitter.Node) string {
	return string(c.src[n.StartByte():n.EndByte()])
}

func (c *converter) base(n *sitter.Node) pyast.Base {
	start := n.StartPosition()
	end := n.EndPosition()
	line, err := safecast.Conv[uint32](start.Row + 1)
	if err != nil {
		line = 0
	}
	endLine, err := safecast.Conv[uint32](end.Row + 1)
	if err != nil {
		endLine = line
	}
	endCol, err := safecast.Conv[uint32](end.Column)
	if err != nil {
		endCol = 0
	}
	return pyast.Base{Span: pyast.Pos{Line: line, EndLine: endLine, EndCol: endCol}}
}

func (c *converter) span(n *sitter.Node) source.LineSpan {
	b := c.base(n)
	return source.LineSpan{File: c.fileID, Start: b.Span.Line, End: b.Span.EndLine}
}

// reportErrors walks the tree once and reports every error or missing node.
func (c *converter) reportErrors(root *sitter.Node) {
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}
		if n.IsError() {
			diag.ReportError(c.rep, diag.SynSyntaxError, c.span(n), "syntax error")
			return
		}
		if n.IsMissing() {
			diag.ReportError(c.rep, diag.SynMissingNode, c.span(n),
				fmt.Sprintf("expected %s", n.Kind()))
			return
		}
		if !n.HasError() {
			return
		}
		for i := uint(0); i < n.ChildCount(); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)
}
