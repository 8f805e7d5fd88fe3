package lang

import (
	"github.com/pkg/errors"

	"github.com/npillmayer/pengo/ast"
	"github.com/npillmayer/pengo/lr/lalr"
	"github.com/npillmayer/pengo/lr/scanner"
)

// Parse runs the front end on a Pengo source: the input is tokenized,
// parsed and collapsed into statements. The parse tree is returned as well,
// for diagnostic purposes.
//
// Errors are wrapped with context; errors.Cause returns one of
// *lexmach.LexError, *lalr.SyntaxError or *StructureError for errors in
// the source.
func Parse(src string) ([]ast.Statement, *lalr.Node, error) {
	tables, err := Tables()
	if err != nil {
		return nil, nil, errors.Wrap(err, "cannot create Pengo parser tables")
	}
	if err = CheckCoverage(tables.G); err != nil {
		return nil, nil, errors.Wrap(err, "Pengo collapser incomplete")
	}
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, nil, errors.Wrap(err, "lexical error")
	}
	p := lalr.NewParser(tables, lalr.TokenNames(TokenName))
	tree, err := p.Parse(scanner.NewTokenQueue(tokens))
	if err != nil {
		return nil, nil, errors.Wrap(err, "syntax error")
	}
	stmts, err := Collapse(tree)
	if err != nil {
		return nil, tree, errors.Wrap(err, "structure error")
	}
	tracer().Debugf("parsed %d top-level statements", len(stmts))
	return stmts, tree, nil
}
