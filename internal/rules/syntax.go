package rules

import (
	"context"
	"fmt"
	"path"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/codewithboateng/lintinfer/internal/ir"
)

// Source is a unit prepared for rules: its raw lines plus what one parse of
// its syntax tree revealed.
type Source struct {
	*ir.SourceUnit
	syn *syntax
}

// Prepare parses unit with the grammar its extension selects. A unit that
// does not parse cleanly is an error.
func Prepare(unit ir.SourceUnit) (*Source, error) {
	if unit.Lines == nil && unit.Text != "" {
		unit = ir.NewSourceUnit(unit.Filename, unit.Text)
	}
	syn, err := analyze(context.Background(), unit)
	if err != nil {
		return nil, err
	}
	return &Source{SourceUnit: &unit, syn: syn}, nil
}

// CodeLines returns the lines with literal bodies, regex patterns and
// comments blanked out. Byte columns match the raw lines.
func (s *Source) CodeLines() []string { return s.syn.code }

// syntax holds the facts rules read from the tree. Rows are 0-based.
type syntax struct {
	code     []string
	strs     []stringLit
	stmts    []stmtEnd
	lists    []listEnd
	blocks   []braceBlock
	keywords []keywordAfter
	comments []comment
	eqs      []looseEq

	consoles  []int
	vars      []int
	debuggers []int

	commentEOL  map[int]bool // the row ends inside a comment
	templateEOL map[int]bool // the row ends inside a template literal
	continued   map[int]bool // the row starts inside a comment, string or template
}

type stringLit struct {
	quote byte
	row   int
	// needsTemplate: substitutions, a tag or a line break keep it a template
	needsTemplate bool
	// plainOnly: a position where a template literal is not allowed
	plainOnly bool
}

type stmtEnd struct {
	row     int // row of the last token
	semi    bool
	semiRow int
}

type listEnd struct {
	lastRow   int // row where the last element ends
	multiline bool
	comma     bool
	commaRow  int
	rest      bool
}

type braceBlock struct {
	open, close int
	before      int // row of the token before "{"
	after       int // row of the first token inside, -1 when empty
	lastInside  int // row of the last token inside, -1 when empty
}

type keywordAfter struct {
	close   int // row of the "}" ending the previous block
	keyword int
}

type comment struct {
	row, endRow int
	text        string
}

type looseEq struct {
	row     int
	op      string
	smartOK bool
}

func grammarFor(filename string) *sitter.Language {
	switch strings.ToLower(path.Ext(filename)) {
	case ".ts", ".mts", ".cts":
		return typescript.GetLanguage()
	case ".tsx":
		return tsx.GetLanguage()
	}
	return javascript.GetLanguage()
}

func analyze(ctx context.Context, unit ir.SourceUnit) (*syntax, error) {
	src := []byte(unit.Text)

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(grammarFor(unit.Filename))

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", unit.Filename, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, fmt.Errorf("%s:%d: syntax error", unit.Filename, errorRow(root)+1)
	}

	a := &analyzer{
		src:     src,
		blanked: append([]byte(nil), src...),
		syn: &syntax{
			commentEOL:  map[int]bool{},
			templateEOL: map[int]bool{},
			continued:   map[int]bool{},
		},
	}
	a.walk(root, nil)
	a.syn.code = splitCode(a.blanked)
	return a.syn, nil
}

// errorRow locates the first error or missing node.
func errorRow(n *sitter.Node) int {
	if n.IsError() || n.IsMissing() {
		return int(n.StartPoint().Row)
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.HasError() || c.IsMissing() {
			return errorRow(c)
		}
	}
	return int(n.StartPoint().Row)
}

type analyzer struct {
	src     []byte
	blanked []byte
	syn     *syntax
}

var (
	semiStatements = map[string]bool{
		"expression_statement":    true,
		"lexical_declaration":     true,
		"variable_declaration":    true,
		"return_statement":        true,
		"throw_statement":         true,
		"break_statement":         true,
		"continue_statement":      true,
		"debugger_statement":      true,
		"import_statement":        true,
		"export_statement":        true,
		"do_statement":            true,
		"type_alias_declaration":  true,
		"field_definition":        true,
		"public_field_definition": true,
	}
	listNodes = map[string]bool{
		"object":         true,
		"array":          true,
		"object_pattern": true,
		"array_pattern":  true,
		"named_imports":  true,
		"export_clause":  true,
	}
	blockNodes = map[string]bool{
		"statement_block": true,
		"class_body":      true,
		"switch_body":     true,
	}
	// blocks directly inside these stand alone and have no controlling statement
	statementListParents = map[string]bool{
		"program":            true,
		"statement_block":    true,
		"switch_case":        true,
		"switch_default":     true,
		"class_static_block": true,
	}
	// a default export of these is a declaration, not an expression statement
	declarationValues = map[string]bool{
		"function":            true,
		"function_expression": true,
		"generator_function":  true,
		"class":               true,
	}
)

func (a *analyzer) walk(n, parent *sitter.Node) {
	switch t := n.Type(); {
	case t == "comment":
		a.comment(n)
		return
	case t == "string":
		a.stringLit(n, parent)
		return
	case t == "template_string":
		a.template(n, parent)
		return
	case t == "regex":
		if p := childOfType(n, "regex_pattern"); p != nil {
			a.blank(p.StartByte(), p.EndByte())
		}
		return
	case semiStatements[t]:
		a.statement(n, parent)
	case listNodes[t]:
		a.list(n)
	case blockNodes[t]:
		a.block(n, parent)
	case t == "else_clause" || t == "catch_clause" || t == "finally_clause":
		a.keyword(n)
	case t == "member_expression" || t == "subscript_expression":
		if obj := n.ChildByFieldName("object"); obj != nil && obj.Type() == "identifier" && obj.Content(a.src) == "console" {
			a.syn.consoles = append(a.syn.consoles, row(n))
		}
	case t == "binary_expression":
		a.equality(n)
	}
	switch n.Type() {
	case "variable_declaration":
		a.syn.vars = append(a.syn.vars, row(n))
	case "debugger_statement":
		a.syn.debuggers = append(a.syn.debuggers, row(n))
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		a.walk(n.Child(i), n)
	}
}

func (a *analyzer) comment(n *sitter.Node) {
	a.blank(n.StartByte(), n.EndByte())
	a.markContinued(n)
	start, end := row(n), int(n.EndPoint().Row)
	for r := start; r < end; r++ {
		a.syn.commentEOL[r] = true
	}
	if strings.TrimSpace(a.restOfLine(n.EndByte())) == "" {
		a.syn.commentEOL[end] = true
	}
	a.syn.comments = append(a.syn.comments, comment{row: start, endRow: end, text: n.Content(a.src)})
}

func (a *analyzer) stringLit(n, parent *sitter.Node) {
	a.blank(n.StartByte()+1, n.EndByte()-1)
	a.markContinued(n)
	if parent != nil && parent.Type() == "jsx_attribute" {
		return
	}
	a.syn.strs = append(a.syn.strs, stringLit{
		quote:     a.src[n.StartByte()],
		row:       row(n),
		plainOnly: plainOnly(n, parent),
	})
}

// plainOnly reports positions where a template literal is a syntax error
// or changes meaning: module sources, property keys, directives and types.
func plainOnly(n, parent *sitter.Node) bool {
	if parent == nil {
		return false
	}
	switch parent.Type() {
	case "import_statement", "export_statement", "expression_statement", "literal_type":
		return true
	case "pair", "pair_pattern", "method_definition", "field_definition", "public_field_definition":
		for _, f := range []string{"key", "name", "property"} {
			if k := parent.ChildByFieldName(f); k != nil && k.StartByte() == n.StartByte() {
				return true
			}
		}
	}
	return false
}

func (a *analyzer) template(n, parent *sitter.Node) {
	a.blank(n.StartByte()+1, n.EndByte()-1)
	a.markContinued(n)
	for r := row(n); r < int(n.EndPoint().Row); r++ {
		a.syn.templateEOL[r] = true
	}

	subst := false
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.Type() != "template_substitution" {
			continue
		}
		subst = true
		copy(a.blanked[c.StartByte():c.EndByte()], a.src[c.StartByte():c.EndByte()])
		a.walk(c, n)
	}
	if parent != nil && parent.Type() == "call_expression" {
		return // tagged
	}
	a.syn.strs = append(a.syn.strs, stringLit{
		quote:         '`',
		row:           row(n),
		needsTemplate: subst || n.EndPoint().Row > n.StartPoint().Row,
	})
}

func (a *analyzer) statement(n, parent *sitter.Node) {
	if parent != nil && parent.Type() == "for_statement" {
		if body := parent.ChildByFieldName("body"); body == nil || body.StartByte() != n.StartByte() {
			return // header clauses
		}
	}
	if n.Type() == "export_statement" {
		if n.ChildByFieldName("declaration") != nil {
			return
		}
		if v := n.ChildByFieldName("value"); v != nil && declarationValues[v.Type()] {
			return
		}
	}

	last := lastChild(n)
	if last == nil {
		return
	}
	end := stmtEnd{row: int(last.EndPoint().Row)}
	switch {
	case last.Type() == ";":
		end.semi, end.semiRow = true, row(last)
	case n.Type() == "field_definition" || n.Type() == "public_field_definition":
		// class body members carry their ";" as a sibling
		if next := nextSibling(n); next != nil && next.Type() == ";" {
			end.semi, end.semiRow = true, row(next)
		}
	}
	a.syn.stmts = append(a.syn.stmts, end)
}

func (a *analyzer) list(n *sitter.Node) {
	cnt := int(n.ChildCount())
	if cnt < 2 {
		return
	}
	closing := n.Child(cnt - 1)
	var lastTok, lastElem *sitter.Node
	for i := cnt - 2; i >= 1; i-- {
		c := n.Child(i)
		if c.Type() == "comment" {
			continue
		}
		if lastTok == nil {
			lastTok = c
		}
		if c.Type() != "," {
			lastElem = c
			break
		}
	}
	if lastElem == nil || lastElem.Type() == "{" || lastElem.Type() == "[" {
		return
	}
	e := listEnd{
		lastRow:   int(lastElem.EndPoint().Row),
		multiline: lastElem.EndPoint().Row != closing.StartPoint().Row,
		rest:      lastElem.Type() == "rest_pattern" || lastElem.Type() == "rest_element",
	}
	if lastTok.Type() == "," {
		e.comma, e.commaRow = true, row(lastTok)
	}
	a.syn.lists = append(a.syn.lists, e)
}

func (a *analyzer) block(n, parent *sitter.Node) {
	if n.Type() == "statement_block" && (parent == nil || statementListParents[parent.Type()]) {
		return
	}
	cnt := int(n.ChildCount())
	if cnt < 2 {
		return
	}
	open, closing := n.Child(0), n.Child(cnt-1)
	if open.Type() != "{" || closing.Type() != "}" {
		return
	}
	before := prevSibling(n)
	if before == nil {
		return
	}
	b := braceBlock{
		open:       row(open),
		close:      row(closing),
		before:     int(before.EndPoint().Row),
		after:      -1,
		lastInside: -1,
	}
	for i := 1; i < cnt-1; i++ {
		if c := n.Child(i); c.Type() != "comment" {
			b.after = row(c)
			break
		}
	}
	for i := cnt - 2; i >= 1; i-- {
		if c := n.Child(i); c.Type() != "comment" {
			b.lastInside = int(c.EndPoint().Row)
			break
		}
	}
	a.syn.blocks = append(a.syn.blocks, b)
}

// keyword records the "}" before else, catch or finally.
func (a *analyzer) keyword(n *sitter.Node) {
	prev := prevSibling(n)
	if prev == nil {
		return
	}
	if prev.Type() != "statement_block" {
		last := lastChild(prev)
		if last == nil || last.Type() != "statement_block" {
			return
		}
		prev = last
	}
	a.syn.keywords = append(a.syn.keywords, keywordAfter{close: int(prev.EndPoint().Row), keyword: row(n.Child(0))})
}

func (a *analyzer) equality(n *sitter.Node) {
	op := n.ChildByFieldName("operator")
	if op == nil || (op.Type() != "==" && op.Type() != "!=") {
		return
	}
	left, right := n.ChildByFieldName("left"), n.ChildByFieldName("right")
	a.syn.eqs = append(a.syn.eqs, looseEq{
		row:     row(op),
		op:      op.Type(),
		smartOK: isNull(left) || isNull(right) || isTypeof(left) || isTypeof(right) || sameLiteral(left, right),
	})
}

func isNull(n *sitter.Node) bool { return n != nil && n.Type() == "null" }

func isTypeof(n *sitter.Node) bool {
	if n == nil || n.Type() != "unary_expression" {
		return false
	}
	op := n.ChildByFieldName("operator")
	return op != nil && op.Type() == "typeof"
}

func sameLiteral(l, r *sitter.Node) bool {
	if l == nil || r == nil || l.Type() != r.Type() {
		return false
	}
	switch l.Type() {
	case "string", "number", "true", "false":
		return true
	}
	return false
}

func (a *analyzer) blank(from, to uint32) {
	for k := from; k < to && int(k) < len(a.blanked); k++ {
		if c := a.blanked[k]; c != '\n' && c != '\r' {
			a.blanked[k] = ' '
		}
	}
}

func (a *analyzer) markContinued(n *sitter.Node) {
	for r := row(n) + 1; r <= int(n.EndPoint().Row); r++ {
		a.syn.continued[r] = true
	}
}

func (a *analyzer) restOfLine(from uint32) string {
	rest := a.src[from:]
	if i := strings.IndexByte(string(rest), '\n'); i >= 0 {
		rest = rest[:i]
	}
	return string(rest)
}

func row(n *sitter.Node) int { return int(n.StartPoint().Row) }

func childOfType(n *sitter.Node, typ string) *sitter.Node {
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c.Type() == typ {
			return c
		}
	}
	return nil
}

// lastChild returns the last child that is not a comment.
func lastChild(n *sitter.Node) *sitter.Node {
	for i := int(n.ChildCount()) - 1; i >= 0; i-- {
		if c := n.Child(i); c.Type() != "comment" {
			return c
		}
	}
	return nil
}

func prevSibling(n *sitter.Node) *sitter.Node {
	p := n.PrevSibling()
	for p != nil && p.Type() == "comment" {
		p = p.PrevSibling()
	}
	return p
}

func nextSibling(n *sitter.Node) *sitter.Node {
	s := n.NextSibling()
	for s != nil && s.Type() == "comment" {
		s = s.NextSibling()
	}
	return s
}
