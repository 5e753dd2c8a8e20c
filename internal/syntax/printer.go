package syntax

import (
	"fmt"
	"strings"

	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/token"
)

const indentUnit = "  "

// Operator precedence levels used to decide where parentheses are needed.
// The goja AST drops parentheses, so the printer reintroduces them.
const (
	precLowest = iota
	precSequence
	precAssign
	precConditional
	precLogicalOr
	precLogicalAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
	precExponent
	precUnary
	precPostfix
	precCall
	precPrimary
)

// Generate prints node as JavaScript source. It is total over every node the
// goja parser produces and every node built by this package.
func Generate(node ast.Node) string {
	p := &printer{}
	p.node(node)

	return p.buf.String()
}

type printer struct {
	buf    strings.Builder
	indent int
	// noIn is set while printing a for-statement initializer, where a bare
	// in operator would turn the loop into a for-in.
	noIn bool
}

func (p *printer) write(s string) {
	p.buf.WriteString(s)
}

func (p *printer) newline() {
	p.buf.WriteByte('\n')
	p.buf.WriteString(strings.Repeat(indentUnit, p.indent))
}

// sub prints into a fresh buffer at the current indentation.
func (p *printer) sub(fn func(q *printer)) string {
	q := &printer{indent: p.indent, noIn: p.noIn}
	fn(q)

	return q.buf.String()
}

//nolint:cyclop // dispatch over every node family
func (p *printer) node(node ast.Node) {
	switch n := node.(type) {
	case nil:
	case *ast.Program:
		for i, stmt := range n.Body {
			if i > 0 {
				p.newline()
			}

			p.stmt(stmt)
		}
	case *ast.Binding:
		p.binding(n)
	case *ast.TemplateElement:
		p.write(n.Literal)
	case *ast.CaseStatement:
		p.caseClause(n)
	case *ast.ExpressionBody:
		p.expr(n.Expression, precAssign)
	case *ast.ParameterList:
		p.params(n)
	case ast.ClassElement:
		p.classElement(n)
	case ast.ForLoopInitializer:
		p.forInit(n)
	case ast.ForInto:
		p.forInto(n)
	case ast.Statement:
		p.stmt(n)
	case ast.Expression:
		p.expr(n, precLowest)
	default:
		p.write(fmt.Sprintf("/* %T */", n))
	}
}

// ---------- statements ----------

//nolint:cyclop,funlen // one case per statement kind
func (p *printer) stmt(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.BlockStatement:
		p.block(s.List)
	case *ast.ExpressionStatement:
		text := p.sub(func(q *printer) { q.expr(s.Expression, precLowest) })
		if ambiguousStatementStart(text) {
			text = "(" + text + ")"
		}

		p.write(text)
		p.write(";")
	case *ast.VariableStatement:
		p.write("var ")
		p.bindings(s.List)
		p.write(";")
	case *ast.LexicalDeclaration:
		p.write(s.Token.String())
		p.write(" ")
		p.bindings(s.List)
		p.write(";")
	case *ast.FunctionDeclaration:
		p.function(s.Function)
	case *ast.ClassDeclaration:
		p.class(s.Class)
	case *ast.IfStatement:
		p.ifStmt(s)
	case *ast.ForStatement:
		p.write("for (")
		if s.Initializer != nil {
			p.forInit(s.Initializer)
		}

		p.write(";")
		if s.Test != nil {
			p.write(" ")
			p.expr(s.Test, precLowest)
		}

		p.write(";")
		if s.Update != nil {
			p.write(" ")
			p.expr(s.Update, precLowest)
		}

		p.write(")")
		p.body(s.Body)
	case *ast.ForInStatement:
		p.write("for (")
		p.forInto(s.Into)
		p.write(" in ")
		p.expr(s.Source, precLowest)
		p.write(")")
		p.body(s.Body)
	case *ast.ForOfStatement:
		p.write("for (")
		p.forInto(s.Into)
		p.write(" of ")
		p.expr(s.Source, precAssign)
		p.write(")")
		p.body(s.Body)
	case *ast.WhileStatement:
		p.write("while (")
		p.expr(s.Test, precLowest)
		p.write(")")
		p.body(s.Body)
	case *ast.DoWhileStatement:
		p.write("do")
		p.body(s.Body)
		if _, ok := s.Body.(*ast.BlockStatement); ok {
			p.write(" ")
		} else {
			p.newline()
		}

		p.write("while (")
		p.expr(s.Test, precLowest)
		p.write(");")
	case *ast.ReturnStatement:
		p.write("return")
		if s.Argument != nil {
			p.write(" ")
			p.expr(s.Argument, precLowest)
		}

		p.write(";")
	case *ast.ThrowStatement:
		p.write("throw ")
		p.expr(s.Argument, precLowest)
		p.write(";")
	case *ast.BranchStatement:
		p.write(s.Token.String())
		if s.Label != nil {
			p.write(" ")
			p.write(string(s.Label.Name))
		}

		p.write(";")
	case *ast.LabelledStatement:
		p.write(string(s.Label.Name))
		p.write(": ")
		p.stmt(s.Statement)
	case *ast.SwitchStatement:
		p.write("switch (")
		p.expr(s.Discriminant, precLowest)
		p.write(") {")
		p.indent++
		for _, c := range s.Body {
			p.newline()
			p.caseClause(c)
		}
		p.indent--
		p.newline()
		p.write("}")
	case *ast.TryStatement:
		p.write("try ")
		p.block(s.Body.List)
		if s.Catch != nil {
			p.write(" catch ")
			if s.Catch.Parameter != nil {
				p.write("(")
				p.expr(s.Catch.Parameter, precAssign)
				p.write(") ")
			}

			p.block(s.Catch.Body.List)
		}

		if s.Finally != nil {
			p.write(" finally ")
			p.block(s.Finally.List)
		}
	case *ast.WithStatement:
		p.write("with (")
		p.expr(s.Object, precLowest)
		p.write(")")
		p.body(s.Body)
	case *ast.CaseStatement:
		p.caseClause(s)
	case *ast.CatchStatement:
		p.write("catch (")
		p.expr(s.Parameter, precAssign)
		p.write(") ")
		p.block(s.Body.List)
	case *ast.EmptyStatement:
		p.write(";")
	case *ast.DebuggerStatement:
		p.write("debugger;")
	case *ast.BadStatement:
	default:
		p.write(fmt.Sprintf("/* %T */", s))
	}
}

func (p *printer) block(list []ast.Statement) {
	if len(list) == 0 {
		p.write("{}")
		return
	}

	p.write("{")
	p.indent++
	for _, stmt := range list {
		p.newline()
		p.stmt(stmt)
	}
	p.indent--
	p.newline()
	p.write("}")
}

// body prints the body of a compound statement after its header.
func (p *printer) body(stmt ast.Statement) {
	if b, ok := stmt.(*ast.BlockStatement); ok {
		p.write(" ")
		p.block(b.List)

		return
	}

	if _, ok := stmt.(*ast.EmptyStatement); ok {
		p.write(";")
		return
	}

	p.indent++
	p.newline()
	p.stmt(stmt)
	p.indent--
}

func (p *printer) ifStmt(s *ast.IfStatement) {
	p.write("if (")
	p.expr(s.Test, precLowest)
	p.write(")")

	consequent := s.Consequent
	if s.Alternate != nil && danglingIf(consequent) {
		consequent = &ast.BlockStatement{List: []ast.Statement{consequent}}
	}

	p.body(consequent)

	if s.Alternate == nil {
		return
	}

	if _, ok := consequent.(*ast.BlockStatement); ok {
		p.write(" ")
	} else {
		p.newline()
	}

	p.write("else")

	if elseIf, ok := s.Alternate.(*ast.IfStatement); ok {
		p.write(" ")
		p.ifStmt(elseIf)

		return
	}

	p.body(s.Alternate)
}

// danglingIf reports whether stmt ends in an if without else, which would
// capture a following else when printed without braces.
func danglingIf(stmt ast.Statement) bool {
	switch s := stmt.(type) {
	case *ast.IfStatement:
		if s.Alternate == nil {
			return true
		}

		return danglingIf(s.Alternate)
	case *ast.ForStatement:
		return danglingIf(s.Body)
	case *ast.ForInStatement:
		return danglingIf(s.Body)
	case *ast.ForOfStatement:
		return danglingIf(s.Body)
	case *ast.WhileStatement:
		return danglingIf(s.Body)
	case *ast.WithStatement:
		return danglingIf(s.Body)
	case *ast.LabelledStatement:
		return danglingIf(s.Statement)
	}

	return false
}

func (p *printer) caseClause(c *ast.CaseStatement) {
	if c.Test == nil {
		p.write("default:")
	} else {
		p.write("case ")
		p.expr(c.Test, precLowest)
		p.write(":")
	}

	p.indent++
	for _, stmt := range c.Consequent {
		p.newline()
		p.stmt(stmt)
	}
	p.indent--
}

func (p *printer) forInit(init ast.ForLoopInitializer) {
	saved := p.noIn
	p.noIn = true

	defer func() { p.noIn = saved }()

	switch i := init.(type) {
	case *ast.ForLoopInitializerExpression:
		p.expr(i.Expression, precLowest)
	case *ast.ForLoopInitializerVarDeclList:
		p.write("var ")
		p.bindings(i.List)
	case *ast.ForLoopInitializerLexicalDecl:
		p.write(i.LexicalDeclaration.Token.String())
		p.write(" ")
		p.bindings(i.LexicalDeclaration.List)
	}
}

func (p *printer) forInto(into ast.ForInto) {
	switch i := into.(type) {
	case *ast.ForIntoVar:
		p.write("var ")
		p.binding(i.Binding)
	case *ast.ForDeclaration:
		if i.IsConst {
			p.write("const ")
		} else {
			p.write("let ")
		}

		p.expr(i.Target, precAssign)
	case *ast.ForIntoExpression:
		p.expr(i.Expression, precCall)
	}
}

func (p *printer) bindings(list []*ast.Binding) {
	for i, b := range list {
		if i > 0 {
			p.write(", ")
		}

		p.binding(b)
	}
}

func (p *printer) binding(b *ast.Binding) {
	p.expr(b.Target, precAssign)
	if b.Initializer != nil {
		p.write(" = ")
		p.expr(b.Initializer, precAssign)
	}
}

// ambiguousStatementStart reports whether an expression statement would be
// read as a declaration or block if printed bare.
func ambiguousStatementStart(text string) bool {
	switch {
	case strings.HasPrefix(text, "{"):
		return true
	case hasKeywordPrefix(text, "function"), hasKeywordPrefix(text, "class"):
		return true
	case strings.HasPrefix(text, "async function"):
		return true
	case strings.HasPrefix(text, "let ["), strings.HasPrefix(text, "let["):
		return true
	}

	return false
}

func hasKeywordPrefix(text, keyword string) bool {
	if !strings.HasPrefix(text, keyword) {
		return false
	}

	if len(text) == len(keyword) {
		return true
	}

	return !isIdentPart(text[len(keyword)])
}

func isIdentPart(c byte) bool {
	return c == '_' || c == '$' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c >= 0x80
}

// ---------- expressions ----------

func (p *printer) expr(e ast.Expression, minPrec int) {
	if e == nil {
		return
	}

	if precedence(e) < minPrec {
		p.parens(e)
		return
	}

	p.exprBare(e)
}

// parens prints e wrapped in parentheses unconditionally. An in operator is
// allowed again inside them.
func (p *printer) parens(e ast.Expression) {
	saved := p.noIn
	p.noIn = false

	p.write("(")
	p.exprBare(e)
	p.write(")")

	p.noIn = saved
}

//nolint:cyclop,funlen,gocognit // one case per expression kind
func (p *printer) exprBare(e ast.Expression) {
	switch x := e.(type) {
	case *ast.Identifier:
		p.write(string(x.Name))
	case *ast.PrivateIdentifier:
		p.write("#")
		p.write(string(x.Name))
	case *ast.NullLiteral:
		p.write("null")
	case *ast.BooleanLiteral:
		if x.Value {
			p.write("true")
		} else {
			p.write("false")
		}
	case *ast.NumberLiteral:
		p.write(numberText(x))
	case *ast.StringLiteral:
		p.write(stringText(x))
	case *ast.RegExpLiteral:
		p.write(x.Literal)
	case *ast.ThisExpression:
		p.write("this")
	case *ast.SuperExpression:
		p.write("super")
	case *ast.MetaProperty:
		p.write(string(x.Meta.Name))
		p.write(".")
		p.write(string(x.Property.Name))
	case *ast.TemplateLiteral:
		p.template(x)
	case *ast.ArrayLiteral:
		p.elements(x.Value, nil)
	case *ast.ArrayPattern:
		p.elements(x.Elements, x.Rest)
	case *ast.ObjectLiteral:
		p.properties(x.Value, nil)
	case *ast.ObjectPattern:
		p.properties(x.Properties, x.Rest)
	case *ast.SpreadElement:
		p.write("...")
		p.expr(x.Expression, precAssign)
	case *ast.SequenceExpression:
		for i, item := range x.Sequence {
			if i > 0 {
				p.write(", ")
			}

			p.expr(item, precAssign)
		}
	case *ast.AssignExpression:
		p.expr(x.Left, precCall)
		p.write(" ")
		if x.Operator != token.ASSIGN {
			p.write(x.Operator.String())
		}

		p.write("= ")
		p.expr(x.Right, precAssign)
	case *ast.ConditionalExpression:
		p.expr(x.Test, precLogicalOr)
		p.write(" ? ")
		p.expr(x.Consequent, precAssign)
		p.write(" : ")
		p.expr(x.Alternate, precAssign)
	case *ast.BinaryExpression:
		if p.noIn && x.Operator == token.IN {
			p.parens(x)
			return
		}

		p.binary(x)
	case *ast.UnaryExpression:
		p.unary(x)
	case *ast.AwaitExpression:
		p.write("await ")
		p.expr(x.Argument, precUnary)
	case *ast.YieldExpression:
		p.write("yield")
		if x.Delegate {
			p.write("*")
		}

		if x.Argument != nil {
			p.write(" ")
			p.expr(x.Argument, precAssign)
		}
	case *ast.CallExpression:
		p.callee(x.Callee)
		p.arguments(x.ArgumentList)
	case *ast.NewExpression:
		p.write("new ")
		if hasCall(x.Callee) {
			p.parens(x.Callee)
		} else {
			p.expr(x.Callee, precCall)
		}

		p.arguments(x.ArgumentList)
	case *ast.DotExpression:
		p.member(x.Left)
		if _, ok := x.Left.(*ast.Optional); !ok {
			p.write(".")
		}

		p.write(string(x.Identifier.Name))
	case *ast.PrivateDotExpression:
		p.member(x.Left)
		if _, ok := x.Left.(*ast.Optional); !ok {
			p.write(".")
		}

		p.write("#")
		p.write(string(x.Identifier.Name))
	case *ast.BracketExpression:
		p.member(x.Left)
		p.write("[")
		p.expr(x.Member, precLowest)
		p.write("]")
	case *ast.Optional:
		p.member(x.Expression)
		p.write("?.")
	case *ast.OptionalChain:
		p.exprBare(x.Expression)
	case *ast.FunctionLiteral:
		p.function(x)
	case *ast.ArrowFunctionLiteral:
		p.arrow(x)
	case *ast.ClassLiteral:
		p.class(x)
	case *ast.Binding:
		p.binding(x)
	case *ast.PropertyKeyed, *ast.PropertyShort:
		p.property(x.(ast.Property))
	case *ast.BadExpression:
	default:
		p.write(fmt.Sprintf("/* %T */", x))
	}
}

// member prints the object of a member access or call.
func (p *printer) member(e ast.Expression) {
	switch x := e.(type) {
	case *ast.OptionalChain:
		p.parens(x)
		return
	case *ast.NumberLiteral:
		if isPlainInteger(numberText(x)) {
			p.parens(x)
			return
		}
	}

	p.expr(e, precCall)
}

func (p *printer) callee(e ast.Expression) {
	if _, ok := e.(*ast.OptionalChain); ok {
		p.parens(e)
		return
	}

	p.expr(e, precCall)
}

func (p *printer) arguments(args []ast.Expression) {
	p.write("(")
	for i, arg := range args {
		if i > 0 {
			p.write(", ")
		}

		p.expr(arg, precAssign)
	}
	p.write(")")
}

func (p *printer) binary(x *ast.BinaryExpression) {
	prec := binaryPrecedence(x.Operator)
	leftMin, rightMin := prec, prec+1

	// A unary or await operand left of ** is a syntax error without parentheses.
	if x.Operator == token.EXPONENT {
		leftMin, rightMin = precPostfix, prec
	}

	p.operand(x.Left, leftMin, x.Operator)
	p.write(" ")
	p.write(x.Operator.String())
	p.write(" ")
	p.operand(x.Right, rightMin, x.Operator)
}

func (p *printer) operand(e ast.Expression, minPrec int, parent token.Token) {
	if b, ok := e.(*ast.BinaryExpression); ok && mixesCoalesce(parent, b.Operator) {
		p.parens(e)
		return
	}

	p.expr(e, minPrec)
}

// mixesCoalesce reports whether ?? meets && or || without parentheses,
// which is a syntax error.
func mixesCoalesce(a, b token.Token) bool {
	isLogic := func(t token.Token) bool { return t == token.LOGICAL_AND || t == token.LOGICAL_OR }

	return a == token.COALESCE && isLogic(b) || b == token.COALESCE && isLogic(a)
}

func (p *printer) unary(x *ast.UnaryExpression) {
	if x.Postfix {
		p.expr(x.Operand, precPostfix)
		p.write(x.Operator.String())

		return
	}

	op := x.Operator.String()
	p.write(op)

	operand := p.sub(func(q *printer) { q.expr(x.Operand, precUnary) })

	switch x.Operator {
	case token.TYPEOF, token.VOID, token.DELETE:
		p.write(" ")
	case token.MINUS, token.PLUS, token.DECREMENT, token.INCREMENT:
		if operand != "" && operand[0] == op[0] {
			p.write(" ")
		}
	}

	p.write(operand)
}

func (p *printer) template(x *ast.TemplateLiteral) {
	if x.Tag != nil {
		p.callee(x.Tag)
	}

	p.write("`")
	for i, el := range x.Elements {
		p.write(el.Literal)
		if i < len(x.Expressions) {
			p.write("${")
			p.expr(x.Expressions[i], precLowest)
			p.write("}")
		}
	}
	p.write("`")
}

func (p *printer) elements(items []ast.Expression, rest ast.Expression) {
	p.write("[")
	for i, item := range items {
		if i > 0 {
			p.write(", ")
		}

		if item != nil {
			p.expr(item, precAssign)
		}
	}

	if len(items) > 0 && items[len(items)-1] == nil {
		p.write(",")
	}

	if rest != nil {
		if len(items) > 0 {
			p.write(", ")
		}

		p.write("...")
		p.expr(rest, precAssign)
	}
	p.write("]")
}

func (p *printer) properties(props []ast.Property, rest ast.Expression) {
	if len(props) == 0 && rest == nil {
		p.write("{}")
		return
	}

	p.write("{")
	for i, prop := range props {
		if i > 0 {
			p.write(",")
		}

		p.write(" ")
		p.property(prop)
	}

	if rest != nil {
		if len(props) > 0 {
			p.write(",")
		}

		p.write(" ...")
		p.expr(rest, precAssign)
	}
	p.write(" }")
}

func (p *printer) property(prop ast.Property) {
	switch x := prop.(type) {
	case *ast.PropertyShort:
		p.write(string(x.Name.Name))
		if x.Initializer != nil {
			p.write(" = ")
			p.expr(x.Initializer, precAssign)
		}
	case *ast.PropertyKeyed:
		switch x.Kind {
		case ast.PropertyKindGet, ast.PropertyKindSet, ast.PropertyKindMethod:
			fn, ok := x.Value.(*ast.FunctionLiteral)
			if !ok {
				p.key(x.Key, x.Computed)
				p.write(": ")
				p.expr(x.Value, precAssign)

				return
			}

			p.method(x.Kind, x.Key, x.Computed, fn)
		default:
			p.key(x.Key, x.Computed)
			p.write(": ")
			p.expr(x.Value, precAssign)
		}
	case *ast.SpreadElement:
		p.write("...")
		p.expr(x.Expression, precAssign)
	}
}

func (p *printer) key(k ast.Expression, computed bool) {
	if computed {
		p.write("[")
		p.expr(k, precAssign)
		p.write("]")

		return
	}

	p.exprBare(k)
}

func (p *printer) method(kind ast.PropertyKind, key ast.Expression, computed bool, fn *ast.FunctionLiteral) {
	switch kind {
	case ast.PropertyKindGet:
		p.write("get ")
	case ast.PropertyKindSet:
		p.write("set ")
	}

	if fn.Async {
		p.write("async ")
	}

	if fn.Generator {
		p.write("*")
	}

	p.key(key, computed)
	p.params(fn.ParameterList)
	p.write(" ")
	p.block(fn.Body.List)
}

func (p *printer) function(fn *ast.FunctionLiteral) {
	if fn.Async {
		p.write("async ")
	}

	p.write("function")
	if fn.Generator {
		p.write("*")
	}

	if fn.Name != nil {
		p.write(" ")
		p.write(string(fn.Name.Name))
	} else if !fn.Generator {
		p.write(" ")
	}

	p.params(fn.ParameterList)
	p.write(" ")
	p.block(fn.Body.List)
}

func (p *printer) params(list *ast.ParameterList) {
	p.write("(")
	if list != nil {
		p.bindings(list.List)
		if list.Rest != nil {
			if len(list.List) > 0 {
				p.write(", ")
			}

			p.write("...")
			p.expr(list.Rest, precAssign)
		}
	}
	p.write(")")
}

func (p *printer) arrow(x *ast.ArrowFunctionLiteral) {
	if x.Async {
		p.write("async ")
	}

	p.params(x.ParameterList)
	p.write(" => ")

	switch body := x.Body.(type) {
	case *ast.BlockStatement:
		p.block(body.List)
	case *ast.ExpressionBody:
		text := p.sub(func(q *printer) { q.expr(body.Expression, precAssign) })
		if strings.HasPrefix(text, "{") {
			text = "(" + text + ")"
		}

		p.write(text)
	}
}

func (p *printer) class(c *ast.ClassLiteral) {
	p.write("class")
	if c.Name != nil {
		p.write(" ")
		p.write(string(c.Name.Name))
	}

	if c.SuperClass != nil {
		p.write(" extends ")
		p.expr(c.SuperClass, precCall)
	}

	if len(c.Body) == 0 {
		p.write(" {}")
		return
	}

	p.write(" {")
	p.indent++
	for _, el := range c.Body {
		p.newline()
		p.classElement(el)
	}
	p.indent--
	p.newline()
	p.write("}")
}

func (p *printer) classElement(el ast.ClassElement) {
	switch x := el.(type) {
	case *ast.FieldDefinition:
		if x.Static {
			p.write("static ")
		}

		p.key(x.Key, x.Computed)
		if x.Initializer != nil {
			p.write(" = ")
			p.expr(x.Initializer, precAssign)
		}

		p.write(";")
	case *ast.MethodDefinition:
		if x.Static {
			p.write("static ")
		}

		p.method(x.Kind, x.Key, x.Computed, x.Body)
	case *ast.ClassStaticBlock:
		p.write("static ")
		p.block(x.Block.List)
	}
}

// ---------- precedence ----------

//nolint:cyclop // table of expression kinds
func precedence(e ast.Expression) int {
	switch x := e.(type) {
	case *ast.SequenceExpression:
		return precSequence
	case *ast.AssignExpression, *ast.ArrowFunctionLiteral, *ast.YieldExpression, *ast.SpreadElement:
		return precAssign
	case *ast.ConditionalExpression:
		return precConditional
	case *ast.BinaryExpression:
		return binaryPrecedence(x.Operator)
	case *ast.UnaryExpression:
		if x.Postfix {
			return precPostfix
		}

		return precUnary
	case *ast.AwaitExpression:
		return precUnary
	case *ast.CallExpression, *ast.NewExpression, *ast.DotExpression, *ast.PrivateDotExpression,
		*ast.BracketExpression, *ast.Optional, *ast.OptionalChain, *ast.MetaProperty:
		return precCall
	case *ast.TemplateLiteral:
		if x.Tag != nil {
			return precCall
		}

		return precPrimary
	case *ast.NumberLiteral:
		if strings.HasPrefix(numberText(x), "-") {
			return precUnary
		}

		return precPrimary
	}

	return precPrimary
}

//nolint:cyclop,exhaustive // binary operators only
func binaryPrecedence(op token.Token) int {
	switch op {
	case token.LOGICAL_OR, token.COALESCE:
		return precLogicalOr
	case token.LOGICAL_AND:
		return precLogicalAnd
	case token.OR:
		return precBitOr
	case token.EXCLUSIVE_OR:
		return precBitXor
	case token.AND:
		return precBitAnd
	case token.EQUAL, token.NOT_EQUAL, token.STRICT_EQUAL, token.STRICT_NOT_EQUAL:
		return precEquality
	case token.LESS, token.GREATER, token.LESS_OR_EQUAL, token.GREATER_OR_EQUAL, token.IN, token.INSTANCEOF:
		return precRelational
	case token.SHIFT_LEFT, token.SHIFT_RIGHT, token.UNSIGNED_SHIFT_RIGHT:
		return precShift
	case token.PLUS, token.MINUS:
		return precAdditive
	case token.MULTIPLY, token.SLASH, token.REMAINDER:
		return precMultiplicative
	case token.EXPONENT:
		return precExponent
	}

	return precLowest
}

// hasCall reports whether a new-expression callee contains a call that
// would otherwise be taken as the constructor's argument list.
func hasCall(e ast.Expression) bool {
	switch x := e.(type) {
	case *ast.CallExpression, *ast.Optional, *ast.OptionalChain:
		return true
	case *ast.DotExpression:
		return hasCall(x.Left)
	case *ast.PrivateDotExpression:
		return hasCall(x.Left)
	case *ast.BracketExpression:
		return hasCall(x.Left)
	case *ast.TemplateLiteral:
		return x.Tag != nil && hasCall(x.Tag)
	}

	return false
}

func numberText(n *ast.NumberLiteral) string {
	if n.Literal != "" {
		return n.Literal
	}

	return fmt.Sprint(n.Value)
}

func stringText(s *ast.StringLiteral) string {
	if s.Literal != "" {
		return s.Literal
	}

	return Quote(string(s.Value))
}

func isPlainInteger(text string) bool {
	if text == "" {
		return false
	}

	for i := 0; i < len(text); i++ {
		if text[i] < '0' || text[i] > '9' {
			return false
		}
	}

	return true
}

// Quote returns s as a double-quoted JavaScript string literal.
func Quote(s string) string {
	var b strings.Builder

	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\u2028', '\u2029':
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
				continue
			}

			b.WriteRune(r)
		}
	}
	b.WriteByte('"')

	return b.String()
}
