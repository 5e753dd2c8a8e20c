package syntax

import (
	"errors"
	"fmt"

	"github.com/dop251/goja/ast"
)

// ErrUnhandled is returned by a strict Walker that meets a kind without a
// registered handler.
var ErrUnhandled = errors.New("no handler registered")

// Kind tags every goja node type the walker knows about.
type Kind int

// Node kinds.
const (
	KindUnknown Kind = iota
	KindProgram

	KindBlock
	KindExpressionStatement
	KindVariable
	KindLexical
	KindFunctionDeclaration
	KindClassDeclaration
	KindIf
	KindFor
	KindForIn
	KindForOf
	KindWhile
	KindDoWhile
	KindReturn
	KindThrow
	KindBranch
	KindLabelled
	KindSwitch
	KindCase
	KindTry
	KindCatch
	KindWith
	KindEmpty
	KindDebugger
	KindBadStatement

	KindIdentifier
	KindPrivateIdentifier
	KindNull
	KindBoolean
	KindNumber
	KindString
	KindRegExp
	KindTemplate
	KindTemplateElement
	KindThis
	KindSuper
	KindMetaProperty
	KindArray
	KindArrayPattern
	KindObject
	KindObjectPattern
	KindPropertyKeyed
	KindPropertyShort
	KindSpread
	KindSequence
	KindAssign
	KindConditional
	KindBinary
	KindUnary
	KindAwait
	KindYield
	KindCall
	KindNew
	KindDot
	KindPrivateDot
	KindBracket
	KindOptional
	KindOptionalChain
	KindFunction
	KindArrow
	KindClass
	KindBadExpression

	KindBinding
	KindParameterList
	KindExpressionBody
	KindField
	KindMethod
	KindStaticBlock
	KindForInitExpression
	KindForInitVar
	KindForInitLexical
	KindForIntoVar
	KindForDeclaration
	KindForIntoExpression

	kindCount
)

var kindNames = [...]string{
	KindUnknown:             "Unknown",
	KindProgram:             "Program",
	KindBlock:               "BlockStatement",
	KindExpressionStatement: "ExpressionStatement",
	KindVariable:            "VariableStatement",
	KindLexical:             "LexicalDeclaration",
	KindFunctionDeclaration: "FunctionDeclaration",
	KindClassDeclaration:    "ClassDeclaration",
	KindIf:                  "IfStatement",
	KindFor:                 "ForStatement",
	KindForIn:               "ForInStatement",
	KindForOf:               "ForOfStatement",
	KindWhile:               "WhileStatement",
	KindDoWhile:             "DoWhileStatement",
	KindReturn:              "ReturnStatement",
	KindThrow:               "ThrowStatement",
	KindBranch:              "BranchStatement",
	KindLabelled:            "LabelledStatement",
	KindSwitch:              "SwitchStatement",
	KindCase:                "CaseStatement",
	KindTry:                 "TryStatement",
	KindCatch:               "CatchStatement",
	KindWith:                "WithStatement",
	KindEmpty:               "EmptyStatement",
	KindDebugger:            "DebuggerStatement",
	KindBadStatement:        "BadStatement",
	KindIdentifier:          "Identifier",
	KindPrivateIdentifier:   "PrivateIdentifier",
	KindNull:                "NullLiteral",
	KindBoolean:             "BooleanLiteral",
	KindNumber:              "NumberLiteral",
	KindString:              "StringLiteral",
	KindRegExp:              "RegExpLiteral",
	KindTemplate:            "TemplateLiteral",
	KindTemplateElement:     "TemplateElement",
	KindThis:                "ThisExpression",
	KindSuper:               "SuperExpression",
	KindMetaProperty:        "MetaProperty",
	KindArray:               "ArrayLiteral",
	KindArrayPattern:        "ArrayPattern",
	KindObject:              "ObjectLiteral",
	KindObjectPattern:       "ObjectPattern",
	KindPropertyKeyed:       "PropertyKeyed",
	KindPropertyShort:       "PropertyShort",
	KindSpread:              "SpreadElement",
	KindSequence:            "SequenceExpression",
	KindAssign:              "AssignExpression",
	KindConditional:         "ConditionalExpression",
	KindBinary:              "BinaryExpression",
	KindUnary:               "UnaryExpression",
	KindAwait:               "AwaitExpression",
	KindYield:               "YieldExpression",
	KindCall:                "CallExpression",
	KindNew:                 "NewExpression",
	KindDot:                 "DotExpression",
	KindPrivateDot:          "PrivateDotExpression",
	KindBracket:             "BracketExpression",
	KindOptional:            "Optional",
	KindOptionalChain:       "OptionalChain",
	KindFunction:            "FunctionLiteral",
	KindArrow:               "ArrowFunctionLiteral",
	KindClass:               "ClassLiteral",
	KindBadExpression:       "BadExpression",
	KindBinding:             "Binding",
	KindParameterList:       "ParameterList",
	KindExpressionBody:      "ExpressionBody",
	KindField:               "FieldDefinition",
	KindMethod:              "MethodDefinition",
	KindStaticBlock:         "ClassStaticBlock",
	KindForInitExpression:   "ForLoopInitializerExpression",
	KindForInitVar:          "ForLoopInitializerVarDeclList",
	KindForInitLexical:      "ForLoopInitializerLexicalDecl",
	KindForIntoVar:          "ForIntoVar",
	KindForDeclaration:      "ForDeclaration",
	KindForIntoExpression:   "ForIntoExpression",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// KindOf returns the kind tag of node.
//
//nolint:cyclop,funlen,gocyclo // closed dispatch over goja node types
func KindOf(node ast.Node) Kind {
	switch node.(type) {
	case *ast.Program:
		return KindProgram
	case *ast.BlockStatement:
		return KindBlock
	case *ast.ExpressionStatement:
		return KindExpressionStatement
	case *ast.VariableStatement:
		return KindVariable
	case *ast.LexicalDeclaration:
		return KindLexical
	case *ast.FunctionDeclaration:
		return KindFunctionDeclaration
	case *ast.ClassDeclaration:
		return KindClassDeclaration
	case *ast.IfStatement:
		return KindIf
	case *ast.ForStatement:
		return KindFor
	case *ast.ForInStatement:
		return KindForIn
	case *ast.ForOfStatement:
		return KindForOf
	case *ast.WhileStatement:
		return KindWhile
	case *ast.DoWhileStatement:
		return KindDoWhile
	case *ast.ReturnStatement:
		return KindReturn
	case *ast.ThrowStatement:
		return KindThrow
	case *ast.BranchStatement:
		return KindBranch
	case *ast.LabelledStatement:
		return KindLabelled
	case *ast.SwitchStatement:
		return KindSwitch
	case *ast.CaseStatement:
		return KindCase
	case *ast.TryStatement:
		return KindTry
	case *ast.CatchStatement:
		return KindCatch
	case *ast.WithStatement:
		return KindWith
	case *ast.EmptyStatement:
		return KindEmpty
	case *ast.DebuggerStatement:
		return KindDebugger
	case *ast.BadStatement:
		return KindBadStatement
	case *ast.Identifier:
		return KindIdentifier
	case *ast.PrivateIdentifier:
		return KindPrivateIdentifier
	case *ast.NullLiteral:
		return KindNull
	case *ast.BooleanLiteral:
		return KindBoolean
	case *ast.NumberLiteral:
		return KindNumber
	case *ast.StringLiteral:
		return KindString
	case *ast.RegExpLiteral:
		return KindRegExp
	case *ast.TemplateLiteral:
		return KindTemplate
	case *ast.TemplateElement:
		return KindTemplateElement
	case *ast.ThisExpression:
		return KindThis
	case *ast.SuperExpression:
		return KindSuper
	case *ast.MetaProperty:
		return KindMetaProperty
	case *ast.ArrayLiteral:
		return KindArray
	case *ast.ArrayPattern:
		return KindArrayPattern
	case *ast.ObjectLiteral:
		return KindObject
	case *ast.ObjectPattern:
		return KindObjectPattern
	case *ast.PropertyKeyed:
		return KindPropertyKeyed
	case *ast.PropertyShort:
		return KindPropertyShort
	case *ast.SpreadElement:
		return KindSpread
	case *ast.SequenceExpression:
		return KindSequence
	case *ast.AssignExpression:
		return KindAssign
	case *ast.ConditionalExpression:
		return KindConditional
	case *ast.BinaryExpression:
		return KindBinary
	case *ast.UnaryExpression:
		return KindUnary
	case *ast.AwaitExpression:
		return KindAwait
	case *ast.YieldExpression:
		return KindYield
	case *ast.CallExpression:
		return KindCall
	case *ast.NewExpression:
		return KindNew
	case *ast.DotExpression:
		return KindDot
	case *ast.PrivateDotExpression:
		return KindPrivateDot
	case *ast.BracketExpression:
		return KindBracket
	case *ast.Optional:
		return KindOptional
	case *ast.OptionalChain:
		return KindOptionalChain
	case *ast.FunctionLiteral:
		return KindFunction
	case *ast.ArrowFunctionLiteral:
		return KindArrow
	case *ast.ClassLiteral:
		return KindClass
	case *ast.BadExpression:
		return KindBadExpression
	case *ast.Binding:
		return KindBinding
	case *ast.ParameterList:
		return KindParameterList
	case *ast.ExpressionBody:
		return KindExpressionBody
	case *ast.FieldDefinition:
		return KindField
	case *ast.MethodDefinition:
		return KindMethod
	case *ast.ClassStaticBlock:
		return KindStaticBlock
	case *ast.ForLoopInitializerExpression:
		return KindForInitExpression
	case *ast.ForLoopInitializerVarDeclList:
		return KindForInitVar
	case *ast.ForLoopInitializerLexicalDecl:
		return KindForInitLexical
	case *ast.ForIntoVar:
		return KindForIntoVar
	case *ast.ForDeclaration:
		return KindForDeclaration
	case *ast.ForIntoExpression:
		return KindForIntoExpression
	}

	return KindUnknown
}

// Handler processes one node. A handler that does not call back into the
// walker for a child prunes that child's subtree.
type Handler func(w *Walker, node ast.Node) error

// Handlers maps node kinds to their handlers.
type Handlers map[Kind]Handler

// Walker is a type-directed recursive traversal over a goja AST.
type Walker struct {
	handlers Handlers
	strict   bool
}

// WalkerOption configures a Walker.
type WalkerOption func(*Walker)

// Strict makes the walker fail with ErrUnhandled on a kind without a handler
// instead of recursing structurally.
func Strict() WalkerOption {
	return func(w *Walker) {
		w.strict = true
	}
}

// NewWalker builds a Walker dispatching to handlers.
func NewWalker(handlers Handlers, opts ...WalkerOption) *Walker {
	w := &Walker{handlers: handlers}
	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Walk visits node with the handler registered for its kind, or recurses
// into its children when none is registered.
func (w *Walker) Walk(node ast.Node) error {
	if isNil(node) {
		return nil
	}

	kind := KindOf(node)
	if h, ok := w.handlers[kind]; ok {
		return h(w, node)
	}

	if w.strict {
		return fmt.Errorf("%w for %s", ErrUnhandled, kind)
	}

	return w.Recurse(node)
}

// WalkAll visits each non-nil node in order.
func (w *Walker) WalkAll(nodes ...ast.Node) error {
	for _, n := range nodes {
		if err := w.Walk(n); err != nil {
			return err
		}
	}

	return nil
}

// Recurse visits every child of node. Children are read when Recurse is
// called, so a handler may replace them first.
func (w *Walker) Recurse(node ast.Node) error {
	return w.WalkAll(Children(node)...)
}

// Children returns the child nodes of node in source order. Non-computed
// property keys, labels and binding names are not children.
//
//nolint:cyclop,funlen,gocognit,gocyclo // closed dispatch over goja node types
func Children(node ast.Node) []ast.Node {
	var out []ast.Node

	add := func(nodes ...ast.Node) {
		for _, n := range nodes {
			if !isNil(n) {
				out = append(out, n)
			}
		}
	}

	switch n := node.(type) {
	case *ast.Program:
		for _, s := range n.Body {
			add(s)
		}
	case *ast.BlockStatement:
		for _, s := range n.List {
			add(s)
		}
	case *ast.ExpressionStatement:
		add(n.Expression)
	case *ast.VariableStatement:
		for _, b := range n.List {
			add(b)
		}
	case *ast.LexicalDeclaration:
		for _, b := range n.List {
			add(b)
		}
	case *ast.FunctionDeclaration:
		add(n.Function)
	case *ast.ClassDeclaration:
		add(n.Class)
	case *ast.IfStatement:
		add(n.Test, n.Consequent, n.Alternate)
	case *ast.ForStatement:
		add(n.Initializer, n.Test, n.Update, n.Body)
	case *ast.ForInStatement:
		add(n.Into, n.Source, n.Body)
	case *ast.ForOfStatement:
		add(n.Into, n.Source, n.Body)
	case *ast.WhileStatement:
		add(n.Test, n.Body)
	case *ast.DoWhileStatement:
		add(n.Body, n.Test)
	case *ast.ReturnStatement:
		add(n.Argument)
	case *ast.ThrowStatement:
		add(n.Argument)
	case *ast.LabelledStatement:
		add(n.Statement)
	case *ast.SwitchStatement:
		add(n.Discriminant)
		for _, c := range n.Body {
			add(c)
		}
	case *ast.CaseStatement:
		add(n.Test)
		for _, s := range n.Consequent {
			add(s)
		}
	case *ast.TryStatement:
		add(n.Body, n.Catch, n.Finally)
	case *ast.CatchStatement:
		add(n.Parameter, n.Body)
	case *ast.WithStatement:
		add(n.Object, n.Body)
	case *ast.TemplateLiteral:
		add(n.Tag)
		for i, el := range n.Elements {
			add(el)
			if i < len(n.Expressions) {
				add(n.Expressions[i])
			}
		}
	case *ast.ArrayLiteral:
		for _, e := range n.Value {
			add(e)
		}
	case *ast.ArrayPattern:
		for _, e := range n.Elements {
			add(e)
		}

		add(n.Rest)
	case *ast.ObjectLiteral:
		for _, p := range n.Value {
			add(p)
		}
	case *ast.ObjectPattern:
		for _, p := range n.Properties {
			add(p)
		}

		add(n.Rest)
	case *ast.PropertyKeyed:
		if n.Computed {
			add(n.Key)
		}

		add(n.Value)
	case *ast.PropertyShort:
		add(n.Initializer)
	case *ast.SpreadElement:
		add(n.Expression)
	case *ast.SequenceExpression:
		for _, e := range n.Sequence {
			add(e)
		}
	case *ast.AssignExpression:
		add(n.Left, n.Right)
	case *ast.ConditionalExpression:
		add(n.Test, n.Consequent, n.Alternate)
	case *ast.BinaryExpression:
		add(n.Left, n.Right)
	case *ast.UnaryExpression:
		add(n.Operand)
	case *ast.AwaitExpression:
		add(n.Argument)
	case *ast.YieldExpression:
		add(n.Argument)
	case *ast.CallExpression:
		add(n.Callee)
		for _, a := range n.ArgumentList {
			add(a)
		}
	case *ast.NewExpression:
		add(n.Callee)
		for _, a := range n.ArgumentList {
			add(a)
		}
	case *ast.DotExpression:
		add(n.Left)
	case *ast.PrivateDotExpression:
		add(n.Left)
	case *ast.BracketExpression:
		add(n.Left, n.Member)
	case *ast.Optional:
		add(n.Expression)
	case *ast.OptionalChain:
		add(n.Expression)
	case *ast.FunctionLiteral:
		add(n.ParameterList, n.Body)
	case *ast.ArrowFunctionLiteral:
		add(n.ParameterList, n.Body)
	case *ast.ClassLiteral:
		add(n.SuperClass)
		for _, el := range n.Body {
			add(el)
		}
	case *ast.Binding:
		add(n.Target, n.Initializer)
	case *ast.ParameterList:
		for _, b := range n.List {
			add(b)
		}

		add(n.Rest)
	case *ast.ExpressionBody:
		add(n.Expression)
	case *ast.FieldDefinition:
		if n.Computed {
			add(n.Key)
		}

		add(n.Initializer)
	case *ast.MethodDefinition:
		if n.Computed {
			add(n.Key)
		}

		add(n.Body)
	case *ast.ClassStaticBlock:
		add(n.Block)
	case *ast.ForLoopInitializerExpression:
		add(n.Expression)
	case *ast.ForLoopInitializerVarDeclList:
		for _, b := range n.List {
			add(b)
		}
	case *ast.ForLoopInitializerLexicalDecl:
		add(&n.LexicalDeclaration)
	case *ast.ForIntoVar:
		add(n.Binding)
	case *ast.ForDeclaration:
		add(n.Target)
	case *ast.ForIntoExpression:
		add(n.Expression)
	}

	return out
}

// isNil reports whether node is nil or a typed nil pointer.
//
//nolint:cyclop // pointer kinds that appear as optional fields
func isNil(node ast.Node) bool {
	switch n := node.(type) {
	case nil:
		return true
	case *ast.BlockStatement:
		return n == nil
	case *ast.Identifier:
		return n == nil
	case *ast.FunctionLiteral:
		return n == nil
	case *ast.ClassLiteral:
		return n == nil
	case *ast.CatchStatement:
		return n == nil
	case *ast.ParameterList:
		return n == nil
	case *ast.Binding:
		return n == nil
	case *ast.CaseStatement:
		return n == nil
	case *ast.TemplateElement:
		return n == nil
	}

	return false
}
