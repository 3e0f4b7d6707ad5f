package parser

import (
	"fmt"
	"strings"
)

type NodeKind int

const (
	KindError NodeKind = iota

	KindCompilationUnit
	KindPackageDecl
	KindImportDecl
	KindQualifiedName

	KindClassDecl
	KindInterfaceDecl
	KindEnumDecl
	KindRecordDecl
	KindAnnotationDecl
	KindClassBody
	KindEnumConstant
	KindFieldDecl
	KindVariableDeclarator
	KindMethodDecl
	KindConstructorDecl
	KindInitializer
	KindParameter
	KindModifiers
	KindModifier
	KindAnnotation
	KindTypeParameters
	KindTypeParameter
	KindTypeArguments
	KindType
	KindArrayType
	KindUnionType
	KindWildcard
	KindExtendsClause
	KindImplementsClause
	KindPermitsClause
	KindThrowsList

	KindBlock
	KindLocalVarDecl
	KindExprStmt
	KindIfStmt
	KindForStmt
	KindForUpdate
	KindEnhancedForStmt
	KindWhileStmt
	KindDoStmt
	KindSwitchStmt
	KindSwitchCase
	KindSwitchLabel
	KindReturnStmt
	KindBreakStmt
	KindContinueStmt
	KindThrowStmt
	KindTryStmt
	KindCatchClause
	KindFinallyClause
	KindSynchronizedStmt
	KindAssertStmt
	KindLabeledStmt
	KindYieldStmt
	KindEmptyStmt

	KindAssignExpr
	KindTernaryExpr
	KindBinaryExpr
	KindUnaryExpr
	KindPostfixExpr
	KindCastExpr
	KindInstanceofExpr
	KindRecordPattern
	KindCallExpr
	KindArguments
	KindMethodRef
	KindFieldAccess
	KindArrayAccess
	KindNewExpr
	KindNewArrayExpr
	KindArrayInit
	KindLambdaExpr
	KindParenExpr
	KindSwitchExpr
	KindClassLiteral
	KindLiteral
	KindName
	KindThis
	KindSuper

	KindOperator
	KindIdentifier
	KindDims
)

var nodeKindNames = map[NodeKind]string{
	KindError:              "Error",
	KindCompilationUnit:    "CompilationUnit",
	KindPackageDecl:        "PackageDecl",
	KindImportDecl:         "ImportDecl",
	KindQualifiedName:      "QualifiedName",
	KindClassDecl:          "ClassDecl",
	KindInterfaceDecl:      "InterfaceDecl",
	KindEnumDecl:           "EnumDecl",
	KindRecordDecl:         "RecordDecl",
	KindAnnotationDecl:     "AnnotationDecl",
	KindClassBody:          "ClassBody",
	KindEnumConstant:       "EnumConstant",
	KindFieldDecl:          "FieldDecl",
	KindVariableDeclarator: "VariableDeclarator",
	KindMethodDecl:         "MethodDecl",
	KindConstructorDecl:    "ConstructorDecl",
	KindInitializer:        "Initializer",
	KindParameter:          "Parameter",
	KindModifiers:          "Modifiers",
	KindModifier:           "Modifier",
	KindAnnotation:         "Annotation",
	KindTypeParameters:     "TypeParameters",
	KindTypeParameter:      "TypeParameter",
	KindTypeArguments:      "TypeArguments",
	KindType:               "Type",
	KindArrayType:          "ArrayType",
	KindUnionType:          "UnionType",
	KindWildcard:           "Wildcard",
	KindExtendsClause:      "ExtendsClause",
	KindImplementsClause:   "ImplementsClause",
	KindPermitsClause:      "PermitsClause",
	KindThrowsList:         "ThrowsList",
	KindBlock:              "Block",
	KindLocalVarDecl:       "LocalVarDecl",
	KindExprStmt:           "ExprStmt",
	KindIfStmt:             "IfStmt",
	KindForStmt:            "ForStmt",
	KindForUpdate:          "ForUpdate",
	KindEnhancedForStmt:    "EnhancedForStmt",
	KindWhileStmt:          "WhileStmt",
	KindDoStmt:             "DoStmt",
	KindSwitchStmt:         "SwitchStmt",
	KindSwitchCase:         "SwitchCase",
	KindSwitchLabel:        "SwitchLabel",
	KindReturnStmt:         "ReturnStmt",
	KindBreakStmt:          "BreakStmt",
	KindContinueStmt:       "ContinueStmt",
	KindThrowStmt:          "ThrowStmt",
	KindTryStmt:            "TryStmt",
	KindCatchClause:        "CatchClause",
	KindFinallyClause:      "FinallyClause",
	KindSynchronizedStmt:   "SynchronizedStmt",
	KindAssertStmt:         "AssertStmt",
	KindLabeledStmt:        "LabeledStmt",
	KindYieldStmt:          "YieldStmt",
	KindEmptyStmt:          "EmptyStmt",
	KindAssignExpr:         "AssignExpr",
	KindTernaryExpr:        "TernaryExpr",
	KindBinaryExpr:         "BinaryExpr",
	KindUnaryExpr:          "UnaryExpr",
	KindPostfixExpr:        "PostfixExpr",
	KindCastExpr:           "CastExpr",
	KindInstanceofExpr:     "InstanceofExpr",
	KindRecordPattern:      "RecordPattern",
	KindCallExpr:           "CallExpr",
	KindArguments:          "Arguments",
	KindMethodRef:          "MethodRef",
	KindFieldAccess:        "FieldAccess",
	KindArrayAccess:        "ArrayAccess",
	KindNewExpr:            "NewExpr",
	KindNewArrayExpr:       "NewArrayExpr",
	KindArrayInit:          "ArrayInit",
	KindLambdaExpr:         "LambdaExpr",
	KindParenExpr:          "ParenExpr",
	KindSwitchExpr:         "SwitchExpr",
	KindClassLiteral:       "ClassLiteral",
	KindLiteral:            "Literal",
	KindName:               "Name",
	KindThis:               "This",
	KindSuper:              "Super",
	KindOperator:           "Operator",
	KindIdentifier:         "Identifier",
	KindDims:               "Dims",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// IsTypeDecl reports whether k declares a class-like type.
func (k NodeKind) IsTypeDecl() bool {
	switch k {
	case KindClassDecl, KindInterfaceDecl, KindEnumDecl, KindRecordDecl, KindAnnotationDecl:
		return true
	}
	return false
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Error describes a syntax error attached to an error node.
type Error struct {
	Pos      Position
	Message  string
	Expected []TokenKind
	Got      Token
}

func (e *Error) Error() string {
	return e.Pos.String() + ": " + e.Message
}

// Node is a concrete syntax tree node. Leaves carry the token they were
// built from; interior nodes span their children.
type Node struct {
	Kind     NodeKind
	Span     Span
	Children []*Node
	Token    *Token
	Error    *Error
}

func (n *Node) AddChild(child *Node) {
	if child == nil {
		return
	}
	n.Children = append(n.Children, child)
}

func (n *Node) IsError() bool {
	return n.Kind == KindError
}

func (n *Node) FirstChildOfKind(kind NodeKind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind NodeKind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

// TokenLiteral returns the literal of a leaf node, or "".
func (n *Node) TokenLiteral() string {
	if n.Token == nil {
		return ""
	}
	return n.Token.Literal
}

// Inspect calls f for n and its descendants in depth-first order. If f
// returns false the children of that node are skipped.
func (n *Node) Inspect(f func(*Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, child := range n.Children {
		child.Inspect(f)
	}
}

// String renders the tree as an indented outline.
func (n *Node) String() string {
	var sb strings.Builder
	n.writeIndent(&sb, 0)
	return sb.String()
}

func (n *Node) writeIndent(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(n.Kind.String())
	if n.Token != nil {
		fmt.Fprintf(sb, " %q", n.Token.Literal)
	}
	if n.Error != nil {
		fmt.Fprintf(sb, " error=%q", n.Error.Message)
	}
	sb.WriteString("\n")
	for _, child := range n.Children {
		child.writeIndent(sb, depth+1)
	}
}
