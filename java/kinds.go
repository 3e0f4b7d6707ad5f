package java

import "github.com/dhamidi/codemining/java/parser"

// Node kinds as they appear in converted syntax trees.
var (
	kindIdentifier  = parser.KindIdentifier.String()
	kindName        = parser.KindName.String()
	kindOperator    = parser.KindOperator.String()
	kindModifiers   = parser.KindModifiers.String()
	kindModifier    = parser.KindModifier.String()
	kindAnnotation  = parser.KindAnnotation.String()
	kindQualified   = parser.KindQualifiedName.String()
	kindParameter   = parser.KindParameter.String()
	kindDeclarator  = parser.KindVariableDeclarator.String()
	kindFieldDecl   = parser.KindFieldDecl.String()
	kindMethodDecl  = parser.KindMethodDecl.String()
	kindClassDecl   = parser.KindClassDecl.String()
	kindIfaceDecl   = parser.KindInterfaceDecl.String()
	kindEnumDecl    = parser.KindEnumDecl.String()
	kindClassBody   = parser.KindClassBody.String()
	kindEnumConst   = parser.KindEnumConstant.String()
	kindRecordDecl  = parser.KindRecordDecl.String()
	kindCallExpr    = parser.KindCallExpr.String()
	kindArguments   = parser.KindArguments.String()
	kindFieldAccess = parser.KindFieldAccess.String()
	kindMethodRef   = parser.KindMethodRef.String()
	kindThis        = parser.KindThis.String()
	kindLocalVar    = parser.KindLocalVarDecl.String()
	kindBlock       = parser.KindBlock.String()
	kindType        = parser.KindType.String()
	kindArrayType   = parser.KindArrayType.String()
	kindUnionType   = parser.KindUnionType.String()
	kindTypeArgs    = parser.KindTypeArguments.String()
	kindDims        = parser.KindDims.String()
	kindThrows      = parser.KindThrowsList.String()
	kindExtends     = parser.KindExtendsClause.String()
	kindImplements  = parser.KindImplementsClause.String()
	kindCastExpr    = parser.KindCastExpr.String()
	kindNewExpr     = parser.KindNewExpr.String()
	kindClassLit    = parser.KindClassLiteral.String()
	kindPackageDecl = parser.KindPackageDecl.String()
	kindImportDecl  = parser.KindImportDecl.String()
)

var typeDeclKinds = map[string]bool{
	parser.KindClassDecl.String():      true,
	parser.KindInterfaceDecl.String():  true,
	parser.KindEnumDecl.String():       true,
	parser.KindRecordDecl.String():     true,
	parser.KindAnnotationDecl.String(): true,
}

func isTypeNode(kind string) bool {
	return kind == kindType || kind == kindArrayType || kind == kindUnionType
}
