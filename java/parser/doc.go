// Package parser provides an error-tolerant parser for Java source code.
//
// # Overview
//
// The lexer turns bytes into tokens, keeping whitespace and comments as
// tokens of their own so that callers can reproduce the input exactly.
// The parser drops them and builds a concrete syntax tree of *Node.
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Input     │────▶│   Lexer     │────▶│   Parser    │
//	│  (bytes)    │     │  (tokens)   │     │   (tree)    │
//	└─────────────┘     └─────────────┘     └─────────────┘
//
// # Entry Points
//
// Source that is not a whole file can be parsed from a narrower start
// symbol:
//
//	ParseCompilationUnit  a complete .java file
//	ParseClassBody        members of a class, without braces
//	ParseStatements       block statements, without braces
//	ParseExpression       a single expression
//
// # Tree Shape
//
// Declared names are KindIdentifier leaves that are direct children of
// their declaration. Parameters of methods, constructors, catch clauses,
// lambdas and enhanced for loops are KindParameter children of that
// construct. Simple names in expressions are KindName leaves; the member
// name of a field access, method call or method reference is a
// KindIdentifier leaf.
//
// # Error Recovery
//
// The parser never panics on malformed input. Unparsable text becomes a
// KindError node carrying an *Error, and parsing resumes at the next
// statement or member boundary. Errors returns every error seen, and
// Incomplete reports whether the input ended inside a construct.
//
//	CompilationUnit
//	  ClassDecl
//	    ...
//	      Block
//	        ExprStmt
//	        Error "expected statement, got end of input"
package parser
