package parser

import (
	"strings"
	"testing"
)

// sexpr renders a tree compactly: leaves as Kind:literal, interior
// nodes as (Kind children...).
func sexpr(n *Node) string {
	if n == nil {
		return "<nil>"
	}
	if len(n.Children) == 0 && n.Token != nil {
		return n.Kind.String() + ":" + n.Token.Literal
	}
	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(n.Kind.String())
	for _, child := range n.Children {
		sb.WriteString(" ")
		sb.WriteString(sexpr(child))
	}
	sb.WriteString(")")
	return sb.String()
}

func checkTree(t *testing.T, p *Parser, want string) {
	t.Helper()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if got := sexpr(p.Finish()); got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestParseExpression(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a + b * c", "(BinaryExpr Name:a Operator:+ (BinaryExpr Name:b Operator:* Name:c))"},
		{"a - b - c", "(BinaryExpr (BinaryExpr Name:a Operator:- Name:b) Operator:- Name:c)"},
		{"x = y = 1", "(AssignExpr Name:x Operator:= (AssignExpr Name:y Operator:= Literal:1))"},
		{"c ? a : b", "(TernaryExpr Name:c Name:a Name:b)"},
		{"-x++", "(UnaryExpr Operator:- (PostfixExpr Name:x Operator:++))"},
		{"foo.bar(1).baz", "(FieldAccess (CallExpr Name:foo Identifier:bar (Arguments Literal:1)) Identifier:baz)"},
		{"this.x", "(FieldAccess This:this Identifier:x)"},
		{"m(a, b)", "(CallExpr Identifier:m (Arguments Name:a Name:b))"},
		{"a[i]", "(ArrayAccess Name:a Name:i)"},
		{"(int) x", "(CastExpr Type:int Name:x)"},
		{"(a) + b", "(BinaryExpr (ParenExpr Name:a) Operator:+ Name:b)"},
		{"(Runnable) () -> {}", "(CastExpr (Type Identifier:Runnable) (LambdaExpr (Block)))"},
		{"x -> x", "(LambdaExpr (Parameter Identifier:x) Name:x)"},
		{"(a, b) -> a + b", "(LambdaExpr (Parameter Identifier:a) (Parameter Identifier:b) (BinaryExpr Name:a Operator:+ Name:b))"},
		{"(int a) -> a", "(LambdaExpr (Parameter (Modifiers) Type:int Identifier:a) Name:a)"},
		{"o instanceof String s && s.isEmpty()",
			"(BinaryExpr (InstanceofExpr Name:o (Parameter (Modifiers) (Type Identifier:String) Identifier:s)) Operator:&& (CallExpr Name:s Identifier:isEmpty (Arguments)))"},
		{"o instanceof String", "(InstanceofExpr Name:o (Type Identifier:String))"},
		{"new ArrayList<>()", "(NewExpr (Type Identifier:ArrayList (TypeArguments)) (Arguments))"},
		{"new int[3]", "(NewArrayExpr Type:int Literal:3)"},
		{"new int[] {1}", "(NewArrayExpr Type:int (Dims Operator:[) (ArrayInit Literal:1))"},
		{"String[]::new", "(MethodRef (ArrayType (Type Identifier:String) (Dims Operator:[)) Modifier:new)"},
		{"System.out::println", "(MethodRef (FieldAccess Name:System Identifier:out) Identifier:println)"},
		{"int.class", "(ClassLiteral Type:int)"},
		{"i < n && j > m", "(BinaryExpr (BinaryExpr Name:i Operator:< Name:n) Operator:&& (BinaryExpr Name:j Operator:> Name:m))"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			checkTree(t, ParseExpression(strings.NewReader(tt.input)), tt.want)
		})
	}
}

func TestParseStatements(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"int a = 1; a++;",
			"(Block (LocalVarDecl (Modifiers) Type:int (VariableDeclarator Identifier:a Literal:1)) (ExprStmt (PostfixExpr Name:a Operator:++)))"},
		{"List<List<String>> x = null;",
			"(Block (LocalVarDecl (Modifiers) (Type Identifier:List (TypeArguments (Type Identifier:List (TypeArguments (Type Identifier:String))))) (VariableDeclarator Identifier:x Literal:null)))"},
		{"final int[] xs = {1, 2};",
			"(Block (LocalVarDecl (Modifiers Modifier:final) (ArrayType Type:int (Dims Operator:[)) (VariableDeclarator Identifier:xs (ArrayInit Literal:1 Literal:2))))"},
		{"for (int i = 0; i < n; i++) {}",
			"(Block (ForStmt (LocalVarDecl (Modifiers) Type:int (VariableDeclarator Identifier:i Literal:0)) (BinaryExpr Name:i Operator:< Name:n) (ForUpdate (PostfixExpr Name:i Operator:++)) (Block)))"},
		{"for (String s : list) {}",
			"(Block (EnhancedForStmt (Parameter (Modifiers) (Type Identifier:String) Identifier:s) Name:list (Block)))"},
		{"if (a) b(); else c();",
			"(Block (IfStmt Name:a (ExprStmt (CallExpr Identifier:b (Arguments))) (ExprStmt (CallExpr Identifier:c (Arguments)))))"},
		{"switch (k) { case 1, 2 -> a(); default -> { b(); } }",
			"(Block (SwitchStmt Name:k (SwitchCase (SwitchLabel Literal:1 Literal:2) (ExprStmt (CallExpr Identifier:a (Arguments)))) (SwitchCase SwitchLabel:default (Block (ExprStmt (CallExpr Identifier:b (Arguments)))))))"},
		{"switch (k) { case 1: case 2: x++; break; default: y(); }",
			"(Block (SwitchStmt Name:k (SwitchCase (SwitchLabel Literal:1) (SwitchLabel Literal:2) (ExprStmt (PostfixExpr Name:x Operator:++)) (BreakStmt)) (SwitchCase SwitchLabel:default (ExprStmt (CallExpr Identifier:y (Arguments))))))"},
		{"try (var in = open()) { use(in); } catch (IOException | RuntimeException e) { } finally { }",
			"(Block (TryStmt (LocalVarDecl (Modifiers) (Type Identifier:var) (VariableDeclarator Identifier:in (CallExpr Identifier:open (Arguments)))) (Block (ExprStmt (CallExpr Identifier:use (Arguments Name:in)))) (CatchClause (Parameter (Modifiers) (UnionType (Type Identifier:IOException) (Type Identifier:RuntimeException)) Identifier:e) (Block)) (FinallyClause (Block))))"},
		{"outer: while (true) { continue outer; }",
			"(Block (LabeledStmt Identifier:outer (WhileStmt Literal:true (Block (ContinueStmt Identifier:outer)))))"},
		{"return;", "(Block (ReturnStmt))"},
		{"class L {}", "(Block (ClassDecl (Modifiers) Identifier:L (ClassBody)))"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			checkTree(t, ParseStatements(strings.NewReader(tt.input)), tt.want)
		})
	}
}

func TestParseYield(t *testing.T) {
	input := "int r = switch (k) { case 1 -> 2; default -> { yield 3; } };"
	want := "(Block (LocalVarDecl (Modifiers) Type:int (VariableDeclarator Identifier:r (SwitchExpr Name:k (SwitchCase (SwitchLabel Literal:1) (ExprStmt Literal:2)) (SwitchCase SwitchLabel:default (Block (YieldStmt Literal:3)))))))"
	checkTree(t, ParseStatements(strings.NewReader(input)), want)
}

func TestParseCompilationUnit(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"class",
			"class A { int f; void m(int p) { f = p; } }",
			"(CompilationUnit (ClassDecl (Modifiers) Identifier:A (ClassBody (FieldDecl (Modifiers) Type:int (VariableDeclarator Identifier:f)) (MethodDecl (Modifiers) Type:void Identifier:m (Parameter (Modifiers) Type:int Identifier:p) (Block (ExprStmt (AssignExpr Name:f Operator:= Name:p)))))))",
		},
		{
			"package and imports",
			"package a.b; import java.util.*; import static x.Y.z;",
			"(CompilationUnit (PackageDecl (QualifiedName Identifier:a Identifier:b)) (ImportDecl (QualifiedName Identifier:java Identifier:util) Operator:*) (ImportDecl Modifier:static (QualifiedName Identifier:x Identifier:Y Identifier:z)))",
		},
		{
			"header",
			"public class A<T> extends B implements C, D {}",
			"(CompilationUnit (ClassDecl (Modifiers Modifier:public) Identifier:A (TypeParameters (TypeParameter Identifier:T)) (ExtendsClause (Type Identifier:B)) (ImplementsClause (Type Identifier:C) (Type Identifier:D)) (ClassBody)))",
		},
		{
			"enum",
			"enum E { A, B(1) { }; void m() {} }",
			"(CompilationUnit (EnumDecl (Modifiers) Identifier:E (ClassBody (EnumConstant Identifier:A) (EnumConstant Identifier:B (Arguments Literal:1) (ClassBody)) (MethodDecl (Modifiers) Type:void Identifier:m (Block)))))",
		},
		{
			"record",
			"record P(int x, int y) implements I { P { } }",
			"(CompilationUnit (RecordDecl (Modifiers) Identifier:P (Parameter (Modifiers) Type:int Identifier:x) (Parameter (Modifiers) Type:int Identifier:y) (ImplementsClause (Type Identifier:I)) (ClassBody (ConstructorDecl (Modifiers) Identifier:P (Block)))))",
		},
		{
			"interface",
			"interface I { default int f() { return 1; } int g(); }",
			"(CompilationUnit (InterfaceDecl (Modifiers) Identifier:I (ClassBody (MethodDecl (Modifiers Modifier:default) Type:int Identifier:f (Block (ReturnStmt Literal:1))) (MethodDecl (Modifiers) Type:int Identifier:g))))",
		},
		{
			"constructor and varargs",
			"class A { A(String... args) throws E { this(1); } }",
			"(CompilationUnit (ClassDecl (Modifiers) Identifier:A (ClassBody (ConstructorDecl (Modifiers) Identifier:A (Parameter (Modifiers) (Type Identifier:String) Operator:... Identifier:args) (ThrowsList (Type Identifier:E)) (Block (ExprStmt (CallExpr This:this (Arguments Literal:1))))))))",
		},
		{
			"sealed",
			"sealed interface S permits A {} non-sealed class A implements S {}",
			"(CompilationUnit (InterfaceDecl (Modifiers Modifier:sealed) Identifier:S (PermitsClause (Type Identifier:A)) (ClassBody)) (ClassDecl (Modifiers Modifier:non-sealed) Identifier:A (ImplementsClause (Type Identifier:S)) (ClassBody)))",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkTree(t, ParseCompilationUnit(strings.NewReader(tt.input)), tt.want)
		})
	}
}

func TestParseClassBody(t *testing.T) {
	input := `@Override public String toString() { return ""; }`
	want := `(ClassBody (MethodDecl (Modifiers (Annotation (QualifiedName Identifier:Override)) Modifier:public) (Type Identifier:String) Identifier:toString (Block (ReturnStmt Literal:""))))`
	checkTree(t, ParseClassBody(strings.NewReader(input)), want)
}

func TestParseRecoversFromErrors(t *testing.T) {
	p := ParseCompilationUnit(strings.NewReader("class A { void m() { int x = ; } void n() {} }"))
	errs := p.Errors()
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(errs), errs)
	}
	if !strings.Contains(errs[0].Message, "expected expression") {
		t.Errorf("message = %q", errs[0].Message)
	}
	if errs[0].Pos.Offset != 29 || errs[0].Pos.Column != 30 {
		t.Errorf("error at %+v, want offset 29 column 30", errs[0].Pos)
	}
	if p.Incomplete() {
		t.Error("Incomplete() = true, want false")
	}
	tree := p.Finish()
	if tree == nil {
		t.Fatal("Finish() = nil")
	}
	body := tree.Children[0].FirstChildOfKind(KindClassBody)
	if got := len(body.ChildrenOfKind(KindMethodDecl)); got != 2 {
		t.Errorf("got %d methods, want 2", got)
	}
}

func TestParseIncomplete(t *testing.T) {
	p := ParseCompilationUnit(strings.NewReader("class A { void m() {"))
	if !p.Incomplete() {
		t.Error("Incomplete() = false, want true")
	}
	if p.Finish() != nil {
		t.Error("Finish() returned a tree for incomplete input")
	}
	if p.Tree() == nil {
		t.Error("Tree() = nil, want partial tree")
	}
}

func TestParseSpans(t *testing.T) {
	p := ParseStatements(strings.NewReader("int x = 1;"))
	tree := p.Finish()
	decl := tree.Children[0]
	if decl.Span.Start.Offset != 0 || decl.Span.Len() != 10 {
		t.Errorf("declaration span = %d+%d, want 0+10", decl.Span.Start.Offset, decl.Span.Len())
	}
	var name *Node
	tree.Inspect(func(n *Node) bool {
		if n.Kind == KindIdentifier {
			name = n
		}
		return true
	})
	if name == nil || name.Span.Start.Offset != 4 || name.Span.Len() != 1 {
		t.Errorf("identifier span = %+v", name)
	}
}

func TestParseComments(t *testing.T) {
	p := ParseCompilationUnit(strings.NewReader("/** doc */ class A { // c\n }"), WithComments())
	if got := len(p.Comments()); got != 2 {
		t.Errorf("got %d comments, want 2", got)
	}
	if p.Finish() == nil {
		t.Error("Finish() = nil")
	}
}
