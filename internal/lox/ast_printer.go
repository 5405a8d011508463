package lox

import (
	"fmt"
	"strconv"
	"strings"
)

// AstPrinter renders an expression tree in a parenthesized prefix notation,
// used when debugging the parser.
type AstPrinter struct{}

func (printer *AstPrinter) Print(expr Expr) string {
	s, _ := expr.Accept(printer)
	return fmt.Sprintf("%v", s)
}

func (printer *AstPrinter) VisitAssignExpr(expr *AssignExpr) (interface{}, error) {
	val, _ := expr.Val.Accept(printer)
	return fmt.Sprintf("(= %s %s)", expr.Name.Lexeme, val), nil
}

func (printer *AstPrinter) VisitBinaryExpr(expr *BinaryExpr) (interface{}, error) {
	lhs, _ := expr.Lhs.Accept(printer)
	rhs, _ := expr.Rhs.Accept(printer)
	return fmt.Sprintf("(%s %s %s)", expr.Op.Lexeme, lhs, rhs), nil
}

func (printer *AstPrinter) VisitCallExpr(expr *CallExpr) (interface{}, error) {
	callee, _ := expr.Callee.Accept(printer)
	parts := []string{fmt.Sprintf("(call %s", callee)}
	for _, arg := range expr.Args {
		argStr, _ := arg.Accept(printer)
		parts = append(parts, fmt.Sprintf("%s", argStr))
	}
	return strings.Join(parts, " ") + ")", nil
}

func (printer *AstPrinter) VisitGetExpr(expr *GetExpr) (interface{}, error) {
	obj, _ := expr.Obj.Accept(printer)
	return fmt.Sprintf("(get %s %s)", obj, expr.Name.Lexeme), nil
}

func (printer *AstPrinter) VisitGroupExpr(expr *GroupExpr) (interface{}, error) {
	exprStr, _ := expr.Expr.Accept(printer)
	return fmt.Sprintf("(group %s)", exprStr), nil
}

func (printer *AstPrinter) VisitLiteralExpr(expr *LiteralExpr) (interface{}, error) {
	switch v := expr.Val.(type) {
	case nil:
		return "nil", nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return fmt.Sprintf("%v", v), nil
	}
}

func (printer *AstPrinter) VisitLogicalExpr(expr *LogicalExpr) (interface{}, error) {
	lhs, _ := expr.Lhs.Accept(printer)
	rhs, _ := expr.Rhs.Accept(printer)
	return fmt.Sprintf("(%s %s %s)", expr.Op.Lexeme, lhs, rhs), nil
}

func (printer *AstPrinter) VisitSetExpr(expr *SetExpr) (interface{}, error) {
	obj, _ := expr.Obj.Accept(printer)
	val, _ := expr.Val.Accept(printer)
	return fmt.Sprintf("(set %s %s %s)", obj, expr.Name.Lexeme, val), nil
}

func (printer *AstPrinter) VisitThisExpr(expr *ThisExpr) (interface{}, error) {
	return "this", nil
}

func (printer *AstPrinter) VisitUnaryExpr(expr *UnaryExpr) (interface{}, error) {
	exprStr, _ := expr.Expr.Accept(printer)
	return fmt.Sprintf("(%s %s)", expr.Op.Lexeme, exprStr), nil
}

func (printer *AstPrinter) VisitVarExpr(expr *VarExpr) (interface{}, error) {
	return expr.Name.Lexeme, nil
}
