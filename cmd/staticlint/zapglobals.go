package main

import (
	"go/ast"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

const zapPkgPath = "go.uber.org/zap"

// ZapGlobalsAnalyzer запрещает глобальные логгеры zap.
// Логгер передается в компоненты явно через конструкторы.
var ZapGlobalsAnalyzer = &analysis.Analyzer{
	Name:     "zapglobals",
	Doc:      "prohibits zap.L, zap.S and zap.ReplaceGlobals; loggers must be injected",
	Run:      runZapGlobalsCheck,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
}

var forbiddenZapFuncs = []string{"L", "S", "ReplaceGlobals"}

func runZapGlobalsCheck(pass *analysis.Pass) (interface{}, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	insp.Preorder([]ast.Node{(*ast.CallExpr)(nil)}, func(node ast.Node) {
		call := node.(*ast.CallExpr)
		for _, name := range forbiddenZapFuncs {
			if isPkgFunc(pass, call, zapPkgPath, name) {
				pass.Reportf(call.Pos(), "avoid zap.%s: pass *zap.Logger explicitly", name)
				return
			}
		}
	})
	return nil, nil
}
