package modes

import (
	"context"
	"path/filepath"

	"github.com/soltools/sol-tester/types"
)

var yulFns = Fns{Check: checkYul, Run: runYul}

func checkYul(cfg *types.Config, path string) types.TestResult {
	return checkConformance(cfg, types.ModeSolcYul, path)
}

func runYul(ctx context.Context, cx *Context) types.TestResult {
	var extra []string
	if filepath.Ext(cx.File) == ".yul" {
		extra = []string{"--language=yul"}
	}
	return runConformance(ctx, cx, extra)
}
