package compiler

import (
	"github.com/dave/jennifer/jen"
	"github.com/hao-wang/bfalgo/internal/codegen"
)

// generateScratchPool generates a sync.Pool for table-engine scratch space.
func (c *Compiler) generateScratchPool(stateCount int) {
	poolName := codegen.Prefixed(c.config.Name, codegen.PoolName)
	scratch := codegen.Prefixed(c.config.Name, codegen.ScratchType)

	c.logger.Log("Generating scratch pool %s (%d states per set)", poolName, stateCount)
	c.file.Var().Id(poolName).Op("=").Qual("sync", "Pool").Values(jen.Dict{
		jen.Id("New"): jen.Func().Params().Interface().Block(
			jen.Return(jen.Id("new" + codegen.UpperFirst(scratch)).Call()),
		),
	})
	c.file.Line()
}

// generatePooledScratchInit generates code to get scratch space from the pool.
func (c *Compiler) generatePooledScratchInit() []jen.Code {
	poolName := codegen.Prefixed(c.config.Name, codegen.PoolName)
	scratch := codegen.Prefixed(c.config.Name, codegen.ScratchType)

	return []jen.Code{
		// Get scratch from pool
		jen.Id(codegen.ScratchName).Op(":=").Id(poolName).Dot("Get").Call().Assert(jen.Op("*").Id(scratch)),
		// Defer return to pool
		jen.Defer().Id(poolName).Dot("Put").Call(jen.Id(codegen.ScratchName)),
	}
}
