package null

import "github.com/kairoui/engine/rhi"

// PipelineState records its descriptor and whether it has been applied.
type PipelineState struct {
	desc        rhi.PipelineDesc
	applyCount  int
	release     bool
}

func newPipeline(desc rhi.PipelineDesc) *PipelineState {
	return &PipelineState{desc: desc}
}

func (p *PipelineState) Variant() rhi.PipelineVariant { return p.desc.Variant }

func (p *PipelineState) Apply(ctx rhi.Context) {
	p.applyCount++
	if c, ok := ctx.(*Context); ok {
		c.boundPipeline = p
	}
}

func (p *PipelineState) Release()       { p.release = true }
func (p *PipelineState) ApplyCount() int { return p.applyCount }
