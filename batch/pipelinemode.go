package batch

import (
	"github.com/kairoui/engine/kairoerr"
	"github.com/kairoui/engine/rhi"
)

// selectVariant picks the pipeline variant for the current batch state,
// following the flush algorithm's rule: text-SDF when in text mode,
// otherwise opaque for untextured geometry and textured for anything
// bound to a texture slot.
func selectVariant(isText, textured bool) rhi.PipelineVariant {
	switch {
	case isText:
		return rhi.PipelineTextSDF
	case textured:
		return rhi.PipelineTextured
	default:
		return rhi.PipelineOpaque
	}
}

// pipelineSet lazily builds and caches one rhi.PipelineState per variant.
// The batcher never constructs pipeline state per draw call; it builds
// each variant once on first use and reuses it thereafter.
type pipelineSet struct {
	device rhi.Device
	states map[rhi.PipelineVariant]rhi.PipelineState
}

func newPipelineSet(device rhi.Device) *pipelineSet {
	return &pipelineSet{
		device: device,
		states: make(map[rhi.PipelineVariant]rhi.PipelineState, 3),
	}
}

// get returns the pipeline state for variant, building it on first
// request. Every batcher pipeline uses the same alpha-blend state and
// disables depth testing, per the flush algorithm's step 4.
func (p *pipelineSet) get(variant rhi.PipelineVariant) (rhi.PipelineState, error) {
	if ps, ok := p.states[variant]; ok {
		return ps, nil
	}

	desc := rhi.PipelineDesc{
		Label:    pipelineLabel(variant),
		Variant:  variant,
		Topology: rhi.PrimitiveTriangleList,
		VertexIn: vertexInputLayout(),
		Blend: rhi.BlendDesc{
			Enabled:   true,
			SrcColor:  rhi.BlendFactorSrcAlpha,
			DstColor:  rhi.BlendFactorOneMinusSrcAlpha,
			ColorOp:   rhi.BlendOpAdd,
			SrcAlpha:  rhi.BlendFactorOne,
			DstAlpha:  rhi.BlendFactorOneMinusSrcAlpha,
			AlphaOp:   rhi.BlendOpAdd,
			WriteMask: 0xF,
		},
		Rasterizer: rhi.RasterizerDesc{
			ScissorTestEnabled: true,
		},
	}

	ps, err := p.device.CreatePipeline(desc)
	if err != nil {
		return nil, kairoerr.Wrap(kairoerr.ResourceCreation, err, "batch: create pipeline for "+pipelineLabel(variant))
	}
	p.states[variant] = ps
	return ps, nil
}

func pipelineLabel(variant rhi.PipelineVariant) string {
	switch variant {
	case rhi.PipelineOpaque:
		return "ui-opaque"
	case rhi.PipelineTextured:
		return "ui-textured"
	case rhi.PipelineTextSDF:
		return "ui-text-sdf"
	default:
		return "ui-unknown"
	}
}

func vertexInputLayout() []rhi.InputElementDesc {
	return []rhi.InputElementDesc{
		{Semantic: "POSITION", Format: rhi.VertexFormatFloat32x2, Offset: 0},
		{Semantic: "TEXCOORD", Format: rhi.VertexFormatFloat32x2, Offset: 8},
		{Semantic: "COLOR", Format: rhi.VertexFormatUint32, Offset: 16},
		{Semantic: "TEXSLOT", Format: rhi.VertexFormatUint32, Offset: 20},
	}
}
