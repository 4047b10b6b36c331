package tessellate

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// UniformSize is the size in bytes of the per-draw uniform block.
const UniformSize = 64

// Uniforms returns the uniform block of d for a viewport of the given size:
// the 2x2 matrix, translation, viewport, color, stroke and edge parameters.
func (d *Draw) Uniforms(viewportWidth, viewportHeight float32) []byte {
	m := d.Matrix
	u := []float32{
		float32(m.A), float32(m.B), float32(m.D), float32(m.E),
		float32(m.C), float32(m.F), viewportWidth, viewportHeight,
		d.Color[0], d.Color[1], d.Color[2], d.Color[3],
		d.Stroke[0], d.Stroke[1], d.Edges[0], d.Edges[1],
	}
	return appendFloats(make([]byte, 0, UniformSize), u)
}

// PipelineCache creates the render pipelines of recorded draws on a device.
// Shader modules are shared between pipelines of the same variant.
type PipelineCache struct {
	device   hal.Device
	programs *Programs

	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	modules       map[Variant]hal.ShaderModule
	pipelines     map[PipelineKey]hal.RenderPipeline
}

// NewPipelineCache creates the shared layouts on device.
func NewPipelineCache(device hal.Device, programs *Programs) (*PipelineCache, error) {
	c := &PipelineCache{
		device:    device,
		programs:  programs,
		modules:   make(map[Variant]hal.ShaderModule),
		pipelines: make(map[PipelineKey]hal.RenderPipeline),
	}
	layout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "tessellate_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("tessellate: create uniform layout: %w", err)
	}
	c.uniformLayout = layout

	pipeLayout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "tessellate_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{layout},
	})
	if err != nil {
		c.Destroy()
		return nil, fmt.Errorf("tessellate: create pipeline layout: %w", err)
	}
	c.pipeLayout = pipeLayout
	return c, nil
}

// Pipeline returns the device pipeline of d, creating it on first use.
func (c *PipelineCache) Pipeline(d *PipelineDesc) (hal.RenderPipeline, error) {
	if p, ok := c.pipelines[d.Key]; ok {
		return p, nil
	}
	v := d.Key.Variant()
	module, ok := c.modules[v]
	if !ok {
		var err error
		module, err = c.programs.ShaderModule(c.device, v)
		if err != nil {
			return nil, err
		}
		c.modules[v] = module
	}
	p, err := c.device.CreateRenderPipeline(d.RenderPipelineDescriptor(module, c.pipeLayout))
	if err != nil {
		return nil, fmt.Errorf("tessellate: create pipeline %s: %w", d.Label, err)
	}
	c.pipelines[d.Key] = p
	return p, nil
}

// Prepare creates every pipeline fs has drawn with.
func (c *PipelineCache) Prepare(fs *FlushState) error {
	for _, d := range fs.Pipelines() {
		if _, err := c.Pipeline(d); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of created pipelines.
func (c *PipelineCache) Len() int { return len(c.pipelines) }

// Destroy releases every device object. The cache must not be used after.
func (c *PipelineCache) Destroy() {
	if c.device == nil {
		return
	}
	for k, p := range c.pipelines {
		c.device.DestroyRenderPipeline(p)
		delete(c.pipelines, k)
	}
	if c.pipeLayout != nil {
		c.device.DestroyPipelineLayout(c.pipeLayout)
		c.pipeLayout = nil
	}
	if c.uniformLayout != nil {
		c.device.DestroyBindGroupLayout(c.uniformLayout)
		c.uniformLayout = nil
	}
	for v, m := range c.modules {
		c.device.DestroyShaderModule(m)
		delete(c.modules, v)
	}
}
