package renderer

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/oxy-rectlights/common"
	"github.com/Carmen-Shannon/oxy-rectlights/engine/light"
	"github.com/Carmen-Shannon/oxy-rectlights/engine/ltc"
	"github.com/Carmen-Shannon/oxy-rectlights/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed assets/rectlight.wgsl
var rectLightShaderSource string

const (
	vertexEntryPoint   = "vs_main"
	fragmentEntryPoint = "fs_main"
)

// WGPUBackend draws frames with WebGPU onto a window surface.
//
// It owns a single render pipeline over the scene vertex layout, two uniform buffers
// (transform and shading) in bind group 0 and the three LTC lookup textures in bind
// group 1. Vertex and index buffers are recreated every frame.
type WGPUBackend struct {
	mu sync.Mutex

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	surface  *wgpu.Surface

	surfaceFormat wgpu.TextureFormat
	width         uint32
	height        uint32

	presentMode          PresentMode
	sampleCount          MSAASampleCount
	forceFallbackAdapter bool
	logger               *slog.Logger

	msaaTexture  *wgpu.Texture
	msaaView     *wgpu.TextureView
	depthTexture *wgpu.Texture
	depthView    *wgpu.TextureView

	pipeline     *wgpu.RenderPipeline
	frameLayout  *wgpu.BindGroupLayout
	tableLayout  *wgpu.BindGroupLayout
	transformBuf *wgpu.Buffer
	shadingBuf   *wgpu.Buffer
	frameGroup   *wgpu.BindGroup
	tableGroup   *wgpu.BindGroup
	tables       [3]*wgpu.Texture
	tableViews   [3]*wgpu.TextureView

	// Per-frame state.
	vertexBuf    *wgpu.Buffer
	indexBuf     *wgpu.Buffer
	clearColor   wgpu.Color
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
	encoded      bool
}

var _ Backend = &WGPUBackend{}

// NewWGPUBackend creates the WebGPU device for a window surface and every long-lived
// resource the draw pipeline needs. Neutral lookup tables are bound until
// UploadLookupTables is called.
//
// Parameters:
//   - surfaceDescriptor: the platform surface descriptor of the target window
//   - width: initial surface width in pixels
//   - height: initial surface height in pixels
//   - opts: optional configuration functions
//
// Returns:
//   - *WGPUBackend: the ready backend
//   - error: a *DeviceError naming the failed step
func NewWGPUBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, width, height int, opts ...WGPUBackendOption) (*WGPUBackend, error) {
	b := &WGPUBackend{
		presentMode: PresentModeVSync,
		sampleCount: MSAA4x,
		clearColor:  wgpu.Color{R: 0.1, G: 0.1, B: 0.1, A: 1.0},
	}
	for _, opt := range opts {
		opt(b)
	}

	if err := b.init(surfaceDescriptor, width, height); err != nil {
		b.Release()
		return nil, err
	}
	if err := b.UploadLookupTables(ltc.NeutralSet()); err != nil {
		b.Release()
		return nil, deviceErr("bind neutral lookup tables", err)
	}

	common.LoggerOr(b.logger).Info("webgpu backend ready",
		"format", b.surfaceFormat,
		"width", b.width,
		"height", b.height,
		"msaa", uint32(b.sampleCount),
	)
	return b, nil
}

func (b *WGPUBackend) init(surfaceDescriptor *wgpu.SurfaceDescriptor, width, height int) error {
	b.instance = wgpu.CreateInstance(nil)
	if b.instance == nil {
		return deviceErr("create instance", nil)
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)
	if b.surface == nil {
		return deviceErr("create surface", nil)
	}

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: b.forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		return deviceErr("request adapter", err)
	}
	b.adapter = a

	// The transform block (12944 bytes) fits the default 64 KiB uniform binding limit.
	limits := wgpu.DefaultLimits()

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: limits,
		},
	})
	if err != nil {
		return deviceErr("request device", err)
	}
	b.device = d
	b.queue = d.GetQueue()

	if err := b.configure(width, height); err != nil {
		return err
	}
	if err := b.createUniforms(); err != nil {
		return err
	}
	return b.createPipeline()
}

// configure (re)configures the surface and recreates the MSAA and depth targets.
func (b *WGPUBackend) configure(width, height int) error {
	capabilities := b.surface.GetCapabilities(b.adapter)
	if len(capabilities.Formats) == 0 || len(capabilities.AlphaModes) == 0 {
		return deviceErr("surface capabilities", errors.New("surface reports no formats"))
	}
	b.surfaceFormat = capabilities.Formats[0]
	b.width, b.height = uint32(width), uint32(height)

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      b.surfaceFormat,
		Width:       b.width,
		Height:      b.height,
		PresentMode: b.presentMode.wgpu(),
		AlphaMode:   capabilities.AlphaModes[0],
	})

	b.releaseTargets()

	count := uint32(b.sampleCount)
	if count > 1 {
		// The pass draws into the MSAA texture and resolves into the swapchain view.
		tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label: "MSAA Texture",
			Size: wgpu.Extent3D{
				Width:              b.width,
				Height:             b.height,
				DepthOrArrayLayers: 1,
			},
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        b.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			return deviceErr("create msaa target", err)
		}
		b.msaaTexture = tex
		if b.msaaView, err = tex.CreateView(nil); err != nil {
			return deviceErr("create msaa view", err)
		}
	}

	// Depth sample count must match the color attachment.
	depth, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              b.width,
			Height:             b.height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return deviceErr("create depth target", err)
	}
	b.depthTexture = depth
	if b.depthView, err = depth.CreateView(nil); err != nil {
		return deviceErr("create depth view", err)
	}
	return nil
}

func (b *WGPUBackend) createUniforms() error {
	var err error
	b.frameLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Frame Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: scene.GPUTransformBlockSize,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: light.GPUShadingBlockSize,
				},
			},
		},
	})
	if err != nil {
		return deviceErr("create frame bind group layout", err)
	}

	entries := make([]wgpu.BindGroupLayoutEntry, len(b.tables))
	for i := range entries {
		entries[i] = wgpu.BindGroupLayoutEntry{
			Binding:    uint32(i),
			Visibility: wgpu.ShaderStageFragment,
			Texture: wgpu.TextureBindingLayout{
				SampleType:    wgpu.TextureSampleTypeUnfilterableFloat,
				ViewDimension: wgpu.TextureViewDimension2D,
			},
		}
	}
	b.tableLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   "LTC Bind Group Layout",
		Entries: entries,
	})
	if err != nil {
		return deviceErr("create ltc bind group layout", err)
	}

	b.transformBuf, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Transform Uniform Buffer",
		Size:  scene.GPUTransformBlockSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return deviceErr("create transform buffer", err)
	}
	b.shadingBuf, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Shading Uniform Buffer",
		Size:  light.GPUShadingBlockSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return deviceErr("create shading buffer", err)
	}

	b.frameGroup, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Frame Bind Group",
		Layout: b.frameLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: b.transformBuf, Offset: 0, Size: wgpu.WholeSize},
			{Binding: 1, Buffer: b.shadingBuf, Offset: 0, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return deviceErr("create frame bind group", err)
	}
	return nil
}

func (b *WGPUBackend) createPipeline() error {
	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "rectlight.wgsl",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: rectLightShaderSource,
		},
	})
	if err != nil {
		return deviceErr("create shader module", err)
	}
	defer module.Release()

	layout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Rect Light Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.frameLayout, b.tableLayout},
	})
	if err != nil {
		return deviceErr("create pipeline layout", err)
	}
	defer layout.Release()

	b.pipeline, err = b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Rect Light Render Pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: vertexEntryPoint,
			Buffers:    []wgpu.VertexBufferLayout{vertexLayout()},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: fragmentEntryPoint,
			Targets: []wgpu.ColorTargetState{
				{
					Format:    b.surfaceFormat,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		// Proxies are double-sided by index order and the floor is seen from above, so
		// nothing is culled.
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(b.sampleCount),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return deviceErr("create render pipeline", err)
	}
	return nil
}

// vertexLayout mirrors scene.Vertex.
func vertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: scene.VertexSize,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 32, ShaderLocation: 3},
			{Format: wgpu.VertexFormatUint32, Offset: 44, ShaderLocation: 4},
		},
	}
}

// UploadLookupTables replaces the LTC textures in bind group 1.
//
// Parameters:
//   - set: the decoded tables; nil members are replaced by ltc.Neutral
//
// Returns:
//   - error: an *UploadError if a texture or the bind group could not be created
func (b *WGPUBackend) UploadLookupTables(set ltc.Set) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	tables := [3]*ltc.Table{set.Matrix, set.Amplitude, set.Filtered}
	var textures [3]*wgpu.Texture
	var views [3]*wgpu.TextureView
	release := func() {
		for i := range textures {
			if views[i] != nil {
				views[i].Release()
			}
			if textures[i] != nil {
				textures[i].Release()
			}
		}
	}

	for i, t := range tables {
		if t == nil {
			t = ltc.Neutral()
		}
		label := fmt.Sprintf("LTC Table %d", i)
		if t.Name != "" {
			label = "LTC " + t.Name
		}
		extent := wgpu.Extent3D{Width: t.Width, Height: t.Height, DepthOrArrayLayers: 1}

		tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label:         label,
			Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
			Dimension:     wgpu.TextureDimension2D,
			Size:          extent,
			Format:        wgpu.TextureFormatRGBA32Float,
			MipLevelCount: 1,
			SampleCount:   1,
		})
		if err != nil {
			release()
			return uploadErr(label, len(t.Texels)*4, err)
		}
		textures[i] = tex

		b.queue.WriteTexture(
			&wgpu.ImageCopyTexture{
				Texture:  tex,
				MipLevel: 0,
				Origin:   wgpu.Origin3D{},
				Aspect:   wgpu.TextureAspectAll,
			},
			t.Bytes(),
			&wgpu.TextureDataLayout{
				Offset:       0,
				BytesPerRow:  t.BytesPerRow(),
				RowsPerImage: t.Height,
			},
			&extent,
		)

		if views[i], err = tex.CreateView(nil); err != nil {
			release()
			return uploadErr(label, len(t.Texels)*4, err)
		}
	}

	group, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "LTC Bind Group",
		Layout: b.tableLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: views[0]},
			{Binding: 1, TextureView: views[1]},
			{Binding: 2, TextureView: views[2]},
		},
	})
	if err != nil {
		release()
		return uploadErr("ltc bind group", 0, err)
	}

	b.releaseTables()
	b.tables, b.tableViews, b.tableGroup = textures, views, group
	return nil
}

// Resize reconfigures the surface and recreates the render targets. A zero size
// (minimized window) is ignored.
//
// Parameters:
//   - width: new surface width in pixels
//   - height: new surface height in pixels
//
// Returns:
//   - error: a *DeviceError if the targets could not be recreated
func (b *WGPUBackend) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.configure(width, height)
}

func (b *WGPUBackend) ClearTargets(color Color) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.clearColor = wgpu.Color{R: color.R, G: color.G, B: color.B, A: color.A}
	b.encoded = false

	// A frame that was never presented keeps its surface image.
	if b.frameSurface != nil {
		return nil
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return uploadErr("surface texture", 0, err)
	}
	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return uploadErr("surface view", 0, err)
	}
	b.frameSurface = surfaceTexture
	b.frameView = view
	return nil
}

func (b *WGPUBackend) CreateVertexBuffer(data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	buf, err := b.createBuffer("Frame Vertex Buffer", wgpu.BufferUsageVertex, b.vertexBuf, data)
	b.vertexBuf = buf
	if err != nil {
		return uploadErr("vertex buffer", len(data), err)
	}
	return nil
}

func (b *WGPUBackend) CreateIndexBuffer(data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	buf, err := b.createBuffer("Frame Index Buffer", wgpu.BufferUsageIndex, b.indexBuf, data)
	b.indexBuf = buf
	if err != nil {
		return uploadErr("index buffer", len(data), err)
	}
	return nil
}

// createBuffer releases old and returns a new buffer holding data, or nil for empty data.
func (b *WGPUBackend) createBuffer(label string, usage wgpu.BufferUsage, old *wgpu.Buffer, data []byte) (*wgpu.Buffer, error) {
	if old != nil {
		old.Release()
	}
	if len(data) == 0 {
		return nil, nil
	}
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("size %d is not a multiple of 4", len(data))
	}

	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            label,
		Size:             uint64(len(data)),
		Usage:            usage | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return nil, err
	}
	if err := b.queue.WriteBuffer(buf, 0, data); err != nil {
		buf.Release()
		return nil, err
	}
	return buf, nil
}

func (b *WGPUBackend) UpdateUniformBlock(block UniformBlock, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var (
		buf  *wgpu.Buffer
		size int
	)
	switch block {
	case UniformBlockTransform:
		buf, size = b.transformBuf, scene.GPUTransformBlockSize
	case UniformBlockShading:
		buf, size = b.shadingBuf, light.GPUShadingBlockSize
	default:
		return uploadErr(block.String()+" block", len(data), fmt.Errorf("unknown uniform block %d", block))
	}
	if len(data) != size {
		return uploadErr(block.String()+" block", len(data), fmt.Errorf("want %d bytes", size))
	}
	if err := b.queue.WriteBuffer(buf, 0, data); err != nil {
		return uploadErr(block.String()+" block", len(data), err)
	}
	return nil
}

func (b *WGPUBackend) DrawIndexed(indexCount uint32) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameView == nil {
		return errors.New("renderer: draw outside a frame, call ClearTargets first")
	}
	return b.encodePass(func(pass *wgpu.RenderPassEncoder) {
		if indexCount == 0 || b.vertexBuf == nil || b.indexBuf == nil {
			return
		}
		pass.SetPipeline(b.pipeline)
		pass.SetBindGroup(0, b.frameGroup, nil)
		pass.SetBindGroup(1, b.tableGroup, nil)
		pass.SetVertexBuffer(0, b.vertexBuf, 0, wgpu.WholeSize)
		pass.SetIndexBuffer(b.indexBuf, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
		pass.DrawIndexed(indexCount, 1, 0, 0, 0)
	})
}

// encodePass records one clearing render pass into the acquired surface image and submits it.
func (b *WGPUBackend) encodePass(draw func(pass *wgpu.RenderPassEncoder)) error {
	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("renderer: create command encoder: %w", err)
	}
	defer encoder.Release()

	// With MSAA the pass renders into the multisampled target and resolves into the
	// swapchain view; without it the swapchain view is the attachment itself.
	color := wgpu.RenderPassColorAttachment{
		View:       b.frameView,
		LoadOp:     wgpu.LoadOpClear,
		StoreOp:    wgpu.StoreOpStore,
		ClearValue: b.clearColor,
	}
	if b.sampleCount > 1 {
		color.View = b.msaaView
		color.ResolveTarget = b.frameView
		color.StoreOp = wgpu.StoreOpDiscard
	}

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{color},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	})
	draw(pass)
	pass.End()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("renderer: finish command encoder: %w", err)
	}
	b.queue.Submit(commandBuffer)
	commandBuffer.Release()
	b.encoded = true
	return nil
}

func (b *WGPUBackend) Present() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface == nil {
		return nil
	}
	// A skipped frame still shows the cleared targets.
	if !b.encoded {
		if err := b.encodePass(func(*wgpu.RenderPassEncoder) {}); err != nil {
			common.LoggerOr(b.logger).Warn("clear pass failed", "error", err)
		}
	}

	b.surface.Present()

	b.frameView.Release()
	b.frameSurface.Release()
	b.frameView = nil
	b.frameSurface = nil
	b.encoded = false
	return nil
}

// Release frees every GPU object owned by the backend. The backend is unusable afterwards.
func (b *WGPUBackend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, buf := range []*wgpu.Buffer{b.vertexBuf, b.indexBuf, b.transformBuf, b.shadingBuf} {
		if buf != nil {
			buf.Release()
		}
	}
	b.vertexBuf, b.indexBuf, b.transformBuf, b.shadingBuf = nil, nil, nil, nil

	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	if b.frameSurface != nil {
		b.frameSurface.Release()
		b.frameSurface = nil
	}
	b.releaseTables()
	b.releaseTargets()

	if b.frameGroup != nil {
		b.frameGroup.Release()
		b.frameGroup = nil
	}
	if b.frameLayout != nil {
		b.frameLayout.Release()
		b.frameLayout = nil
	}
	if b.tableLayout != nil {
		b.tableLayout.Release()
		b.tableLayout = nil
	}
	if b.pipeline != nil {
		b.pipeline.Release()
		b.pipeline = nil
	}
	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

func (b *WGPUBackend) releaseTargets() {
	if b.msaaView != nil {
		b.msaaView.Release()
		b.msaaView = nil
	}
	if b.msaaTexture != nil {
		b.msaaTexture.Release()
		b.msaaTexture = nil
	}
	if b.depthView != nil {
		b.depthView.Release()
		b.depthView = nil
	}
	if b.depthTexture != nil {
		b.depthTexture.Release()
		b.depthTexture = nil
	}
}

func (b *WGPUBackend) releaseTables() {
	if b.tableGroup != nil {
		b.tableGroup.Release()
		b.tableGroup = nil
	}
	for i := range b.tables {
		if b.tableViews[i] != nil {
			b.tableViews[i].Release()
			b.tableViews[i] = nil
		}
		if b.tables[i] != nil {
			b.tables[i].Release()
			b.tables[i] = nil
		}
	}
}
