package frame

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-rectlights/common"
	"github.com/Carmen-Shannon/oxy-rectlights/engine/camera"
	"github.com/Carmen-Shannon/oxy-rectlights/engine/light"
	"github.com/Carmen-Shannon/oxy-rectlights/engine/renderer"
	"github.com/Carmen-Shannon/oxy-rectlights/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	transformObjectsOffset = 12928
	shadingCountsOffset    = 16
	vertexObjectOffset     = 44
)

func newTestContext(t *testing.T, opts ...ContextOption) (*Context, *renderer.RecordingBackend) {
	t.Helper()
	backend := renderer.NewRecordingBackend()
	ctx, err := NewContext(backend, opts...)
	require.NoError(t, err)
	return ctx, backend
}

func demoDraw(f *Frame) error {
	if _, err := f.Floor(common.Identity4()); err != nil {
		return err
	}
	_, err := f.Cube(common.Translate4(0, 0, 4))
	return err
}

func u32(b []byte, off int) uint32 { return binary.LittleEndian.Uint32(b[off:]) }

func f32(b []byte, off int) float32 { return math.Float32frombits(u32(b, off)) }

func TestNewContextRequiresBackend(t *testing.T) {
	_, err := NewContext(nil)
	assert.Error(t, err)
}

func TestNewContextDefaults(t *testing.T) {
	ctx, backend := newTestContext(t)
	assert.NotNil(t, ctx.Registry())
	assert.NotNil(t, ctx.Builder())
	assert.NotNil(t, ctx.Camera())
	assert.Same(t, backend, ctx.Backend())
	assert.Equal(t, DefaultClearColor, ctx.ClearColor())
}

func TestRenderCallOrder(t *testing.T) {
	clear := renderer.Color{R: 0.5, G: 0.5, B: 0.5, A: 1}
	ctx, backend := newTestContext(t, WithClearColor(clear))

	require.NoError(t, ctx.Render(demoDraw))
	require.NoError(t, ctx.Present())

	assert.Equal(t, []string{
		renderer.OpClearTargets,
		renderer.OpCreateVertexBuffer,
		renderer.OpCreateIndexBuffer,
		renderer.OpUpdateUniformBlock,
		renderer.OpUpdateUniformBlock,
		renderer.OpDrawIndexed,
		renderer.OpPresent,
	}, backend.Ops())

	calls := backend.Calls()
	assert.Equal(t, clear, calls[0].Color)
	assert.Equal(t, renderer.UniformBlockTransform, calls[3].Block)
	assert.Equal(t, scene.GPUTransformBlockSize, calls[3].Size)
	assert.Equal(t, renderer.UniformBlockShading, calls[4].Block)
	assert.Equal(t, light.GPUShadingBlockSize, calls[4].Size)
	assert.Equal(t, uint32(6+36), calls[5].IndexCount)
}

func TestRenderProxiesComeFirst(t *testing.T) {
	reg := light.NewRegistry()
	reg.AddRectLight([3]float32{4, 0.3, 5}, [3]float32{1, 1, 1}, 4, 1, 1, 0, 0.5)
	reg.AddPointLight([3]float32{0, 3, 0}, [3]float32{1, 0, 0}, 2)
	ctx, backend := newTestContext(t, WithRegistry(reg))

	require.NoError(t, ctx.Render(demoDraw))

	verts := backend.Vertices()
	require.Len(t, verts, (4+4+24)*scene.VertexSize)
	assert.Equal(t, uint32(0), u32(verts, vertexObjectOffset), "proxy uses slot 0")
	assert.Equal(t, uint32(1), u32(verts, 4*scene.VertexSize+vertexObjectOffset), "floor uses slot 1")
	assert.Equal(t, uint32(2), u32(verts, 8*scene.VertexSize+vertexObjectOffset), "cube uses slot 2")

	indices := backend.Indices()
	require.Len(t, indices, (12+6+36)*4)

	transforms := backend.Uniform(renderer.UniformBlockTransform)
	assert.Equal(t, uint32(3), u32(transforms, transformObjectsOffset))

	shading := backend.Uniform(renderer.UniformBlockShading)
	assert.Equal(t, uint32(1), u32(shading, shadingCountsOffset), "point count")
	assert.Equal(t, uint32(1), u32(shading, shadingCountsOffset+12), "rect count")

	stats := ctx.Stats()
	assert.Equal(t, uint64(1), stats.FramesDrawn)
	assert.Equal(t, uint32(3), stats.Objects)
	assert.Equal(t, 32, stats.Vertices)
	assert.Equal(t, 54, stats.Indices)
}

func TestRenderPacksCamera(t *testing.T) {
	cam := camera.NewCamera(camera.WithPosition(-4, 1, -4))
	ctx, backend := newTestContext(t, WithCamera(cam))

	require.NoError(t, ctx.Render(nil))

	shading := backend.Uniform(renderer.UniformBlockShading)
	assert.Equal(t, float32(-4), f32(shading, 0))
	assert.Equal(t, float32(1), f32(shading, 4))
	assert.Equal(t, float32(-4), f32(shading, 8))

	view := cam.ViewMatrix()
	proj := cam.ProjectionMatrix()
	block := ctx.Builder().TransformBlock()
	assert.Equal(t, view, block.View)
	assert.Equal(t, proj, block.Projection)
}

func TestPresentResetsSlots(t *testing.T) {
	ctx, backend := newTestContext(t)

	for range 3 {
		require.NoError(t, ctx.Render(demoDraw))
		assert.Equal(t, uint32(2), ctx.Builder().Objects())
		require.NoError(t, ctx.Present())
		assert.Equal(t, uint32(0), ctx.Builder().Objects())
	}
	assert.Equal(t, 3, backend.Draws())
	assert.Equal(t, 3, backend.Presents())

	// Streams do not accumulate across frames.
	assert.Len(t, backend.Vertices(), (4+24)*scene.VertexSize)
}

func TestPresentResetsSlotsOnError(t *testing.T) {
	ctx, backend := newTestContext(t)
	require.NoError(t, ctx.Render(demoDraw))

	backend.FailNext(renderer.OpPresent, errors.New("surface lost"))
	assert.Error(t, ctx.Present())
	assert.Equal(t, uint32(0), ctx.Builder().Objects())
}

func TestUploadFailureSkipsFrame(t *testing.T) {
	ops := []string{
		renderer.OpClearTargets,
		renderer.OpCreateVertexBuffer,
		renderer.OpCreateIndexBuffer,
		renderer.OpUpdateUniformBlock,
	}
	for _, op := range ops {
		t.Run(op, func(t *testing.T) {
			ctx, backend := newTestContext(t)
			cause := &renderer.UploadError{Resource: op, Size: 4, Err: errors.New("out of memory")}
			backend.FailNext(op, cause)

			err := ctx.Render(demoDraw)
			require.ErrorIs(t, err, ErrFrameSkipped)
			assert.ErrorIs(t, err, renderer.ErrResourceUpload)
			var typed *renderer.UploadError
			require.ErrorAs(t, err, &typed)
			assert.Equal(t, op, typed.Resource)

			assert.Equal(t, 0, backend.Draws())
			assert.NotContains(t, backend.Ops(), renderer.OpDrawIndexed)
			require.NoError(t, ctx.Present())

			// The next frame renders normally from empty streams.
			require.NoError(t, ctx.Render(demoDraw))
			assert.Equal(t, 1, backend.Draws())
			assert.Len(t, backend.Vertices(), (4+24)*scene.VertexSize)

			stats := ctx.Stats()
			assert.Equal(t, uint64(1), stats.FramesSkipped)
			assert.Equal(t, uint64(1), stats.FramesDrawn)
		})
	}
}

func TestNonUploadFailureIsNotSkip(t *testing.T) {
	ctx, backend := newTestContext(t)
	backend.FailNext(renderer.OpDrawIndexed, errors.New("device lost"))

	err := ctx.Render(demoDraw)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrFrameSkipped)
}

func TestDrawErrorAbortsFrame(t *testing.T) {
	ctx, backend := newTestContext(t)
	boom := errors.New("boom")

	err := ctx.Render(func(f *Frame) error {
		_, _ = f.Floor(common.Identity4())
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, backend.Draws())
	assert.Equal(t, uint64(1), ctx.Stats().FramesSkipped)
}

func TestObjectCapacityStillDraws(t *testing.T) {
	ctx, backend := newTestContext(t)

	var rejected int
	err := ctx.Render(func(f *Frame) error {
		for range scene.MaxObjects + 5 {
			if _, err := f.Cube(common.Identity4()); err != nil {
				require.ErrorIs(t, err, scene.ErrObjectCapacity)
				rejected++
			}
		}
		return scene.ErrObjectCapacity
	})
	require.NoError(t, err)
	assert.Equal(t, 5, rejected)
	assert.Equal(t, 1, backend.Draws())
	assert.Len(t, backend.Indices(), scene.MaxObjects*36*4)

	transforms := backend.Uniform(renderer.UniformBlockTransform)
	assert.Equal(t, uint32(scene.MaxObjects), u32(transforms, transformObjectsOffset))
}

func TestCubeSharedDrawsWithIdentitySlot(t *testing.T) {
	tests := []struct {
		name   string
		lights int
	}{
		{"no rect lights", 0},
		{"after a proxy", 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reg := light.NewRegistry()
			for range tc.lights {
				reg.AddRectLight([3]float32{4, 0.3, 5}, [3]float32{1, 1, 1}, 4, 1, 1, 0, 0.5)
			}
			ctx, backend := newTestContext(t, WithRegistry(reg))

			var slot uint32
			require.NoError(t, ctx.Render(func(f *Frame) error {
				var err error
				slot, err = f.CubeShared()
				return err
			}))
			assert.Equal(t, uint32(tc.lights), slot)

			vertices := backend.Vertices()
			proxyBytes := tc.lights * 4 * scene.VertexSize
			require.Len(t, vertices, proxyBytes+8*scene.VertexSize)
			for i := range 8 {
				assert.Equal(t, slot, u32(vertices, proxyBytes+i*scene.VertexSize+vertexObjectOffset))
			}

			transforms := backend.Uniform(renderer.UniformBlockTransform)
			assert.Equal(t, uint32(tc.lights+1), u32(transforms, transformObjectsOffset))
			identity := common.Identity4()
			for i, want := range identity {
				assert.Equalf(t, want, f32(transforms, int(slot)*64+i*4), "model element %d", i)
			}
		})
	}
}

func TestFrameRegistryAnimatesNextFrame(t *testing.T) {
	reg := light.NewRegistry()
	reg.AddRectLight([3]float32{}, [3]float32{1, 1, 1}, 1, 1, 1, 0, 0)
	ctx, _ := newTestContext(t, WithRegistry(reg))

	for range 10 {
		require.NoError(t, ctx.Render(func(f *Frame) error {
			rl, ok := f.Registry().RectLight(0)
			require.True(t, ok)
			rl.RotationY += 0.001
			return nil
		}))
		require.NoError(t, ctx.Present())
	}
	rl, ok := reg.RectLight(0)
	require.True(t, ok)
	assert.InDelta(t, 0.01, rl.RotationY, 1e-6)
}

func TestSetRegistry(t *testing.T) {
	ctx, _ := newTestContext(t)
	reg := light.NewRegistry()
	ctx.SetRegistry(reg)
	assert.Same(t, reg, ctx.Registry())

	ctx.SetRegistry(nil)
	assert.Same(t, reg, ctx.Registry())
}

func TestFrameInView(t *testing.T) {
	cam := camera.NewCamera(camera.WithPosition(0, 0, 0))
	ctx, _ := newTestContext(t, WithCamera(cam))

	require.NoError(t, ctx.Render(func(f *Frame) error {
		assert.True(t, f.InView([3]float32{0, 0, 4}, scene.CubeRadius))
		assert.False(t, f.InView([3]float32{0, 0, -20}, scene.CubeRadius))
		return nil
	}))
}
