package renderer

import (
	_ "embed"
	"errors"
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/pixelfield/camera"
	"github.com/pthm-cable/pixelfield/demo"
	"github.com/pthm-cable/pixelfield/field"
)

//go:embed shaders/field.vs
var fieldVS string

//go:embed shaders/field.fs
var fieldFS string

// ErrShader is returned when the field shader fails to compile or link.
var ErrShader = errors.New("field shader unavailable")

// FieldRenderer draws a field as one instanced quad per pixel.
// Must be created after the window is initialized.
type FieldRenderer struct {
	shader   rl.Shader
	material rl.Material
	mesh     rl.Mesh

	imageTex rl.Texture2D
	trailTex rl.Texture2D

	transforms  []rl.Matrix
	trailPixels []color.RGBA
	trailGen    uint64
	worldScale  float32

	// Shader uniform locations
	textureSizeLoc int32
	timeLoc        int32
	randomLoc      int32
	pointSizeLoc   int32
	worldScaleLoc  int32
	camRightLoc    int32
	camUpLoc       int32

	loaded bool
}

// NewFieldRenderer compiles the field shader.
func NewFieldRenderer() (*FieldRenderer, error) {
	shader := rl.LoadShaderFromMemory(fieldVS, fieldFS)
	if !rl.IsShaderValid(shader) {
		return nil, ErrShader
	}

	// Instance matrices feed the model matrix attribute
	shader.UpdateLocation(rl.ShaderLocMatrixModel, rl.GetShaderLocationAttrib(shader, "instanceTransform"))

	return &FieldRenderer{
		shader:         shader,
		textureSizeLoc: rl.GetShaderLocation(shader, "uTextureSize"),
		timeLoc:        rl.GetShaderLocation(shader, "uTime"),
		randomLoc:      rl.GetShaderLocation(shader, "uRandom"),
		pointSizeLoc:   rl.GetShaderLocation(shader, "uPointSize"),
		worldScaleLoc:  rl.GetShaderLocation(shader, "uWorldScale"),
		camRightLoc:    rl.GetShaderLocation(shader, "uCamRight"),
		camUpLoc:       rl.GetShaderLocation(shader, "uCamUp"),
	}, nil
}

// Load uploads the field's source image, allocates the trail texture and
// packs one transform per instance.
func (r *FieldRenderer) Load(f *field.Field) error {
	if r.loaded {
		return demo.ErrFieldLoaded
	}
	w, h := f.Size()

	if src := f.Source(); src != nil {
		img := rl.NewImageFromImage(src)
		r.imageTex = rl.LoadTextureFromImage(img)
		rl.UnloadImage(img)
	} else {
		img := rl.GenImageColor(w, h, rl.White)
		r.imageTex = rl.LoadTextureFromImage(img)
		rl.UnloadImage(img)
	}

	img := rl.GenImageColor(w, h, rl.Black)
	r.trailTex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(r.trailTex, rl.FilterBilinear)
	rl.SetTextureWrap(r.trailTex, rl.WrapClamp)

	r.trailPixels = make([]color.RGBA, w*h)
	r.trailGen = 0

	r.mesh = rl.GenMeshPlane(1, 1, 1, 1)
	r.material = rl.LoadMaterialDefault()
	r.material.Shader = r.shader
	rl.SetMaterialTexture(&r.material, rl.MapDiffuse, r.imageTex)
	rl.SetMaterialTexture(&r.material, rl.MapSpecular, r.trailTex)

	r.transforms = r.transforms[:0]
	for _, inst := range f.Instances() {
		r.transforms = append(r.transforms, instanceMatrix(inst))
	}

	r.worldScale = float32(1 / math.Max(float64(w), float64(h)))
	r.loaded = true
	return nil
}

// instanceMatrix packs per-instance attributes into the model matrix slots
// the vertex shader reads: column 3 offset, column 0 seed and index,
// column 1 tint.
func instanceMatrix(inst field.Instance) rl.Matrix {
	return rl.Matrix{
		M0:  inst.Scale,
		M1:  float32(inst.Index),
		M4:  inst.Color.R,
		M5:  inst.Color.G,
		M6:  inst.Color.B,
		M12: float32(inst.X),
		M13: float32(inst.Y),
		M14: float32(inst.Z),
		M15: 1,
	}
}

// Render draws fr. Must be called between BeginDrawing and EndDrawing.
func (r *FieldRenderer) Render(fr demo.Frame) error {
	rl.ClearBackground(rl.Black)
	if fr.Field == nil || !r.loaded {
		return nil
	}

	if fr.Trail.Generation != r.trailGen && len(fr.Trail.Pix) == len(r.trailPixels)*4 {
		pix := fr.Trail.Pix
		for i := range r.trailPixels {
			r.trailPixels[i] = color.RGBA{R: pix[i*4], G: pix[i*4+1], B: pix[i*4+2], A: pix[i*4+3]}
		}
		rl.UpdateTexture(r.trailTex, r.trailPixels)
		r.trailGen = fr.Trail.Generation
	}

	u := fr.Uniforms
	rl.SetShaderValue(r.shader, r.textureSizeLoc, u.TextureSize[:], rl.ShaderUniformVec2)
	rl.SetShaderValue(r.shader, r.timeLoc, []float32{u.Time}, rl.ShaderUniformFloat)
	rl.SetShaderValue(r.shader, r.randomLoc, []float32{u.Randomness}, rl.ShaderUniformFloat)
	rl.SetShaderValue(r.shader, r.pointSizeLoc, []float32{float32(fr.PointSize)}, rl.ShaderUniformFloat)
	rl.SetShaderValue(r.shader, r.worldScaleLoc, []float32{r.worldScale}, rl.ShaderUniformFloat)

	_, right, up, ok := fr.Camera.Basis()
	if !ok {
		right, up = r3.Vec{X: 1}, r3.Vec{Y: 1}
	}
	rl.SetShaderValue(r.shader, r.camRightLoc, vec3Slice(right), rl.ShaderUniformVec3)
	rl.SetShaderValue(r.shader, r.camUpLoc, vec3Slice(up), rl.ShaderUniformVec3)

	rl.BeginMode3D(toCamera3D(fr.Camera, float64(r.worldScale)))
	rl.DrawMeshInstanced(r.mesh, r.material, r.transforms, len(r.transforms))
	rl.EndMode3D()
	return nil
}

// toCamera3D converts a pose in pixel units to a raylib camera in world
// units. Scaling keeps the scene inside raylib's fixed clip distances.
func toCamera3D(p camera.Pose, scale float64) rl.Camera3D {
	return rl.Camera3D{
		Position:   vec3(r3.Scale(scale, p.Position)),
		Target:     vec3(r3.Scale(scale, p.Target)),
		Up:         vec3(p.Up),
		Fovy:       float32(p.FovY),
		Projection: rl.CameraPerspective,
	}
}

func vec3(v r3.Vec) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

func vec3Slice(v r3.Vec) []float32 {
	return []float32{float32(v.X), float32(v.Y), float32(v.Z)}
}

// Resize is a no-op: raylib derives the projection aspect from the
// current render size.
func (r *FieldRenderer) Resize(w, h int) {}

// TrailTexture exposes the uploaded trail texture for debug previews.
func (r *FieldRenderer) TrailTexture() (rl.Texture2D, bool) {
	return r.trailTex, r.loaded
}

// Unload releases GPU resources.
func (r *FieldRenderer) Unload() {
	if r.loaded {
		rl.UnloadTexture(r.imageTex)
		rl.UnloadTexture(r.trailTex)
		rl.UnloadMesh(&r.mesh)
		r.loaded = false
	}
	rl.UnloadShader(r.shader)
}
