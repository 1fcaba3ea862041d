package render

import (
	"errors"
	"image/png"
	"io"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"gonum.org/v1/gonum/spatial/r3"
)

// View configures the camera of a PNG preview. The mesh is first fit in a
// bi-unit cube centered at the origin so positions are relative to that cube.
type View struct {
	Up     r3.Vec
	Eye    r3.Vec
	LookAt r3.Vec
	// Near and Far clipping planes.
	Near, Far float64
	// Width and Height of the output image in pixels.
	Width, Height int
	// Supersampling factor for antialiasing. Zero means no supersampling.
	Scale int
}

// DefaultView returns a view of the bi-unit cube from above one of its corners.
func DefaultView() View {
	return View{
		Up:     r3.Vec{Z: 1},
		Eye:    r3.Vec{X: 3, Y: 3, Z: 3},
		Near:   1,
		Far:    10,
		Width:  800,
		Height: 600,
		Scale:  2,
	}
}

// WritePNG renders a phong shaded preview of the mesh and writes it
// to w as a PNG image. The mesh's vertex normals are used for shading.
func WritePNG(w io.Writer, m *Mesh, view View) error {
	if len(m.Faces) == 0 {
		return errors.New("empty mesh")
	}
	if view.Width <= 0 || view.Height <= 0 {
		return errors.New("image dimensions must be positive")
	}
	scale := view.Scale
	if scale < 1 {
		scale = 1
	}
	tris := make([]*fauxgl.Triangle, len(m.Faces))
	for i, f := range m.Faces {
		tris[i] = fauxgl.NewTriangle(
			fauxglVertex(m, f[0]),
			fauxglVertex(m, f[1]),
			fauxglVertex(m, f[2]),
		)
	}
	mesh := fauxgl.NewTriangleMesh(tris)
	const fovy = 30 // vertical field of view in degrees
	var (
		eye    = fauxglVec(view.Eye)
		center = fauxglVec(view.LookAt)
		up     = fauxglVec(view.Up)
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize() // light direction
		color  = fauxgl.HexColor("#468966")           // object color
	)
	// fit mesh in a bi-unit cube centered at the origin
	mesh.BiUnitCube()
	context := fauxgl.NewContext(view.Width*scale, view.Height*scale)
	context.ClearColorBufferWith(fauxgl.HexColor("#FFF8E3"))
	aspect := float64(view.Width) / float64(view.Height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, view.Near, view.Far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = color
	context.Shader = shader
	context.DrawMesh(mesh)
	// downsample image for antialiasing
	image := context.Image()
	image = resize.Resize(uint(view.Width), uint(view.Height), image, resize.Bilinear)
	return png.Encode(w, image)
}

func fauxglVertex(m *Mesh, i int) fauxgl.Vertex {
	return fauxgl.Vertex{
		Position: fauxglVec(m.Vertices[i]),
		Normal:   fauxglVec(m.Normals[i]),
	}
}

func fauxglVec(v r3.Vec) fauxgl.Vector {
	return fauxgl.V(v.X, v.Y, v.Z)
}
