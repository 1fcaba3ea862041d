// Command frontmesh triangulates a named implicit surface with the
// marching front method and writes the mesh to a binary STL file.
//
// Usage:
//
//	frontmesh -preset torus -o torus.stl -png torus.png
//	frontmesh -preset sphere -morph "tooth surface" -t 0.5 -o blend.stl
//	frontmesh -list
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/soypat/frontmesh"
	"github.com/soypat/frontmesh/polygonize"
	"github.com/soypat/frontmesh/render"
	"gonum.org/v1/gonum/spatial/r3"
)

func main() {
	def := polygonize.DefaultConfig()
	var (
		presetName = flag.String("preset", "Sphere", "name of the implicit surface to triangulate. See -list")
		morphName  = flag.String("morph", "", "name of a second surface to blend the preset with")
		blend      = flag.Float64("t", 0.5, "blend factor between -preset (0) and -morph (1)")
		output     = flag.String("o", "frontmesh.stl", "output STL file. Empty to skip")
		pngOutput  = flag.String("png", "", "output PNG preview file. Empty to skip")
		radius     = flag.Float64("radius", def.Radius, "radius of the bounding sphere")
		step       = flag.Float64("step", def.StepLength, "propagation step, approximately the triangle edge length")
		iters      = flag.Int("iters", def.MaxIterations, "maximum number of advancing steps")
		cx         = flag.Float64("cx", 0, "bounding sphere center x coordinate")
		cy         = flag.Float64("cy", 0, "bounding sphere center y coordinate")
		cz         = flag.Float64("cz", 0, "bounding sphere center z coordinate")
		list       = flag.Bool("list", false, "list available surfaces and exit")
	)
	flag.Parse()
	log.SetFlags(0)
	if *list {
		for _, p := range frontmesh.Presets {
			fmt.Println(p.Name)
		}
		return
	}
	field, err := buildField(*presetName, *morphName, *blend)
	if err != nil {
		log.Fatal(err)
	}
	cfg := polygonize.Config{
		Center:        r3.Vec{X: *cx, Y: *cy, Z: *cz},
		Radius:        *radius,
		StepLength:    *step,
		MaxIterations: *iters,
	}
	renderer, err := render.NewFrontRenderer(field, cfg)
	if err != nil {
		log.Fatal("bad configuration: ", err)
	}
	start := time.Now()
	mesh := renderer.Mesh()
	stats := renderer.Stats()
	log.Printf("triangulated in %s: %d vertices, %d triangles, %d iterations (splits=%d merges=%d resumed=%d)",
		time.Since(start).Round(time.Millisecond), stats.Vertices, stats.Triangles,
		stats.Iterations, stats.Splits, stats.Merges, stats.Resumed)
	if stats.Capped {
		log.Printf("iteration limit %d reached, mesh may be incomplete", *iters)
	}
	if len(mesh.Faces) == 0 {
		log.Fatal("no triangles generated: is the surface inside the bounding sphere?")
	}
	if boundary, _, non := mesh.EdgeUse(); boundary+non > 0 {
		log.Printf("%d boundary and %d non manifold edges", boundary, non)
	}

	if *output != "" {
		err = render.CreateSTL(*output, renderer)
		if err != nil {
			log.Fatal("writing STL: ", err)
		}
		log.Println("wrote", *output)
	}
	if *pngOutput != "" {
		err = writePNG(*pngOutput, mesh)
		if err != nil {
			log.Fatal("writing PNG: ", err)
		}
		log.Println("wrote", *pngOutput)
	}
}

func buildField(preset, morph string, t float64) (frontmesh.Field, error) {
	p, ok := frontmesh.FindPreset(preset)
	if !ok {
		return nil, fmt.Errorf("unknown surface %q", preset)
	}
	if morph == "" {
		return p.Field, nil
	}
	m, ok := frontmesh.FindPreset(morph)
	if !ok {
		return nil, fmt.Errorf("unknown surface %q", morph)
	}
	if t < 0 || t > 1 {
		return nil, fmt.Errorf("blend factor %g outside [0, 1]", t)
	}
	return frontmesh.Lerp(p.Field, m.Field, t), nil
}

func writePNG(path string, mesh *render.Mesh) error {
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	defer fp.Close()
	mesh.ComputeNormals()
	err = render.WritePNG(fp, mesh, render.DefaultView())
	if err != nil {
		return err
	}
	return fp.Close()
}
