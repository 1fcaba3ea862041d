package render

import "io"

// RenderAll reads triangles from r until io.EOF and returns them.
// Like io.ReadAll, reaching io.EOF is not reported as an error.
func RenderAll(r Renderer) ([]Triangle3, error) {
	model := make([]Triangle3, 0, 1<<12)
	buf := make([]Triangle3, 1024)
	for {
		n, err := r.ReadTriangles(buf)
		model = append(model, buf[:n]...)
		switch {
		case err == io.EOF:
			return model, nil
		case err != nil:
			return model, err
		}
	}
}

// triangle3Buffer is a FIFO of triangles waiting to be read.
type triangle3Buffer struct {
	buf []Triangle3
}

func (b *triangle3Buffer) Read(dst []Triangle3) int {
	n := copy(dst, b.buf)
	b.buf = b.buf[n:]
	return n
}

func (b *triangle3Buffer) Write(src []Triangle3) int {
	b.buf = append(b.buf, src...)
	return len(src)
}

func (b *triangle3Buffer) Len() int { return len(b.buf) }
