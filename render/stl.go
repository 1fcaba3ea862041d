package render

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
)

const (
	stlHeaderSize   = 84
	stlTriangleSize = 50
)

// CreateSTL writes the triangles of a Renderer to a binary STL file at path.
// Triangles are streamed to the file as they are read.
func CreateSTL(path string, r Renderer) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	// Triangle count is not known until the end.
	_, err = file.Seek(stlHeaderSize, io.SeekStart)
	if err != nil {
		return err
	}
	rd := &stlReader{r: r}
	n, err := io.CopyBuffer(file, rd, make([]byte, stlTriangleSize*trianglesInBuffer))
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.New("renderer produced no triangles")
	}
	nt := n / stlTriangleSize
	if nt > math.MaxUint32 {
		return errors.New("amount of triangles in model exceeds STL design limits")
	}
	var buf [stlHeaderSize]byte
	stlHeader{Count: uint32(nt)}.put(buf[:])
	if _, err = file.WriteAt(buf[:], 0); err != nil {
		return err
	}
	return file.Close()
}

// WriteSTL writes model triangles to a writer in binary STL file format.
func WriteSTL(w io.Writer, model []Triangle3) error {
	if len(model) == 0 {
		return errors.New("empty triangle slice")
	}
	nt := int64(len(model)) // int64 cast so that next line works correctly on 32bit machines.
	if nt > math.MaxUint32 {
		return errors.New("amount of triangles in model exceeds STL design limits")
	}
	var buf [stlHeaderSize]byte
	stlHeader{Count: uint32(nt)}.put(buf[:])
	if _, err := w.Write(buf[:]); err != nil {
		return err
	}
	for _, triangle := range model {
		stlTriangleFrom(triangle.toMS3()).put(buf[:])
		n, err := w.Write(buf[:stlTriangleSize])
		if err != nil {
			return err
		} else if n != stlTriangleSize {
			return io.ErrShortWrite
		}
	}
	return nil
}

// ReadSTL reads a binary STL model. Triangles whose stored normal disagrees
// with their winding are kept and reported with a non-nil error.
func ReadSTL(r io.Reader) (output []Triangle3, readErr error) {
	var header stlHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, errors.New("encountered EOF while reading STL header")
		}
		return nil, errors.New("STL header read failed: " + err.Error())
	}
	if header.Count == 0 {
		return nil, errors.New("STL header indicates 0 triangles present")
	}
	var (
		buf            [stlTriangleSize]byte
		d              stlTriangle
		i              int
		normMismatches int
	)
	defer func() {
		if readErr != nil && !errors.Is(readErr, errCalculatedNormalMismatch) {
			readErr = fmt.Errorf("%d/%d STL triangles read: %w", i+1, header.Count, readErr)
		}
	}()
	prealloc := header.Count
	if prealloc > 1<<20 {
		prealloc = 1 << 20 // Do not trust header with large allocations.
	}
	output = make([]Triangle3, 0, prealloc)
	for i = 0; i < int(header.Count); i++ {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, err
		}
		d.get(buf[:])
		if err := d.validate(); err != nil {
			if !errors.Is(err, errCalculatedNormalMismatch) {
				return nil, err
			}
			normMismatches++
			if normMismatches > 10_000 {
				// This may be valid output, so we return the triangles.
				return output, fmt.Errorf("got too many normal vector mismatches (%d)", normMismatches)
			}
			readErr = err
		}
		output = append(output, triangle3(d.triangle()))
	}
	return output, readErr
}

const trianglesInBuffer = 1 << 10

// stlReader encodes the triangles of a Renderer as STL triangle records.
type stlReader struct {
	r   Renderer
	buf [trianglesInBuffer]Triangle3
}

func (w *stlReader) Read(b []byte) (int, error) {
	ntMax := len(b) / stlTriangleSize
	if ntMax > len(w.buf) {
		ntMax = len(w.buf)
	}
	if ntMax == 0 {
		return 0, errors.New("stlReader requires at least 50 bytes to write a single triangle")
	}
	nt, err := w.r.ReadTriangles(w.buf[:ntMax])
	if nt > ntMax {
		panic("bug: ReadTriangles read more triangles than available in buffer")
	}
	for i, triangle := range w.buf[:nt] {
		stlTriangleFrom(triangle.toMS3()).put(b[i*stlTriangleSize:])
	}
	return nt * stlTriangleSize, err
}

// stlHeader is the 80 byte comment followed by the triangle count.
type stlHeader struct {
	_     [80]uint8
	Count uint32
}

func (h stlHeader) put(b []byte) {
	_ = b[stlHeaderSize-1]
	for i := range b[:80] {
		b[i] = 0
	}
	binary.LittleEndian.PutUint32(b[80:], h.Count)
}

// stlTriangle is a binary STL facet: the normal followed by the three
// vertices. The trailing attribute word is always written as zero.
type stlTriangle [4]ms3.Vec

func stlTriangleFrom(t ms3.Triangle) stlTriangle {
	return stlTriangle{ms3.Unit(t.Normal()), t[0], t[1], t[2]}
}

func (t stlTriangle) put(b []byte) {
	_ = b[stlTriangleSize-1]
	for i, v := range t {
		off := 12 * i
		binary.LittleEndian.PutUint32(b[off:], math.Float32bits(v.X))
		binary.LittleEndian.PutUint32(b[off+4:], math.Float32bits(v.Y))
		binary.LittleEndian.PutUint32(b[off+8:], math.Float32bits(v.Z))
	}
	b[48], b[49] = 0, 0
}

func (t *stlTriangle) get(b []byte) {
	_ = b[stlTriangleSize-1]
	for i := range t {
		off := 12 * i
		t[i] = ms3.Vec{
			X: math.Float32frombits(binary.LittleEndian.Uint32(b[off:])),
			Y: math.Float32frombits(binary.LittleEndian.Uint32(b[off+4:])),
			Z: math.Float32frombits(binary.LittleEndian.Uint32(b[off+8:])),
		}
	}
}

func (t stlTriangle) triangle() ms3.Triangle {
	return ms3.Triangle{t[1], t[2], t[3]}
}

func badVec(v ms3.Vec) bool {
	return math32.IsNaN(v.X) || math32.IsInf(v.X, 0) ||
		math32.IsNaN(v.Y) || math32.IsInf(v.Y, 0) ||
		math32.IsNaN(v.Z) || math32.IsInf(v.Z, 0)
}

var errCalculatedNormalMismatch = errors.New("triangle normal not approximately equal to normal calculated from vertices")

// validate rejects non-finite and degenerate facets. A stored normal that
// disagrees with the winding, up to sign, yields errCalculatedNormalMismatch.
func (t stlTriangle) validate() error {
	const (
		degenerateTol = 1e-12
		normalTol     = 5e-2
	)
	if badVec(t[0]) {
		return errors.New("inf/NaN STL triangle normal")
	}
	if badVec(t[1]) || badVec(t[2]) || badVec(t[3]) {
		return errors.New("inf/NaN STL triangle vertex")
	}
	tri := t.triangle()
	if tri.IsDegenerate(degenerateTol) {
		return errors.New("triangle is degenerate")
	}
	// Scaled up so small facets keep precision in the cross product.
	for i := range tri {
		tri[i] = ms3.Scale(10, tri[i])
	}
	n := ms3.Unit(tri.Normal())
	if !ms3.EqualElem(n, t[0], normalTol) && !ms3.EqualElem(ms3.Scale(-1, n), t[0], normalTol) {
		return errCalculatedNormalMismatch
	}
	return nil
}
