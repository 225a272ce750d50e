// Package export groups solids by dimension signature, deduplicates
// them and packages the result: one binary STL per unique design plus
// a manifest accounting for every instance, zipped for download.
//
// The dedup relies on geometry being a pure function of the structural
// parameters: two solids with equal signatures serialize to identical
// bytes, so exporting one representative per signature loses nothing.
package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/chrisknsmn/printbox/pkg/mesh"
	"github.com/chrisknsmn/printbox/pkg/stl"
)

// Signature is the rounded-integer dimension tuple used to detect
// structurally identical solids. Border radius is part of the key: two
// boxes with equal outer dimensions but different corner rounding are
// distinct designs.
type Signature struct {
	Width  int
	Height int
	Depth  int
	Radius int
}

// SignatureOf derives the signature of a solid.
func SignatureOf(s *mesh.Solid) Signature {
	return Signature{
		Width:  int(math.Round(s.Dimensions.Width)),
		Height: int(math.Round(s.Dimensions.Height)),
		Depth:  int(math.Round(s.Dimensions.Depth)),
		Radius: int(math.Round(s.BorderRadius)),
	}
}

func (sig Signature) String() string {
	if sig.Radius > 0 {
		return fmt.Sprintf("%dx%dx%d_r%d", sig.Width, sig.Height, sig.Depth, sig.Radius)
	}
	return fmt.Sprintf("%dx%dx%d", sig.Width, sig.Height, sig.Depth)
}

// FileName returns the STL entry name for a signature, following the
// box_{width}x{height}x{depth}_mm pattern.
func (sig Signature) FileName() string {
	if sig.Radius > 0 {
		return fmt.Sprintf("box_%dx%dx%d_mm_r%d.stl", sig.Width, sig.Height, sig.Depth, sig.Radius)
	}
	return fmt.Sprintf("box_%dx%dx%d_mm.stl", sig.Width, sig.Height, sig.Depth)
}

// Group is one unique design and every instance sharing it.
type Group struct {
	Signature Signature
	Solids    []*mesh.Solid
}

// Dedup buckets solids by signature, preserving first-appearance order
// so archives are deterministic for a given grid.
func Dedup(solids []*mesh.Solid) []Group {
	index := make(map[Signature]int)
	var groups []Group
	for _, s := range solids {
		sig := SignatureOf(s)
		i, ok := index[sig]
		if !ok {
			i = len(groups)
			index[sig] = i
			groups = append(groups, Group{Signature: sig})
		}
		groups[i].Solids = append(groups[i].Solids, s)
	}
	return groups
}

// Encoder serializes one solid to STL bytes. BuildArchive falls back
// to the binary encoder when given a nil Encoder.
type Encoder func(*mesh.Solid) []byte

// ArchiveName returns the download name for a batch of uniqueCount
// designs, stamped with the given date.
func ArchiveName(uniqueCount int, now time.Time) string {
	return fmt.Sprintf("printbox_export_%d_designs_%s.zip", uniqueCount, now.Format("2006-01-02"))
}

// BuildArchive writes one STL per unique signature plus a manifest
// into a ZIP archive and returns its bytes. The representative of each
// group is its first solid. A nil encoder defaults to binary STL.
func BuildArchive(groups []Group, enc Encoder) ([]byte, error) {
	if enc == nil {
		enc = stl.Encode
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, g := range groups {
		w, err := zw.Create(g.Signature.FileName())
		if err != nil {
			return nil, fmt.Errorf("export: create %s: %w", g.Signature.FileName(), err)
		}
		if _, err := w.Write(enc(g.Solids[0])); err != nil {
			return nil, fmt.Errorf("export: write %s: %w", g.Signature.FileName(), err)
		}
	}

	w, err := zw.Create("manifest.txt")
	if err != nil {
		return nil, fmt.Errorf("export: create manifest: %w", err)
	}
	if _, err := w.Write(manifest(groups)); err != nil {
		return nil, fmt.Errorf("export: write manifest: %w", err)
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("export: close archive: %w", err)
	}
	return buf.Bytes(), nil
}

// manifest renders the text manifest: per-signature file and count,
// then every instance with its ID and grid cell.
func manifest(groups []Group) []byte {
	var b bytes.Buffer
	total := 0
	for _, g := range groups {
		total += len(g.Solids)
	}

	fmt.Fprintf(&b, "printbox export manifest\n")
	fmt.Fprintf(&b, "unique designs: %d\n", len(groups))
	fmt.Fprintf(&b, "total boxes: %d\n\n", total)

	for _, g := range groups {
		fmt.Fprintf(&b, "%s (%d instance(s))\n", g.Signature.FileName(), len(g.Solids))
		for _, s := range g.Solids {
			fmt.Fprintf(&b, "  %s cell=(%d,%d,%d) id=%s\n",
				s.Name, s.Cell[0], s.Cell[1], s.Cell[2], s.ID)
		}
		b.WriteByte('\n')
	}
	return b.Bytes()
}
