package geometry

// ColorBands paints each vertex by its height above base. Heights below low
// get below, heights above high get above, everything else gets between.
// Bands are hard edges, no blending.
func ColorBands(m *Mesh, base, low, high float32, below, between, above [3]float32) *Mesh {
	for i := range m.Vertices {
		h := m.Vertices[i].Position[1] - base
		switch {
		case h < low:
			m.Vertices[i].Color = below
		case h > high:
			m.Vertices[i].Color = above
		default:
			m.Vertices[i].Color = between
		}
	}
	return m
}
