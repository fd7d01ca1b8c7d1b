package lut

// Simplex names one of the six tetrahedra of the unit cube. Each spans the
// cube diagonal from corner 000 to 111 and is named after the order of the
// offsets it covers, largest first.
type Simplex uint8

const (
	SimplexRGB Simplex = iota // r > g > b
	SimplexRBG                // r > b >= g
	SimplexBRG                // b >= r > g
	SimplexBGR                // b > g >= r
	SimplexGBR                // g >= b > r
	SimplexGRB                // g >= r >= b
)

const (
	axisR = iota
	axisG
	axisB
)

var axisBits = [3]int{axisR: bitR, axisG: bitG, axisB: bitB}

// simplexAxes lists the axes of each simplex from the largest offset to the
// smallest. The walk 000 -> +first -> +second -> 111 gives the four corners.
var simplexAxes = [...][3]int{
	SimplexRGB: {axisR, axisG, axisB},
	SimplexRBG: {axisR, axisB, axisG},
	SimplexBRG: {axisB, axisR, axisG},
	SimplexBGR: {axisB, axisG, axisR},
	SimplexGBR: {axisG, axisB, axisR},
	SimplexGRB: {axisG, axisR, axisB},
}

var simplexNames = [...]string{
	SimplexRGB: "rgb",
	SimplexRBG: "rbg",
	SimplexBRG: "brg",
	SimplexBGR: "bgr",
	SimplexGBR: "gbr",
	SimplexGRB: "grb",
}

func (s Simplex) String() string {
	if int(s) < len(simplexNames) {
		return simplexNames[s]
	}
	return "invalid"
}

// Corners returns the corner bits of the simplex in weight order.
func (s Simplex) Corners() [4]int {
	ax := simplexAxes[s]
	first := axisBits[ax[0]]
	return [4]int{0, first, first | axisBits[ax[1]], bitR | bitG | bitB}
}

// SelectSimplex picks the tetrahedron containing the offsets. The checks run in
// order and the first match wins, which settles ties.
func SelectSimplex[T Float](rd, gd, bd T) Simplex {
	switch {
	case rd > gd && gd > bd:
		return SimplexRGB
	case rd > gd && rd > bd:
		return SimplexRBG
	case rd > gd && gd <= bd && rd <= bd:
		return SimplexBRG
	case rd <= gd && bd > gd:
		return SimplexBGR
	case rd <= gd && bd > rd:
		return SimplexGBR
	default:
		return SimplexGRB
	}
}

// SimplexWeights returns the barycentric weights of the simplex corners, in
// the order given by Corners.
func SimplexWeights[T Float](s Simplex, rd, gd, bd T) [4]T {
	d := [3]T{axisR: rd, axisG: gd, axisB: bd}
	ax := simplexAxes[s]
	x, y, z := d[ax[0]], d[ax[1]], d[ax[2]]
	return [4]T{1 - x, x - y, y - z, z}
}

func tetrahedralPixel[T Float](grid *Grid[T], r, g, b T) (T, T, T) {
	c := forwardCell(r, g, b, grid.Dim)
	s := SelectSimplex(c.r.d, c.g.d, c.b.d)
	w := SimplexWeights(s, c.r.d, c.g.d, c.b.d)
	shift := grid.Shift()

	var or, og, ob T
	for k, corner := range s.Corners() {
		i := c.offset(grid.Dim, corner)
		or += w[k] * grid.Data[i]
		og += w[k] * grid.Data[i+shift]
		ob += w[k] * grid.Data[i+2*shift]
	}
	return or, og, ob
}
