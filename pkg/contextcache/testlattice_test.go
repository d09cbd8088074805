package contextcache

// intLattice is a minimal types.Lattice[int] for exercising the cache
// machinery: Top is a sentinel "undefined" value, Meet keeps the smaller of
// two defined values.
const undefined = -1

type intLattice struct{}

func (intLattice) Top() int       { return undefined }
func (intLattice) Copy(a int) int { return a }
func (intLattice) Meet(a, b int) int {
	if a == undefined {
		return b
	}
	if b == undefined {
		return a
	}
	if a < b {
		return a
	}
	return b
}
func (intLattice) Equal(a, b int) bool { return a == b }
