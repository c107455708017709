package mesh

// UniformCartesian holds the cell geometry of one block. Xmin is the lower face
// of the first interior cell, Istart that cell's index.
type UniformCartesian struct {
	Xmin   [3]float64
	Dx     [3]float64
	Istart [3]int
}

func NewUniformCartesian(shape IndexShape, xmin, xmax [3]float64) (c *UniformCartesian) {
	c = &UniformCartesian{Xmin: xmin}
	for dir := 0; dir < 3; dir++ {
		c.Dx[dir] = (xmax[dir] - xmin[dir]) / float64(shape.Nx[dir])
		c.Istart[dir] = shape.bounds(dir, Interior).S
	}
	return
}

// Xc is the cell centre coordinate of index idx along dir, ghost cells included.
func (c *UniformCartesian) Xc(dir, idx int) float64 {
	return c.Xmin[dir] + (float64(idx-c.Istart[dir])+0.5)*c.Dx[dir]
}

func (c *UniformCartesian) Xc1(i int) float64 { return c.Xc(X1DIR, i) }
func (c *UniformCartesian) Xc2(j int) float64 { return c.Xc(X2DIR, j) }
func (c *UniformCartesian) Xc3(k int) float64 { return c.Xc(X3DIR, k) }

func (c *UniformCartesian) CellVolume() float64 {
	return c.Dx[0] * c.Dx[1] * c.Dx[2]
}
