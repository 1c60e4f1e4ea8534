// =======================
// vash/rgb.go
// =======================

package vash

// RGB is the root of every tree. Its children are the red, green and blue
// channels.
type RGB struct{ branch }

func NewRGB(r, g, b Node) *RGB {
	return &RGB{branch: branch{kids: []Node{r, g, b}}}
}

func (*RGB) Op() Operation   { return OpRGB }
func (*RGB) Values() []Value { return nil }
func (n *RGB) Clone() Node   { return &RGB{branch: n.cloneKids()} }

// Compute is not meaningful for the root; use Render.
func (n *RGB) Compute(ip *ImageParameters) *Plane {
	panic("vash: Compute called on the RGB root; use Render")
}

// Render evaluates the three channels and packs them B,G,R per pixel. The
// first image row is the last coordinate row, so logical Y grows downwards
// in the output.
func (n *RGB) Render(ip *ImageParameters) []byte {
	R := n.kids[0].Compute(ip)
	G := n.kids[1].Compute(ip)
	B := n.kids[2].Compute(ip)

	pix := make([]byte, ip.w*ip.h*3)
	idx := 0
	for y := ip.h - 1; y >= 0; y-- {
		for x := 0; x < ip.w; x++ {
			pix[idx] = channelByte(B.At(x, y))
			pix[idx+1] = channelByte(G.At(x, y))
			pix[idx+2] = channelByte(R.At(x, y))
			idx += 3
		}
	}

	ip.PutPlane(R)
	ip.PutPlane(G)
	ip.PutPlane(B)
	return pix
}
