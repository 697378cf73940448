package transform

import (
	"github.com/junsooki/WinLens/internal/frame"
)

const (
	claheClipLimit = 2.0
	claheTiles     = 8
)

func equalize(src *frame.Frame) *frame.Frame {
	return equalizeHist(luma(src)).expand()
}

func clahe(src *frame.Frame) *frame.Frame {
	return claheApply(luma(src), claheClipLimit, claheTiles, claheTiles).expand()
}

func equalizeHist(p plane) plane {
	var hist [256]int
	for _, v := range p.pix {
		hist[v]++
	}
	total := len(p.pix)

	first := 0
	for first < 255 && hist[first] == 0 {
		first++
	}

	out := newPlane(p.width, p.height)
	if hist[first] == total {
		for i := range out.pix {
			out.pix[i] = uint8(first)
		}
		return out
	}

	var lut [256]uint8
	scale := 255.0 / float64(total-hist[first])
	sum := 0
	for v := first + 1; v < 256; v++ {
		sum += hist[v]
		lut[v] = saturate(float64(sum) * scale)
	}
	for i, v := range p.pix {
		out.pix[i] = lut[v]
	}
	return out
}

// claheApply equalizes every tile of a tilesX x tilesY grid with a clipped
// histogram and blends the four nearest tile mappings bilinearly per pixel.
func claheApply(p plane, clipLimit float64, tilesX, tilesY int) plane {
	w, h := p.width, p.height
	tileW := (w + tilesX - 1) / tilesX
	tileH := (h + tilesY - 1) / tilesY

	luts := make([][256]uint8, tilesX*tilesY)
	for ty := 0; ty < tilesY; ty++ {
		for tx := 0; tx < tilesX; tx++ {
			x0, y0 := tx*tileW, ty*tileH
			x1, y1 := min(x0+tileW, w), min(y0+tileH, h)
			luts[ty*tilesX+tx] = tileLUT(p, x0, y0, x1, y1, clipLimit)
		}
	}

	out := newPlane(w, h)
	invW, invH := 1/float64(tileW), 1/float64(tileH)
	for y := 0; y < h; y++ {
		tyf := float64(y)*invH - 0.5
		ty1 := floor(tyf)
		ya := tyf - float64(ty1)
		ty2 := min(ty1+1, tilesY-1)
		ty1 = max(ty1, 0)
		for x := 0; x < w; x++ {
			txf := float64(x)*invW - 0.5
			tx1 := floor(txf)
			xa := txf - float64(tx1)
			tx2 := min(tx1+1, tilesX-1)
			tx1 = max(tx1, 0)

			v := p.at(x, y)
			top := float64(luts[ty1*tilesX+tx1][v])*(1-xa) + float64(luts[ty1*tilesX+tx2][v])*xa
			bottom := float64(luts[ty2*tilesX+tx1][v])*(1-xa) + float64(luts[ty2*tilesX+tx2][v])*xa
			out.pix[y*w+x] = saturate(top*(1-ya) + bottom*ya)
		}
	}
	return out
}

func tileLUT(p plane, x0, y0, x1, y1 int, clipLimit float64) [256]uint8 {
	var lut [256]uint8
	area := (x1 - x0) * (y1 - y0)
	if area <= 0 {
		return lut
	}

	var hist [256]int
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			hist[p.at(x, y)]++
		}
	}

	limit := max(int(clipLimit*float64(area)/256), 1)
	clipped := 0
	for i := range hist {
		if hist[i] > limit {
			clipped += hist[i] - limit
			hist[i] = limit
		}
	}
	batch := clipped / 256
	residual := clipped - batch*256
	for i := range hist {
		hist[i] += batch
	}
	if residual > 0 {
		step := max(256/residual, 1)
		for i := 0; i < 256 && residual > 0; i += step {
			hist[i]++
			residual--
		}
	}

	scale := 255.0 / float64(area)
	sum := 0
	for i := range hist {
		sum += hist[i]
		lut[i] = saturate(float64(sum) * scale)
	}
	return lut
}

func floor(v float64) int {
	i := int(v)
	if float64(i) > v {
		i--
	}
	return i
}
