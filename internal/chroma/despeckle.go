package chroma

import "image"

// Despeckle zeroes small disconnected alpha clusters left behind by
// keying (stray background pixels that survived inside shadows or
// reflections). Returns img untouched when nothing qualifies, otherwise
// a cleaned copy.
func Despeckle(img *image.NRGBA, p DespeckleParams) *image.NRGBA {
	if p.MinRatio <= 0 {
		return img
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	stride := img.Stride

	opaque := make([]bool, w*h)
	total := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if img.Pix[y*stride+x*4+3] > 0 {
				opaque[y*w+x] = true
				total++
			}
		}
	}
	if total == 0 {
		return img
	}

	// Label 8-connected components with a BFS flood fill.
	labels := make([]int, w*h)
	for i := range labels {
		labels[i] = -1
	}
	var sizes []int

	dx := [8]int{-1, 0, 1, -1, 1, -1, 0, 1}
	dy := [8]int{-1, -1, -1, 0, 0, 1, 1, 1}
	queue := make([]int, 0, 1024)

	for start := 0; start < w*h; start++ {
		if !opaque[start] || labels[start] >= 0 {
			continue
		}
		id := len(sizes)
		queue = queue[:0]
		queue = append(queue, start)
		labels[start] = id
		size := 0

		for len(queue) > 0 {
			curr := queue[0]
			queue = queue[1:]
			size++

			cy, cx := curr/w, curr%w
			for d := 0; d < 8; d++ {
				nx, ny := cx+dx[d], cy+dy[d]
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				ni := ny*w + nx
				if opaque[ni] && labels[ni] < 0 {
					labels[ni] = id
					queue = append(queue, ni)
				}
			}
		}
		sizes = append(sizes, size)
	}

	if len(sizes) <= 1 {
		return img
	}

	res := p.Resolution
	if res <= 0 {
		res = 1
	}
	minSize := int(float64(total) * p.MinRatio)
	if floor := int(float64(p.MinPixels) * res * res); floor > minSize {
		minSize = floor
	}

	out := image.NewNRGBA(b)
	copy(out.Pix, img.Pix)
	removed := false
	for idx, label := range labels {
		if label >= 0 && sizes[label] < minSize {
			i := (idx/w)*stride + (idx%w)*4
			out.Pix[i] = 0
			out.Pix[i+1] = 0
			out.Pix[i+2] = 0
			out.Pix[i+3] = 0
			removed = true
		}
	}
	if !removed {
		return img
	}
	return out
}
