// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package parallel

// Rows splits [0, height) into horizontal bands of at least minRows rows,
// one per worker at most, and calls fn for each band. Short images and a
// nil pool run fn once on the calling goroutine.
func Rows(p *WorkerPool, height, minRows int, fn func(y0, y1 int)) {
	if height <= 0 {
		return
	}
	minRows = max(minRows, 1)
	if p == nil || height < 2*minRows || p.Workers() < 2 {
		fn(0, height)
		return
	}

	bands := min(p.Workers(), height/minRows)
	size := (height + bands - 1) / bands
	work := make([]func(), 0, bands)
	for y0 := 0; y0 < height; y0 += size {
		y1 := min(y0+size, height)
		work = append(work, func() { fn(y0, y1) })
	}
	p.ExecuteAll(work)
}
