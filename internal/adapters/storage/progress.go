package storage

import "io"

// progressStep is the minimum advance, in percentage points, between two
// consecutive progress callbacks. Bounds message-edit traffic upstream.
const progressStep = 5.0

// progressReader counts bytes flowing through an io.Reader and reports
// percentage progress. Callbacks are throttled to increments of at least
// progressStep; the terminal 100 is always delivered.
type progressReader struct {
	r            io.Reader
	total        int64
	transferred  int64
	lastReported float64
	onProgress   ProgressFunc
}

func newProgressReader(r io.Reader, total int64, onProgress ProgressFunc) *progressReader {
	return &progressReader{r: r, total: total, lastReported: -progressStep, onProgress: onProgress}
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	if n > 0 {
		p.transferred += int64(n)
		p.report()
	}
	return n, err
}

func (p *progressReader) report() {
	if p.onProgress == nil || p.total <= 0 {
		return
	}

	percent := float64(p.transferred) / float64(p.total) * 100
	if percent > 100 {
		percent = 100
	}
	if percent-p.lastReported >= progressStep || percent >= 100 && p.lastReported < 100 {
		p.lastReported = percent
		p.onProgress(percent)
	}
}
