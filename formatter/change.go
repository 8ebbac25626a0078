package formatter

import "bytes"

// changeDetector compares the consumed input with the produced output byte by byte while
// both are streamed. At any time only one side can be ahead of the other, so only the not
// yet compared bytes of that side are kept in pending, starting at off.
type changeDetector struct {
	pending  []byte
	off      int
	outAhead bool // pending holds output bytes
	differs  bool
	bytesIn  int64
	bytesOut int64
}

func (d *changeDetector) observeInput(p []byte) {
	d.bytesIn += int64(len(p))
	d.observe(p, false)
}

func (d *changeDetector) observeOutput(p []byte) {
	d.bytesOut += int64(len(p))
	d.observe(p, true)
}

func (d *changeDetector) observe(p []byte, output bool) {
	if d.differs || len(p) == 0 {
		return
	}

	if d.off == len(d.pending) {
		d.hold(p, output)
		return
	}

	if output == d.outAhead {
		d.compact()
		d.pending = append(d.pending, p...)

		return
	}

	tail := d.pending[d.off:]
	n := min(len(tail), len(p))
	if !bytes.Equal(tail[:n], p[:n]) {
		d.differs = true
		d.pending = nil
		d.off = 0

		return
	}
	d.off += n

	if n < len(p) {
		// the other side is ahead now
		d.hold(p[n:], output)
	}
}

// hold replaces the pending bytes with p.
func (d *changeDetector) hold(p []byte, output bool) {
	d.pending = append(d.pending[:0], p...)
	d.off = 0
	d.outAhead = output
}

// compact drops the compared prefix once it takes half of pending.
func (d *changeDetector) compact() {
	if d.off == 0 || d.off < len(d.pending)/2 {
		return
	}

	n := copy(d.pending, d.pending[d.off:])
	d.pending = d.pending[:n]
	d.off = 0
}

// changed reports whether output and input differ. It's only meaningful once the input
// has been read to the end and all output has been observed.
func (d *changeDetector) changed() bool {
	return d.differs || d.off != len(d.pending)
}

// inputTee feeds every byte read from the source into the detector.
type inputTee struct {
	d *changeDetector
}

func (t inputTee) Write(p []byte) (int, error) {
	t.d.observeInput(p)
	return len(p), nil
}
