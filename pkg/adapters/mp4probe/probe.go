// Package mp4probe summarizes the box structure of MP4 streams, primarily
// to confirm that encoder output is fragmented and playable incrementally.
package mp4probe

import (
	"fmt"
	"io"

	"github.com/Eyevinn/mp4ff/mp4"
)

// Summary describes the top-level structure of an MP4 stream.
type Summary struct {
	MajorBrand    string
	Fragmented    bool
	FragmentCount int
	TrackCount    int
}

// String renders the summary on one line.
func (s Summary) String() string {
	return fmt.Sprintf("brand=%s fragmented=%t fragments=%d tracks=%d",
		s.MajorBrand, s.Fragmented, s.FragmentCount, s.TrackCount)
}

// Probe parses the stream and reports its container structure.
// The whole stream is consumed.
func Probe(r io.Reader) (Summary, error) {
	var summary Summary

	file, err := mp4.DecodeFile(r)
	if err != nil {
		return summary, fmt.Errorf("decode mp4: %w", err)
	}

	summary.Fragmented = file.IsFragmented()
	if file.Ftyp != nil {
		summary.MajorBrand = file.Ftyp.MajorBrand()
	}

	moov := file.Moov
	if file.Init != nil && file.Init.Moov != nil {
		moov = file.Init.Moov
	}
	if moov != nil {
		summary.TrackCount = len(moov.Traks)
	}

	for _, seg := range file.Segments {
		summary.FragmentCount += len(seg.Fragments)
	}

	return summary, nil
}
