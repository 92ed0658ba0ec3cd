package sensor

import "errors"

// Sample is a single scripted reading of both sensor lines.
type Sample struct {
	Top    bool
	Bottom bool
}

// FakeReader is a test double that returns scripted sensor samples.
// Once samples are exhausted, the last sample repeats.
type FakeReader struct {
	Samples   []Sample
	ReadError error
	Closed    bool

	index int
}

func NewFakeReader(samples []Sample) *FakeReader {
	return &FakeReader{Samples: samples}
}

func (f *FakeReader) Read() (bool, bool, error) {
	if f.ReadError != nil {
		return false, false, f.ReadError
	}
	if len(f.Samples) == 0 {
		return false, false, errors.New("no samples configured")
	}

	s := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	return s.Top, s.Bottom, nil
}

func (f *FakeReader) Close() error {
	f.Closed = true
	return nil
}
