// Package sensor provides raw motion sensor sampling with hardware abstraction.
// The real implementation uses the Linux GPIO character device; the fake
// implementation plays back scripted samples for tests.
package sensor

// Reader samples the two motion sensor lines.
type Reader interface {
	// Read returns the raw (undebounced) levels of the top and bottom sensors.
	Read() (top, bottom bool, err error)

	// Close releases GPIO resources.
	Close() error
}
