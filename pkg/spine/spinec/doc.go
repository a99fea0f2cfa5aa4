// Package spinec binds the spine-c 3.8 runtime through cgo.
//
// It is compiled only with the spinec build tag and links against
// libspine-c. Everything else in the module stays cgo-free: this package
// supplies the spine.Runtime that performs native vertex projection, the
// file and texture callbacks spine-c expects the host to define, and thin
// owners for atlases, skeleton data and animated skeleton instances.
//
//	go build -tags spinec ./cmd/spineview
//
// Calls into this package must stay on one goroutine; spine-c is not
// thread safe.
package spinec
