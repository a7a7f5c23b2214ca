package resolve

import "fmt"

// noTarget is the reserved bucket/key value denoting resolution failure.
const noTarget = "none"

// Address is a resolved object-storage location.
//
// Addresses are immutable values. The zero Address is not meaningful;
// resolution failure is represented by NoAddress, not by the zero value.
type Address struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}

// NoAddress is the sentinel returned when no rule matched an
// identifier. Callers must treat it as "asset not found", never as a
// location that happens not to exist.
var NoAddress = Address{Bucket: noTarget, Key: noTarget}

// IsNone reports whether this is the resolution-failure sentinel.
func (a Address) IsNone() bool {
	return a.Bucket == noTarget && a.Key == noTarget
}

// String returns the canonical "bucket/key" form.
func (a Address) String() string {
	return fmt.Sprintf("%s/%s", a.Bucket, a.Key)
}
