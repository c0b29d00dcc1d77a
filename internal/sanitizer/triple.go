// SPDX-License-Identifier: MPL-2.0

package sanitizer

import "strings"

// Triple identifies a platform target triple. Only the triples that at least
// one sanitizer supports are listed; everything else parses to TripleUnknown.
type Triple int

const (
	TripleUnknown Triple = iota
	Aarch64AppleDarwin
	Aarch64LinuxAndroid
	Aarch64UnknownFuchsia
	Aarch64UnknownLinuxGnu
	X8664AppleDarwin
	X8664LinuxAndroid
	X8664UnknownFuchsia
	X8664UnknownFreebsd
	X8664UnknownLinuxGnu
)

const (
	aarch64AppleDarwin     = "aarch64-apple-darwin"
	aarch64LinuxAndroid    = "aarch64-linux-android"
	aarch64UnknownFuchsia  = "aarch64-unknown-fuchsia"
	aarch64UnknownLinuxGnu = "aarch64-unknown-linux-gnu"
	x8664AppleDarwin       = "x86_64-apple-darwin"
	x8664LinuxAndroid      = "x86_64-linux-android"
	x8664UnknownFuchsia    = "x86_64-unknown-fuchsia"
	x8664UnknownFreebsd    = "x86_64-unknown-freebsd"
	x8664UnknownLinuxGnu   = "x86_64-unknown-linux-gnu"
)

// tripleNames is the canonical string form of each known triple. The same
// table backs both String and ParseTriple, which keeps the round-trip
// property (parse(display(t)) == t) true by construction.
var tripleNames = map[Triple]string{
	Aarch64AppleDarwin:     aarch64AppleDarwin,
	Aarch64LinuxAndroid:    aarch64LinuxAndroid,
	Aarch64UnknownFuchsia:  aarch64UnknownFuchsia,
	Aarch64UnknownLinuxGnu: aarch64UnknownLinuxGnu,
	X8664AppleDarwin:       x8664AppleDarwin,
	X8664LinuxAndroid:      x8664LinuxAndroid,
	X8664UnknownFuchsia:    x8664UnknownFuchsia,
	X8664UnknownFreebsd:    x8664UnknownFreebsd,
	X8664UnknownLinuxGnu:   x8664UnknownLinuxGnu,
}

var triplesByName = func() map[string]Triple {
	m := make(map[string]Triple, len(tripleNames))
	for triple, name := range tripleNames {
		m[name] = triple
	}
	return m
}()

// KnownTriples returns every triple with a canonical string form, in a fixed
// order.
func KnownTriples() []Triple {
	return []Triple{
		Aarch64AppleDarwin,
		Aarch64LinuxAndroid,
		Aarch64UnknownFuchsia,
		Aarch64UnknownLinuxGnu,
		X8664AppleDarwin,
		X8664LinuxAndroid,
		X8664UnknownFuchsia,
		X8664UnknownFreebsd,
		X8664UnknownLinuxGnu,
	}
}

// ParseTriple maps a platform string to its Triple. Unrecognized, empty, or
// malformed input yields TripleUnknown, never an error: installed targets we
// don't know about must not abort a support check.
func ParseTriple(s string) Triple {
	if triple, ok := triplesByName[strings.TrimSpace(s)]; ok {
		return triple
	}
	return TripleUnknown
}

// String returns the canonical string form; TripleUnknown renders empty.
func (t Triple) String() string {
	return tripleNames[t]
}
