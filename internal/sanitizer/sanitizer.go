// SPDX-License-Identifier: MPL-2.0

// Package sanitizer models the runtime instrumentation modes of the nightly
// Rust compiler and the platform triples each of them supports.
//
// The capability table is a static mapping taken from the unstable book:
// https://doc.rust-lang.org/beta/unstable-book/compiler-flags/sanitizer.html
package sanitizer

// Sanitizer enumerates the instrumentation kinds offered by the nightly
// compiler. Each variant carries three compile-time-constant facets: a
// display name, a RUSTFLAGS fragment, and a supported-triple set.
type Sanitizer int

const (
	Address Sanitizer = iota
	ControlFlowIntegrity
	HWAddress
	KernelControlFlowIntegrity
	Leak
	Memory
	MemTag
	SafeStack
	ShadowCallStack
	Thread
)

// DefaultRustflags is appended to every sanitizer's RUSTFLAGS: sanitizer
// runs are only meaningful on optimized builds.
const DefaultRustflags = "-Copt-level=3"

// All returns every sanitizer in declaration order.
func All() []Sanitizer {
	return []Sanitizer{
		Address,
		ControlFlowIntegrity,
		HWAddress,
		KernelControlFlowIntegrity,
		Leak,
		Memory,
		MemTag,
		SafeStack,
		ShadowCallStack,
		Thread,
	}
}

// String returns the human-readable sanitizer name.
func (s Sanitizer) String() string {
	switch s {
	case Address:
		return "AddressSanitizer"
	case ControlFlowIntegrity:
		return "ControlFlowIntegrity"
	case HWAddress:
		return "HWAddressSanitizer"
	case KernelControlFlowIntegrity:
		return "KernelControlFlowIntegrity"
	case Leak:
		return "LeakSanitizer"
	case Memory:
		return "MemorySanitizer"
	case MemTag:
		return "MemTagSanitizer"
	case SafeStack:
		return "SafeStack"
	case ShadowCallStack:
		return "ShadowCallStack"
	case Thread:
		return "ThreadSanitizer"
	default:
		return "unknown"
	}
}

// Flags returns the RUSTFLAGS fragment enabling this sanitizer.
func (s Sanitizer) Flags() string {
	switch s {
	case Address:
		return "-Zsanitizer=address"
	case ControlFlowIntegrity:
		return "-Zsanitizer=cfi -Clto"
	case HWAddress:
		return "-Zsanitizer=hwaddress -Ctarget-feature=+tagged-globals"
	case KernelControlFlowIntegrity:
		return "-Zsanitizer=kcfi"
	case Leak:
		return "-Zsanitizer=leak"
	case Memory:
		return "-Zsanitizer=memory -Zsanitizer-memory-track-origins"
	case MemTag:
		return `-Zsanitizer=memtag -Ctarget-feature="+mte"`
	case SafeStack:
		return "-Zsanitizer=safestack"
	case ShadowCallStack:
		return "-Zsanitizer=shadow-call-stack"
	case Thread:
		return "-Zsanitizer=thread"
	default:
		return ""
	}
}

// ExtraCargoArgs returns additional cargo arguments some sanitizers need.
// Only ControlFlowIntegrity requires build-std plus an explicit target today;
// the accessor exists so further entries stay a one-line change.
func (s Sanitizer) ExtraCargoArgs() []string {
	switch s {
	case ControlFlowIntegrity:
		return []string{"-Zbuild-std", "--target", x8664UnknownLinuxGnu}
	default:
		return nil
	}
}

// SupportedTriples returns the platform triples this sanitizer runs on.
func (s Sanitizer) SupportedTriples() []Triple {
	switch s {
	case Address:
		return []Triple{
			Aarch64AppleDarwin,
			Aarch64UnknownFuchsia,
			Aarch64UnknownLinuxGnu,
			X8664AppleDarwin,
			X8664UnknownFuchsia,
			X8664UnknownFreebsd,
			X8664UnknownLinuxGnu,
		}
	case ControlFlowIntegrity:
		return []Triple{X8664UnknownLinuxGnu}
	case HWAddress:
		return []Triple{Aarch64LinuxAndroid, Aarch64UnknownLinuxGnu}
	case KernelControlFlowIntegrity:
		return []Triple{
			Aarch64LinuxAndroid,
			Aarch64UnknownLinuxGnu,
			X8664LinuxAndroid,
			X8664UnknownLinuxGnu,
		}
	case Leak:
		return []Triple{
			Aarch64AppleDarwin,
			Aarch64UnknownLinuxGnu,
			X8664AppleDarwin,
			X8664UnknownLinuxGnu,
		}
	case Memory:
		return []Triple{
			Aarch64UnknownLinuxGnu,
			X8664UnknownFreebsd,
			X8664UnknownLinuxGnu,
		}
	case MemTag:
		return []Triple{Aarch64LinuxAndroid, Aarch64UnknownLinuxGnu}
	case SafeStack:
		return []Triple{X8664UnknownLinuxGnu}
	case ShadowCallStack:
		return []Triple{Aarch64LinuxAndroid}
	case Thread:
		return []Triple{
			Aarch64AppleDarwin,
			Aarch64UnknownLinuxGnu,
			X8664AppleDarwin,
			X8664UnknownFreebsd,
			X8664UnknownLinuxGnu,
		}
	default:
		return nil
	}
}

// IsSupported reports whether any of the installed platform strings parses
// to a triple this sanitizer supports. Unrecognized or blank entries are
// excluded from the intersection test rather than treated as errors.
func (s Sanitizer) IsSupported(installed []string) bool {
	supported := s.SupportedTriples()
	for _, raw := range installed {
		parsed := ParseTriple(raw)
		if parsed == TripleUnknown {
			continue
		}
		for _, triple := range supported {
			if triple == parsed {
				return true
			}
		}
	}
	return false
}

// Env returns the environment variables an instrumented cargo invocation
// needs: RUSTFLAGS combines the sanitizer flags with the default optimization
// flag, RUSTDOCFLAGS carries the sanitizer flags alone.
func (s Sanitizer) Env() map[string]string {
	return map[string]string{
		"RUSTFLAGS":    s.Flags() + " " + DefaultRustflags,
		"RUSTDOCFLAGS": s.Flags(),
	}
}
