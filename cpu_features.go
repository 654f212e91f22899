package tilemm

import (
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"
)

// CPUFeatures tracks instruction set extensions relevant to the kernel's
// float32 accumulation and half precision conversions.
type CPUFeatures struct {
	HasAVX2    bool
	HasAVX512F bool // Foundation
	HasFMA     bool
	HasNEON    bool
	HasFP16    bool // ARM64 half precision arithmetic
	HasSVE     bool
}

// detectCPUFeatures reads the running CPU's capabilities.
func detectCPUFeatures() CPUFeatures {
	return CPUFeatures{
		HasAVX2:    cpu.X86.HasAVX2,
		HasAVX512F: cpu.X86.HasAVX512F,
		HasFMA:     cpu.X86.HasFMA,
		HasNEON:    cpu.ARM64.HasASIMD,
		HasFP16:    cpu.ARM64.HasFPHP && cpu.ARM64.HasASIMDHP,
		HasSVE:     cpu.ARM64.HasSVE,
	}
}

// List returns the detected feature names in a stable order.
func (f CPUFeatures) List() []string {
	var features []string
	if f.HasAVX2 {
		features = append(features, "AVX2")
	}
	if f.HasFMA {
		features = append(features, "FMA")
	}
	if f.HasAVX512F {
		features = append(features, "AVX512F")
	}
	if f.HasNEON {
		features = append(features, "NEON")
	}
	if f.HasFP16 {
		features = append(features, "FP16")
	}
	if f.HasSVE {
		features = append(features, "SVE")
	}
	return features
}

// String returns a string describing available CPU features
func (f CPUFeatures) String() string {
	features := f.List()
	if len(features) == 0 {
		return "No SIMD extensions detected"
	}
	return "CPU features: " + strings.Join(features, ", ")
}

// Device describes the compute device kernels are launched on. In tilemm
// this is always the host CPU.
type Device struct {
	ID       int    // Unique device identifier
	Name     string // Human-readable device name
	Arch     string // GOARCH of the running binary
	NumCores int    // Number of CPU cores
	Features CPUFeatures
}

var defaultDevice = &Device{
	ID:       0,
	Name:     "CPU",
	Arch:     runtime.GOARCH,
	NumCores: runtime.NumCPU(),
	Features: detectCPUFeatures(),
}

// GetDevice returns the current device information.
//
// Example:
//
//	device := tilemm.GetDevice()
//	fmt.Printf("Running on: %s with %d cores\n", device.Name, device.NumCores)
func GetDevice() *Device {
	return defaultDevice
}

// String summarizes the device on one line.
func (d *Device) String() string {
	return fmt.Sprintf("%s/%s (%d cores) %s", d.Name, d.Arch, d.NumCores, d.Features)
}
