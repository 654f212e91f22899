// Package tilemm configuration constants
package tilemm

// Tile dimensions for the matmul kernel. These match the minimum
// hardware-efficient tile granularity and are not tuned at runtime.
const (
	// BlockM is the number of output rows computed by one kernel instance
	BlockM = 16

	// BlockN is the number of output columns computed by one kernel instance
	BlockN = 16

	// BlockK is the depth of one K-step of the reduction loop
	BlockK = 16
)

// Launch parameters
const (
	// DefaultShuffleSeed seeds ScheduleShuffled when no seed is given
	DefaultShuffleSeed = 0x5eed
)

// Comparison thresholds for reduced-precision results
const (
	// HalfRelTol is the relative tolerance used for Float16 outputs
	HalfRelTol = 1e-2

	// HalfAbsTol is the absolute tolerance used for Float16 outputs
	HalfAbsTol = 1e-3
)

// cdiv returns ceil(a / b) for non-negative a and positive b.
func cdiv(a, b int) int {
	return (a + b - 1) / b
}
