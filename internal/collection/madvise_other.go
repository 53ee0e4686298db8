//go:build !linux && !darwin

package collection

// adviseSequential is a no-op on platforms without unix.Madvise.
func adviseSequential(path string) {}
