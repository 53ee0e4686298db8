//go:build linux || darwin

package collection

import (
	"os"

	"golang.org/x/sys/unix"
)

// adviseSequential hints the kernel that path will be read front-to-back,
// mirroring the reference's posix_madvise(POSIX_MADV_SEQUENTIAL). It maps
// the file itself (golang.org/x/exp/mmap's ReaderAt does not expose the
// underlying bytes a madvise call needs) purely to issue the hint, then
// unmaps; the actual reads go through the portable mmap.ReaderAt. Best
// effort: any failure here is not fatal to reading the collection.
func adviseSequential(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil || fi.Size() == 0 {
		return
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(fi.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return
	}
	_ = unix.Madvise(data, unix.MADV_SEQUENTIAL)
	_ = unix.Munmap(data)
}
