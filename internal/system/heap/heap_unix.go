// Released under an MIT license. See LICENSE.

//go:build unix

package heap

import "golang.org/x/sys/unix"

// Values at or above this are treated as unlimited.
const unlimited = 1 << 62

func systemLimit() (int64, bool) {
	var r unix.Rlimit

	if err := unix.Getrlimit(unix.RLIMIT_DATA, &r); err != nil {
		return 0, false
	}

	if r.Cur >= unlimited {
		return 0, false
	}

	return int64(r.Cur), true
}
