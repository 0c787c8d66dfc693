// Released under an MIT license. See LICENSE.

//go:build !unix

package heap

func systemLimit() (int64, bool) {
	return 0, false
}
