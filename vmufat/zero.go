package vmufat

import vmerrors "github.com/mcmenaminadrian/mkfs.vmufat/errors"

// ZeroUserArea writes all-zero sectors over [0, layout.Dirstart] inclusive,
// in ascending order. This clears the directory region (left unpopulated,
// per the Non-goals) along with the user data region.
func ZeroUserArea(dev Device, layout Layout) error {
	var zero Sector
	for i := int64(0); i <= layout.Dirstart; i++ {
		if err := dev.WriteSectorAt(i, zero); err != nil {
			return vmerrors.ErrShortWrite.WrapError(err)
		}
	}
	return nil
}
