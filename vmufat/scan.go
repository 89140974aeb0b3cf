package vmufat

// ScanForBadBlocks reads every sector on dev once, in ascending order, and
// returns the indices of any that produce a short or failed read. A single
// bad sector is never fatal to the scan; only an allocation failure would
// be, and none occurs in this implementation since Device.ReadSectorAt
// always returns a fixed-size array.
func ScanForBadBlocks(dev Device, verbose func(format string, args ...any)) ([]int32, error) {
	total, err := dev.SectorCount()
	if err != nil {
		return nil, err
	}

	var badBlocks []int32
	for i := int64(0); i < total; i++ {
		if verbose != nil {
			verbose("Testing block %d", i)
		}
		if _, err := dev.ReadSectorAt(i); err != nil {
			badBlocks = append(badBlocks, int32(i))
		}
	}
	return badBlocks, nil
}
