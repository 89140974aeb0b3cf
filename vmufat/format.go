package vmufat

import "time"

// BadBlockSource is the collaborator contract for bad-block discovery:
// either ScanForBadBlocks or ReadBadBlockList, called once before the
// pipeline writes anything.
type BadBlockSource func() ([]int32, error)

// FormatOptions configures a single run of Format.
type FormatOptions struct {
	// RequestedSectors is the -N (or -B-derived) sector count; 0 means use
	// the full device.
	RequestedSectors int64
	// BadBlocks, if non-nil, is invoked once to obtain the bad-block list
	// before any writes occur.
	BadBlocks BadBlockSource
	// Verbose, if non-nil, receives progress narration.
	Verbose func(format string, args ...any)
	// Clock overrides the root block's timestamp source; nil means
	// time.Now.
	Clock func() time.Time
}

// Format runs the VMUFAT formatting pipeline against dev: plan geometry,
// optionally collect bad blocks, write the root block, write the FAT, zero
// the user area, then apply bad-block marks. Any step failing aborts the
// remainder; there is no rollback, so a failed format leaves dev in
// whatever partially-written state it reached.
func Format(dev Device, opts FormatOptions) (Layout, error) {
	rawSize, err := dev.SectorCount()
	if err != nil {
		return Layout{}, err
	}

	layout, err := Plan(rawSize*SectorSize, opts.RequestedSectors)
	if err != nil {
		return Layout{}, err
	}

	var badBlocks []int32
	if opts.BadBlocks != nil {
		badBlocks, err = opts.BadBlocks()
		if err != nil {
			return Layout{}, err
		}
	}

	rootWriter := RootBlockWriter{Clock: opts.Clock}
	if err := rootWriter.Write(dev, layout); err != nil {
		return Layout{}, err
	}
	if opts.Verbose != nil {
		opts.Verbose("Root block written to block %d", layout.Rootblock)
	}

	fatWriter := FATWriter{}
	if err := fatWriter.Write(dev, layout); err != nil {
		return Layout{}, err
	}
	if opts.Verbose != nil {
		opts.Verbose("FAT written")
	}

	if err := ZeroUserArea(dev, layout); err != nil {
		return Layout{}, err
	}
	if opts.Verbose != nil {
		opts.Verbose("Other blocks zeroed")
	}

	if err := MarkBadBlocks(dev, layout, badBlocks, opts.Verbose); err != nil {
		return Layout{}, err
	}

	return layout, nil
}
