// Command mkfsvmufat creates a VMUFAT filesystem on a block special
// device: it writes the root/superblock, the File Allocation Table,
// zeroes the user area, and optionally marks bad sectors. A target that
// is not a block special device (a plain image file, for instance) is
// refused.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/hashicorp/go-multierror"
	"github.com/urfave/cli/v2"

	vmerrors "github.com/mcmenaminadrian/mkfs.vmufat/errors"
	"github.com/mcmenaminadrian/mkfs.vmufat/vmufat"
	"github.com/mcmenaminadrian/mkfs.vmufat/vmuprofiles"
)

func main() {
	app := &cli.App{
		Name:      "mkfs.vmufat",
		Usage:     "Create a VMUFAT filesystem",
		ArgsUsage: "device [count]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "c", Usage: "scan the device for bad blocks"},
			&cli.StringFlag{Name: "l", Usage: "read a bad-block list from FILE"},
			&cli.IntFlag{Name: "N", Usage: "format as if the device had N sectors"},
			&cli.IntFlag{Name: "B", Usage: "equivalent to -N (1<<k)"},
			&cli.StringFlag{Name: "profile", Usage: "resolve a named device profile to -N"},
			&cli.BoolFlag{Name: "v", Usage: "verbose progress"},
		},
		Action: runFormat,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}

func runFormat(c *cli.Context) error {
	if c.Args().Len() == 0 {
		cli.ShowAppHelp(c)
		return vmerrors.ErrUsage.WithMessage("a device name must be given")
	}

	deviceName := c.Args().Get(0)
	requestedSectors := int64(c.Int("N"))

	if c.IsSet("B") {
		requestedSectors = int64(1) << uint(c.Int("B"))
	}
	if c.IsSet("profile") {
		profile, err := vmuprofiles.Lookup(c.String("profile"))
		if err != nil {
			return vmerrors.ErrUsage.WrapError(err)
		}
		requestedSectors = profile.Sectors
	}
	// A single trailing positional count behaves like -N.
	if c.Args().Len() > 1 {
		var n int64
		if _, err := fmt.Sscanf(c.Args().Get(1), "%d", &n); err != nil {
			return vmerrors.ErrUsage.WithMessage("trailing count is not a number")
		}
		requestedSectors = n
	}

	scanRequested := c.Bool("c")
	listRequested := c.IsSet("l")
	if scanRequested && listRequested {
		// -c and -l are mutually exclusive; whichever was given later in
		// argv wins.
		if lastFlagIndex(os.Args, "-l") > lastFlagIndex(os.Args, "-c") {
			scanRequested = false
		} else {
			listRequested = false
		}
	}

	verbose := c.Bool("v")
	logf := func(format string, args ...any) {
		if verbose {
			fmt.Printf(format+"\n", args...)
		}
	}

	if err := checkMounted(deviceName); err != nil {
		return err
	}

	info, err := os.Stat(deviceName)
	if err != nil {
		return vmerrors.ErrStatFailed.WrapError(err)
	}
	if !isBlockDevice(info) {
		return vmerrors.ErrNotBlockDevice.WithMessage(deviceName)
	}

	file, err := os.OpenFile(deviceName, os.O_RDWR, 0)
	if err != nil {
		return vmerrors.ErrOpenFailed.WrapError(err)
	}
	dev := vmufat.NewFileDevice(file)

	opts := vmufat.FormatOptions{
		RequestedSectors: requestedSectors,
		Verbose:          logf,
	}
	if scanRequested {
		opts.BadBlocks = func() ([]int32, error) {
			return vmufat.ScanForBadBlocks(dev, logf)
		}
	} else if listRequested {
		opts.BadBlocks = func() ([]int32, error) {
			listFile, err := os.Open(c.String("l"))
			if err != nil {
				return nil, vmerrors.ErrMalformedBadBlockList.WrapError(err)
			}
			defer listFile.Close()
			return vmufat.ReadBadBlockList(listFile)
		}
	}

	_, formatErr := vmufat.Format(dev, opts)

	var result *multierror.Error
	if formatErr != nil {
		result = multierror.Append(result, formatErr)
	}
	if closeErr := dev.Close(); closeErr != nil {
		result = multierror.Append(result, closeErr)
	}
	if err := result.ErrorOrNil(); err != nil {
		return err
	}

	logf("VMUFAT volume created on %s", deviceName)
	return nil
}

// lastFlagIndex returns the highest index in args at which flag appears
// (as its own argument or as a "-flag=value" prefix), or -1 if absent.
func lastFlagIndex(args []string, flag string) int {
	last := -1
	for i, arg := range args {
		if arg == flag || strings.HasPrefix(arg, flag+"=") {
			last = i
		}
	}
	return last
}

// isBlockDevice reports whether info describes a block special device.
func isBlockDevice(info os.FileInfo) bool {
	statT, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return false
	}
	return statT.Mode&syscall.S_IFMT == syscall.S_IFBLK
}

// checkMounted refuses to format a device that appears in /proc/mounts.
// Missing /proc/mounts (e.g. non-Linux) is not an error; it just means we
// can't detect a conflicting mount and proceed.
func checkMounted(deviceName string) error {
	f, err := os.Open("/proc/mounts")
	if err != nil {
		return nil
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) > 0 && fields[0] == deviceName {
			return vmerrors.ErrAlreadyMounted.WithMessage(deviceName)
		}
	}
	return nil
}
