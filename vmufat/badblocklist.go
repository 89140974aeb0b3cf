package vmufat

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	vmerrors "github.com/mcmenaminadrian/mkfs.vmufat/errors"
)

// ReadBadBlockList reads a text file of whitespace-separated decimal
// non-negative integers, one per line, and returns them in file order.
// Malformed input is fatal.
func ReadBadBlockList(r io.Reader) ([]int32, error) {
	var blocks []int32

	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		value, err := strconv.ParseInt(line, 10, 32)
		if err != nil || value < 0 {
			return nil, vmerrors.ErrMalformedBadBlockList.WithMessage(
				"cannot parse line " + strconv.Itoa(lineNumber))
		}
		blocks = append(blocks, int32(value))
	}
	if err := scanner.Err(); err != nil {
		return nil, vmerrors.ErrMalformedBadBlockList.WrapError(err)
	}

	return blocks, nil
}
