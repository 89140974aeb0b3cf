// Package vmuprofiles resolves named device profiles to a sector count,
// as a convenience on top of the formatter's -N flag. It changes no
// on-disk format and adds no geometry rule of its own; it only spares the
// caller from remembering the sector count of a well-known device.
package vmuprofiles

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/gocarina/gocsv"
)

// Profile is one row of the embedded profile table.
type Profile struct {
	Name    string `csv:"name"`
	Slug    string `csv:"slug"`
	Sectors int64  `csv:"sectors"`
	Notes   string `csv:"notes"`
}

//go:embed profiles.csv
var rawCSV string

var profilesBySlug map[string]Profile

func init() {
	var rows []Profile
	if err := gocsv.UnmarshalString(rawCSV, &rows); err != nil {
		panic(fmt.Sprintf("vmuprofiles: embedded profile table is malformed: %s", err))
	}

	profilesBySlug = make(map[string]Profile, len(rows))
	for _, row := range rows {
		profilesBySlug[row.Slug] = row
	}
}

// Lookup resolves a profile slug (e.g. "vmu") to its sector count. The
// comparison is case-insensitive.
func Lookup(slug string) (Profile, error) {
	profile, ok := profilesBySlug[strings.ToLower(slug)]
	if !ok {
		return Profile{}, fmt.Errorf("no device profile named %q", slug)
	}
	return profile, nil
}
