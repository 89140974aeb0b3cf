package vmuprofiles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupKnownProfile(t *testing.T) {
	profile, err := Lookup("vmu")
	require.NoError(t, err)
	assert.EqualValues(t, 256, profile.Sectors)
	assert.Equal(t, "Dreamcast VMU", profile.Name)
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	profile, err := Lookup("VMU-1M")
	require.NoError(t, err)
	assert.EqualValues(t, 2048, profile.Sectors)
}

func TestLookupUnknownProfile(t *testing.T) {
	_, err := Lookup("does-not-exist")
	assert.Error(t, err)
}
