package file

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveSizeCap(t *testing.T) {
	// The configured value can tighten the limit but never raise it.
	assert.Equal(t, int64(1<<20), EffectiveSizeCap(1<<20))
	assert.Equal(t, int64(HardSizeCap), EffectiveSizeCap(5<<30))
	assert.Equal(t, int64(HardSizeCap), EffectiveSizeCap(0))
	assert.Equal(t, int64(HardSizeCap), EffectiveSizeCap(-1))
}

func TestCheckPolicyAllowed(t *testing.T) {
	assert.Nil(t, CheckPolicy("image/png", 1024, HardSizeCap))
	assert.Nil(t, CheckPolicy("application/pdf", 1024, HardSizeCap))
}

func TestCheckPolicyTooLarge(t *testing.T) {
	err := CheckPolicy("image/png", HardSizeCap+1, HardSizeCap)
	require.NotNil(t, err)
	assert.Equal(t, 413, err.HTTPStatus)
}

func TestCheckPolicyDisallowedType(t *testing.T) {
	err := CheckPolicy("application/x-msdownload", 10, HardSizeCap)
	require.NotNil(t, err)
	assert.Equal(t, 415, err.HTTPStatus)

	err = CheckPolicy("text/html; charset=utf-8", 10, HardSizeCap)
	require.NotNil(t, err)
	assert.Equal(t, 415, err.HTTPStatus)
}

func TestCheckPolicySizeBeforeType(t *testing.T) {
	// An oversized file of a disallowed type reports the size first.
	err := CheckPolicy("application/x-msdownload", HardSizeCap+1, HardSizeCap)
	require.NotNil(t, err)
	assert.Equal(t, 413, err.HTTPStatus)
}
