package desktop

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// registryBytes of {01020304-0506-0708-090A-0B0C0D0E0F10}.
var registryBytes = []byte{
	0x04, 0x03, 0x02, 0x01,
	0x06, 0x05,
	0x08, 0x07,
	0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F, 0x10,
}

func TestIDFromRegistryBytes(t *testing.T) {
	id, err := idFromRegistryBytes(registryBytes)
	require.NoError(t, err)
	assert.Equal(t, uuid.MustParse("01020304-0506-0708-090a-0b0c0d0e0f10"), id)
	assert.Equal(t, "{01020304-0506-0708-090A-0B0C0D0E0F10}", registryKeyName(id))

	_, err = idFromRegistryBytes(registryBytes[:8])
	assert.Error(t, err)
}

func TestIDsFromRegistryBytes(t *testing.T) {
	ids, err := idsFromRegistryBytes(append(append([]byte{}, registryBytes...), registryBytes...))
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	ids, err = idsFromRegistryBytes(nil)
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = idsFromRegistryBytes(registryBytes[:15])
	assert.Error(t, err)
}

func TestParseID(t *testing.T) {
	id, err := ParseID("{01020304-0506-0708-090A-0B0C0D0E0F10}")
	require.NoError(t, err)
	assert.Equal(t, uuid.MustParse("01020304-0506-0708-090a-0b0c0d0e0f10"), id)

	_, err = ParseID("not-a-guid")
	assert.Error(t, err)
}
