package desktop

import (
	"fmt"
	"strings"
)

// guidSize is the length of a GUID in its binary registry encoding.
const guidSize = 16

// idFromRegistryBytes decodes a GUID stored in the Windows binary layout,
// where the first three groups are little-endian.
func idFromRegistryBytes(b []byte) (ID, error) {
	var id ID
	if len(b) != guidSize {
		return id, fmt.Errorf("guid: want %d bytes, got %d", guidSize, len(b))
	}
	id[0], id[1], id[2], id[3] = b[3], b[2], b[1], b[0]
	id[4], id[5] = b[5], b[4]
	id[6], id[7] = b[7], b[6]
	copy(id[8:], b[8:])
	return id, nil
}

// idsFromRegistryBytes decodes a concatenated list of binary GUIDs.
func idsFromRegistryBytes(b []byte) ([]ID, error) {
	if len(b)%guidSize != 0 {
		return nil, fmt.Errorf("guid list: length %d is not a multiple of %d", len(b), guidSize)
	}
	ids := make([]ID, 0, len(b)/guidSize)
	for off := 0; off < len(b); off += guidSize {
		id, err := idFromRegistryBytes(b[off : off+guidSize])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// registryKeyName formats id the way desktop subkeys are named.
func registryKeyName(id ID) string {
	return "{" + strings.ToUpper(id.String()) + "}"
}
