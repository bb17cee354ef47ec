package badger

import (
	"fmt"

	"github.com/poiesic/statseek/core"
)

// Key prefixes for different data types
const (
	indicatorPrefix     = "indrec"
	indicatorCodePrefix = "indcode"
)

// makeIndicatorKey generates a key for an indicator record by ID.
func makeIndicatorKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", indicatorPrefix, id))
}

// makeIndicatorCodeKey generates a key for the code index.
// Format: prefix:code
func makeIndicatorCodeKey(code string) []byte {
	return []byte(indicatorCodePrefix + ":" + code)
}
