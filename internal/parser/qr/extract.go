// Package qr reads the payload of the ATCUD invoice QR code.
//
// A payload is a list of KEY:VALUE entities separated by '*':
//
//	A:123456789*B:999999999*C:PT*D:FT*E:N*F:20250314*...
//
// Extract splits the payload into raw fields, Validate checks every field
// against the format rules and coerces them into Fields.
package qr

import "strings"

const (
	entitySeparator = "*"
	keySeparator    = ":"
)

// Keys lists every key of the format in wire order
var Keys = []string{
	"A", "B", "C", "D", "E", "F", "G", "H",
	"I1", "I2", "I3", "I4", "I5", "I6", "I7", "I8",
	"J1", "J2", "J3", "J4", "J5", "J6", "J7", "J8",
	"K1", "K2", "K3", "K4", "K5", "K6", "K7", "K8",
	"L", "M", "N", "O", "P", "Q", "R", "S",
}

// RawFields maps payload keys to their unvalidated values.
// A key missing from the map was not present in the payload.
type RawFields map[string]string

// Get returns the value of key and whether it was present
func (f RawFields) Get(key string) (string, bool) {
	v, ok := f[key]
	return v, ok
}

// Extract splits a payload into raw fields. It never fails: an entity
// without ':' leaves its key without a value, even if an earlier entity set
// one, and later duplicates overwrite earlier ones.
func Extract(raw string) RawFields {
	fields := make(RawFields)
	for _, entity := range strings.Split(raw, entitySeparator) {
		key, value, ok := strings.Cut(entity, keySeparator)
		if !ok {
			delete(fields, key)
			continue
		}
		fields[key] = value
	}
	return fields
}
