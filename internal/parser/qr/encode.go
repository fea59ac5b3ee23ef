package qr

import (
	"fmt"
	"strings"
)

// Encode writes fields back into a payload, keys in wire order.
// The format has no escaping, so a value containing '*' or ':' is rejected.
func Encode(f *Fields) (string, error) {
	values, err := f.Values()
	if err != nil {
		return "", err
	}

	entities := make([]string, 0, len(values))
	for _, key := range Keys {
		value, ok := values[key]
		if !ok {
			continue
		}
		if strings.ContainsAny(value, entitySeparator+keySeparator) {
			return "", fmt.Errorf("field %s: value %q contains a reserved delimiter", key, value)
		}
		entities = append(entities, key+keySeparator+value)
	}

	return strings.Join(entities, entitySeparator), nil
}
