package jobs

// Document is a schemaless posting as decoded from a JSON feed. Lookups
// return a typed value plus an ok flag instead of raising, so extraction
// reads as explicit fallbacks. All accessors are safe on a nil Document.
type Document map[string]any

// AsDocument converts a decoded JSON value into a Document.
func AsDocument(v any) (Document, bool) {
	switch m := v.(type) {
	case Document:
		return m, true
	case map[string]any:
		return Document(m), true
	default:
		return nil, false
	}
}

// Has reports whether the key is present, regardless of value type.
func (d Document) Has(key string) bool {
	_, ok := d[key]
	return ok
}

// String returns the value at key when it is a string.
func (d Document) String(key string) (string, bool) {
	s, ok := d[key].(string)
	return s, ok
}

// Float returns the value at key when it is numeric. JSON decoding
// produces float64, but int is accepted for documents built in code.
func (d Document) Float(key string) (float64, bool) {
	switch n := d[key].(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// Slice returns the value at key when it is a JSON array.
func (d Document) Slice(key string) ([]any, bool) {
	s, ok := d[key].([]any)
	return s, ok
}

// Child returns the nested Document at key, or nil when the key is
// absent or not an object.
func (d Document) Child(key string) Document {
	child, ok := AsDocument(d[key])
	if !ok {
		return nil
	}
	return child
}

// Path descends through nested objects, returning nil as soon as any
// step is missing or not an object.
func (d Document) Path(keys ...string) Document {
	cur := d
	for _, key := range keys {
		cur = cur.Child(key)
		if cur == nil {
			return nil
		}
	}
	return cur
}
