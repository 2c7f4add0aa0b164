package content

// Resolve merges override onto base so that every path reachable in base has
// a value in the result.
//
//   - base sequence: override replaces it whole when it is also a sequence;
//     sequences are never merged element by element.
//   - base mapping: every base key is carried through; each key of an
//     override mapping is merged recursively, override-only keys are
//     appended as they are. A non-mapping override leaves base untouched.
//   - otherwise: override wins when present and not null, else base.
//
// The last rule means an override mapping replaces a base scalar outright.
// Base is never mutated.
func Resolve(base, override Value) Value {
	switch base.Kind() {
	case KindSequence:
		if override.Kind() == KindSequence {
			return override
		}
		return base
	case KindMapping:
		result := newMapping(base.Len())
		for _, k := range base.keys {
			result.set(k, base.fields[k])
		}
		if override.Kind() != KindMapping {
			return result
		}
		for _, k := range override.keys {
			merged := Resolve(base.fields[k], override.fields[k])
			if merged.IsAbsent() {
				continue
			}
			result.set(k, merged)
		}
		return result
	default:
		if override.IsAbsent() || override.IsNull() {
			return base
		}
		return override
	}
}
