package content

// RootSequencePath names the root when a root-level sequence is missing.
const RootSequencePath = "(root array)"

// MissingPaths lists the dotted key paths of source that target does not
// define, in source document order. A source sequence whose counterpart in
// target is not a sequence is reported as missing too. Scalars are not
// compared by kind.
func MissingPaths(source, target Value) []string {
	return collectMissing(source, target, "")
}

func collectMissing(source, target Value, prefix string) []string {
	switch source.Kind() {
	case KindSequence:
		if target.Kind() != KindSequence {
			if prefix == "" {
				return []string{RootSequencePath}
			}
			return []string{prefix}
		}
		return nil
	case KindMapping:
		var missing []string
		for _, key := range source.keys {
			next := key
			if prefix != "" {
				next = prefix + "." + key
			}
			if !target.Has(key) {
				missing = append(missing, next)
				continue
			}
			missing = append(missing, collectMissing(source.fields[key], target.fields[key], next)...)
		}
		return missing
	default:
		return nil
	}
}
