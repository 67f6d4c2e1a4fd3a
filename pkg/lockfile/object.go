package lockfile

// scanObject emits a record for every entry of a packages table that matches
// format.
func scanObject(format Format, table *Object, policy SpecifierPolicy, emit func(Record)) {
	for _, key := range table.Keys() {
		value, _ := table.Get(key)
		var (
			rec Record
			ok  bool
		)
		switch format {
		case FormatNpm:
			rec, ok = DecodeNpmPath(key, value)
		case FormatBun:
			rec, ok = DecodeBunEntry(key, value)
		case FormatComposite, FormatPackagesTable:
			rec, ok = decodeCompositeEntry(table, key, value, policy)
		}
		if ok {
			emit(rec)
		}
	}
}

// decodeCompositeEntry decodes a "name@version" keyed entry. When the key
// holds a specifier, the entry's own "version" field wins, then the
// "version" field of an entry keyed by the specifier itself.
func decodeCompositeEntry(table *Object, key string, value any, policy SpecifierPolicy) (Record, bool) {
	name, version, ok := DecodeCompositeKey(key)
	if !ok {
		return Record{}, false
	}
	if IsResolvedVersion(version) {
		return Record{Name: name, Version: version}, true
	}
	if resolved, ok := versionOf(value); ok {
		return Record{Name: name, Version: resolved}, true
	}
	if sibling, ok := table.Get(version); ok {
		if resolved, ok := versionOf(sibling); ok {
			return Record{Name: name, Version: resolved}, true
		}
	}
	return policy.unresolved(name, version)
}
