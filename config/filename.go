package config

import "strings"

// CleanFileName turns in into a single path element usable as local file
// name: path and list separators, characters reserved by the platform and
// leading dots are dropped.
func CleanFileName(in string) string {
	out := strings.TrimLeft(strings.Map(func(sym rune) rune {
		if sym == 0 || strings.ContainsRune(reservedChars, sym) {
			return -1
		}
		return sym
	}, in), ".")
	if len(out) == 0 {
		out = "_bad_file_name_"
	}
	return out
}
