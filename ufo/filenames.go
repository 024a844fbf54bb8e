package ufo

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const maxFileNameLength = 255

var reservedFileNames = map[string]bool{
	"con": true, "prn": true, "aux": true, "clock$": true, "nul": true,
	"com1": true, "com2": true, "com3": true, "com4": true,
	"lpt1": true, "lpt2": true, "lpt3": true,
}

func isIllegalFileNameRune(r rune) bool {
	if r < 0x20 || r == 0x7F {
		return true
	}
	return strings.ContainsRune(`"*+/:<>?[\]|`, r)
}

// UserNameToFileName converts a glyph or layer name to a file name, following
// the file naming conventions of UFO 3: illegal characters are replaced
// by '_', upper case letters are followed by '_', a leading period is replaced
// by '_' and reserved file names are prefixed by '_'. Names clashing (ignoring
// case) with one of the existing file names get a numeric suffix. existing has
// to hold lower-cased names.
func UserNameToFileName(name string, existing map[string]bool, prefix, suffix string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("ufo: empty name cannot be converted to a file name")
	}
	if prefix == "" && name[0] == '.' {
		name = "_" + name[1:]
	}
	var sb strings.Builder
	for _, r := range name {
		switch {
		case isIllegalFileNameRune(r):
			sb.WriteByte('_')
		case unicode.ToLower(r) != r:
			sb.WriteRune(r)
			sb.WriteByte('_')
		default:
			sb.WriteRune(r)
		}
	}
	filtered := truncate(sb.String(), maxFileNameLength-len(prefix)-len(suffix))
	parts := strings.Split(filtered, ".")
	for i, part := range parts {
		if reservedFileNames[strings.ToLower(part)] {
			parts[i] = "_" + part
		}
	}
	filtered = strings.Join(parts, ".")
	full := prefix + filtered + suffix
	if !existing[strings.ToLower(full)] {
		return full, nil
	}
	const counterDigits = 15
	base := truncate(filtered, maxFileNameLength-len(prefix)-len(suffix)-counterDigits)
	for counter := 1; counter < 1_000_000_000_000_000; counter++ {
		full = fmt.Sprintf("%s%s%015d%s", prefix, base, counter, suffix)
		if !existing[strings.ToLower(full)] {
			return full, nil
		}
	}
	return "", fmt.Errorf("ufo: cannot find a unique file name for %q", name)
}

// truncate cuts s to at most n bytes, not splitting runes.
func truncate(s string, n int) string {
	if n < 0 {
		n = 0
	}
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
