package exec

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/sandrolain/gojsonpath/pkg/types"
)

// regex returns the compiled matcher for a like_regex predicate, going
// through the shared cache when one is configured.
func (cxt *execContext) regex(pattern string, flags types.RegexFlags) (*regexp.Regexp, error) {
	compile := func() (*regexp.Regexp, error) {
		return compileRegex(pattern, flags)
	}
	if cxt.regexCache != nil {
		return cxt.regexCache.GetOrCompile(regexCacheKey(pattern, flags), compile)
	}
	return compile()
}

// regexCacheKey identifies a pattern+flags pair; the flags prefix keeps
// the same pattern under different flags distinct.
func regexCacheKey(pattern string, flags types.RegexFlags) string {
	return strconv.FormatUint(uint64(flags), 16) + ":" + pattern
}

// compileRegex translates like_regex flags to matcher mode modifiers. The
// q flag quotes the whole pattern; the x flag strips unescaped whitespace
// outside character classes before compilation.
func compileRegex(pattern string, flags types.RegexFlags) (*regexp.Regexp, error) {
	pat := pattern
	if flags&types.RegexQuote != 0 {
		pat = regexp.QuoteMeta(pat)
	} else if flags&types.RegexWSpace != 0 {
		pat = stripExpandedWhitespace(pat)
	}

	var mode strings.Builder
	if flags&types.RegexICase != 0 {
		mode.WriteByte('i')
	}
	if flags&types.RegexSLine != 0 {
		mode.WriteByte('s')
	}
	if flags&types.RegexMLine != 0 {
		mode.WriteByte('m')
	}
	if mode.Len() > 0 {
		pat = "(?" + mode.String() + ")" + pat
	}
	return regexp.Compile(pat)
}

func stripExpandedWhitespace(pattern string) string {
	var b strings.Builder
	escaped := false
	inClass := false
	for _, r := range pattern {
		switch {
		case escaped:
			b.WriteRune(r)
			escaped = false
			continue
		case r == '\\':
			b.WriteRune(r)
			escaped = true
			continue
		case r == '[':
			inClass = true
		case r == ']':
			inClass = false
		}
		if !inClass && unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
