package exec

import (
	"testing"

	"github.com/sandrolain/gojsonpath/pkg/types"
)

func TestCompileRegexFlags(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		flags   types.RegexFlags
		match   string
		want    bool
	}{
		{"plain", "^ab", 0, "abc", true},
		{"plain-no-match", "^ab", 0, "ABC", false},
		{"icase", "^ab", types.RegexICase, "ABC", true},
		{"sline", "a.b", types.RegexSLine, "a\nb", true},
		{"mline", "^b", types.RegexMLine, "a\nb", true},
		{"quote", "a.b", types.RegexQuote, "a.b", true},
		{"quote-literal", "a.b", types.RegexQuote, "axb", false},
		{"wspace", "a b c", types.RegexWSpace, "abc", true},
		{"wspace-class-kept", "a[ ]b", types.RegexWSpace, "a b", true},
		{"wspace-escaped-kept", `a\ b`, types.RegexWSpace, "a b", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re, err := compileRegex(tt.pattern, tt.flags)
			if err != nil {
				t.Fatalf("compileRegex: %v", err)
			}
			if got := re.MatchString(tt.match); got != tt.want {
				t.Fatalf("MatchString(%q) = %v, want %v", tt.match, got, tt.want)
			}
		})
	}
}

func TestRegexCacheKeyDistinguishesFlags(t *testing.T) {
	if regexCacheKey("p", 0) == regexCacheKey("p", types.RegexICase) {
		t.Fatal("cache keys must differ per flags")
	}
}
