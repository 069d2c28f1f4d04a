package expression

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/c360/semgraph/pkg/cache"
)

// globalRegexCache holds compiled regular expressions for filter
// conditions. Filters re-evaluate the same pattern once per solution, so
// caching compilation matters.
var globalRegexCache cache.Cache[*regexp.Regexp]

func init() {
	var err error
	globalRegexCache, err = cache.NewLRU[*regexp.Regexp](100)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize regex cache: %v", err))
	}
}

// compileRegex returns a cached compiled regex or compiles and caches a
// new one.
func compileRegex(pattern string) (*regexp.Regexp, error) {
	if re, found := globalRegexCache.Get(pattern); found {
		return re, nil
	}

	if err := validateRegexComplexity(pattern); err != nil {
		return nil, err
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regex pattern '%s': %w", pattern, err)
	}

	globalRegexCache.Set(pattern, re)
	return re, nil
}

// validateRegexComplexity rejects patterns that could cause exponential
// backtracking. Filter values may originate from deserialized operation
// trees, so patterns are not trusted.
func validateRegexComplexity(pattern string) error {
	if len(pattern) > 500 {
		return fmt.Errorf("regex pattern too long (max 500 chars): %d chars", len(pattern))
	}

	dangerousFragments := []string{
		`(\w+)*\w`,
		`(\w*)+`,
		`(a+)+`,
		`([a-zA-Z]+)*`,
		`(\d+)*\d`,
		`(.*)*`,
		`(.+)+`,
		`(\s+)*\s`,
		`([^,]+)*[^,]`,
	}
	for _, fragment := range dangerousFragments {
		if strings.Contains(pattern, fragment) {
			return fmt.Errorf("regex pattern contains potentially dangerous construct: nested quantifiers that may cause exponential backtracking")
		}
	}

	if strings.Contains(pattern, "{") {
		for i := 1000; i <= 9999; i++ {
			if strings.Contains(pattern, fmt.Sprintf("{%d", i)) {
				return fmt.Errorf("regex pattern contains excessive repetition count (>= 1000)")
			}
		}
	}

	if strings.Count(pattern, "(") > 20 {
		return fmt.Errorf("regex pattern has too many capture groups (max 20)")
	}

	nestLevel := 0
	maxNest := 0
	for _, ch := range pattern {
		if ch == '(' {
			nestLevel++
			if nestLevel > maxNest {
				maxNest = nestLevel
			}
		} else if ch == ')' {
			nestLevel--
		}
	}
	if maxNest > 5 {
		return fmt.Errorf("regex pattern has excessive nesting depth (max 5 levels)")
	}

	return nil
}

// clearCache removes all cached patterns. Used by tests.
func clearCache() {
	globalRegexCache.Clear()
}

// cacheSize returns the current number of cached patterns.
func cacheSize() int {
	return globalRegexCache.Size()
}
