package filter

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/spf13/cast"
)

// opFunc evaluates one extracted attribute value against the operand.
// The raw value is coerced toward the operand's type before comparing.
type opFunc func(raw string, operand any) bool

var operators = map[string]opFunc{
	"exact": func(v string, q any) bool {
		r, ok := compare(v, q)
		return ok && r == 0
	},
	"iexact": func(v string, q any) bool {
		return strings.EqualFold(v, cast.ToString(q))
	},
	"contains": func(v string, q any) bool {
		return strings.Contains(v, cast.ToString(q))
	},
	"icontains": func(v string, q any) bool {
		return containsFold(v, cast.ToString(q))
	},
	"ne": func(v string, q any) bool {
		r, ok := compare(v, q)
		return ok && r != 0
	},
	"in": matchIn,
	"gt": func(v string, q any) bool {
		r, ok := compare(v, q)
		return ok && r > 0
	},
	"gte": func(v string, q any) bool {
		r, ok := compare(v, q)
		return ok && r >= 0
	},
	"lt": func(v string, q any) bool {
		r, ok := compare(v, q)
		return ok && r < 0
	},
	"lte": func(v string, q any) bool {
		r, ok := compare(v, q)
		return ok && r <= 0
	},
	"startswith": func(v string, q any) bool {
		return strings.HasPrefix(v, cast.ToString(q))
	},
	"istartswith": func(v string, q any) bool {
		return strings.HasPrefix(strings.ToLower(v), strings.ToLower(cast.ToString(q)))
	},
	"endswith": func(v string, q any) bool {
		return strings.HasSuffix(v, cast.ToString(q))
	},
	"iendswith": func(v string, q any) bool {
		return strings.HasSuffix(strings.ToLower(v), strings.ToLower(cast.ToString(q)))
	},
	"exists": nil, // handled on presence in MatchPredicate
	"regex": func(v string, q any) bool {
		return matchRegex(v, cast.ToString(q))
	},
	"iregex": func(v string, q any) bool {
		return matchRegex(v, "(?i)"+cast.ToString(q))
	},
}

// compare coerces the raw value toward the operand's type and returns the
// three-way comparison result. ok is false when the value cannot be coerced,
// which never matches.
func compare(raw string, operand any) (int, bool) {
	switch q := operand.(type) {
	case nil:
		// Only the missing-attribute special case matches nil; a value
		// that is present never equals nil.
		return 1, true
	case bool:
		i, err := cast.ToIntE(raw)
		if err != nil {
			return 0, false
		}
		return boolCompare(i != 0, q), true
	case int:
		return numericCompare(raw, float64(q))
	case int64:
		return numericCompare(raw, float64(q))
	case float64:
		return numericCompare(raw, q)
	default:
		return strings.Compare(raw, cast.ToString(operand)), true
	}
}

func numericCompare(raw string, q float64) (int, bool) {
	f, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, false
	}
	switch {
	case f < q:
		return -1, true
	case f > q:
		return 1, true
	}
	return 0, true
}

func boolCompare(v, q bool) int {
	if v == q {
		return 0
	}
	return 1
}

// matchIn tests membership of the value in a slice operand. Elements are
// compared by their string form.
func matchIn(raw string, operand any) bool {
	rv := reflect.ValueOf(operand)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return false
	}
	for i := 0; i < rv.Len(); i++ {
		if raw == cast.ToString(rv.Index(i).Interface()) {
			return true
		}
	}
	return false
}

func matchRegex(v, pattern string) bool {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(v)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
