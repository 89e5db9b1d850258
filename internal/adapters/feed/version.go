package feed

import (
	"slices"
	"strings"

	"go.trai.ch/restore/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/mod/semver"
)

// canonical maps a NuGet version onto a semver string. A fourth version part is
// dropped. It returns "" for versions semver cannot order.
func canonical(v string) string {
	v, _, _ = strings.Cut(strings.TrimSpace(v), "+")
	main, pre, hasPre := strings.Cut(v, "-")
	parts := strings.Split(main, ".")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	for len(parts) < 3 {
		parts = append(parts, "0")
	}
	s := "v" + strings.Join(parts, ".")
	if hasPre {
		s += "-" + pre
	}
	if !semver.IsValid(s) {
		return ""
	}
	return s
}

func compareVersions(a, b string) int {
	return semver.Compare(canonical(a), canonical(b))
}

func isPrerelease(v string) bool {
	return semver.Prerelease(canonical(v)) != ""
}

// versionRange is a NuGet version range such as 1.0.0, [1.0.0], [1.0,2.0) or 1.*.
type versionRange struct {
	text         string
	min          string
	max          string
	minInclusive bool
	maxInclusive bool
	floating     string
}

func parseRange(text string) (versionRange, error) {
	r := versionRange{text: strings.TrimSpace(text)}
	s := r.text
	invalid := zerr.With(domain.ErrInvalidVersionRange, "range", text)

	switch {
	case s == "" || s == "*" || s == domain.AllVersions:
		return r, nil
	case strings.HasSuffix(s, "*"):
		r.floating = strings.TrimSuffix(s, "*")
		r.min = strings.TrimSuffix(r.floating, ".")
		r.minInclusive = true
		if r.min != "" && canonical(r.min) == "" {
			return r, invalid
		}
		return r, nil
	case !strings.ContainsAny(s[:1], "[(") && !strings.ContainsAny(s[len(s)-1:], "])"):
		if canonical(s) == "" {
			return r, invalid
		}
		r.min, r.minInclusive = s, true
		return r, nil
	}

	if len(s) < 2 || !strings.ContainsAny(s[:1], "[(") || !strings.ContainsAny(s[len(s)-1:], "])") {
		return r, invalid
	}
	r.minInclusive = s[0] == '['
	r.maxInclusive = s[len(s)-1] == ']'
	inner := s[1 : len(s)-1]

	lower, upper, hasComma := strings.Cut(inner, ",")
	if !hasComma {
		if !r.minInclusive || !r.maxInclusive || canonical(inner) == "" {
			return r, invalid
		}
		r.min, r.max = strings.TrimSpace(inner), strings.TrimSpace(inner)
		return r, nil
	}

	r.min, r.max = strings.TrimSpace(lower), strings.TrimSpace(upper)
	for _, v := range []string{r.min, r.max} {
		if v != "" && canonical(v) == "" {
			return r, invalid
		}
	}
	if r.min != "" && r.max != "" && compareVersions(r.min, r.max) > 0 {
		return r, invalid
	}
	return r, nil
}

// hasLowerBound reports whether the range is bounded from below inclusively.
func (r versionRange) hasLowerBound() bool {
	return r.min != "" && r.minInclusive
}

// isExact reports whether the range pins a single version.
func (r versionRange) isExact() bool {
	return r.min != "" && r.min == r.max && r.minInclusive && r.maxInclusive
}

func (r versionRange) satisfies(v string) bool {
	if canonical(v) == "" {
		return false
	}
	if isPrerelease(v) && (r.min == "" || !isPrerelease(r.min)) && !strings.Contains(r.floating, "-") {
		return false
	}
	if r.floating != "" && !strings.HasPrefix(strings.ToLower(v), strings.ToLower(r.floating)) {
		return false
	}
	if r.min != "" {
		c := compareVersions(v, r.min)
		if c < 0 || (c == 0 && !r.minInclusive) {
			return false
		}
	}
	if r.max != "" {
		c := compareVersions(v, r.max)
		if c > 0 || (c == 0 && !r.maxInclusive) {
			return false
		}
	}
	return true
}

// best picks the version a restore resolves to: the highest match of a floating
// range, otherwise the lowest applicable version.
func (r versionRange) best(versions []string) (string, bool) {
	var matches []string
	for _, v := range versions {
		if r.satisfies(v) {
			matches = append(matches, v)
		}
	}
	if len(matches) == 0 {
		return "", false
	}
	slices.SortFunc(matches, compareVersions)
	if r.floating != "" {
		return matches[len(matches)-1], true
	}
	return matches[0], true
}

func (r versionRange) String() string {
	switch {
	case r.text == "" || r.text == "*" || r.text == domain.AllVersions:
		return "(, )"
	case r.isExact():
		return "= " + r.min
	case r.floating != "":
		return r.text
	}
	var parts []string
	if r.min != "" {
		op := "> "
		if r.minInclusive {
			op = ">= "
		}
		parts = append(parts, op+r.min)
	}
	if r.max != "" {
		op := "< "
		if r.maxInclusive {
			op = "<= "
		}
		parts = append(parts, op+r.max)
	}
	return strings.Join(parts, " && ")
}
