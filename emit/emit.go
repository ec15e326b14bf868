// Package emit splices computed tables into a parser template by literal
// sentinel-string substitution, the emitter contract of spec.md §6.
package emit

import (
	"crypto/sha256"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Sentinel names recognized by Render, without their surrounding '%'
// delimiters.
const (
	SentinelParsingTable  = "parsing_table"
	SentinelStates        = "states"
	SentinelExpectedToken = "expected_tokens"
	SentinelPatterns      = "patterns"
	SentinelFilename      = "filename"
	SentinelReserved      = "reserved"
	SentinelID            = "id"
)

var knownSentinels = map[string]bool{
	SentinelParsingTable:  true,
	SentinelStates:        true,
	SentinelExpectedToken: true,
	SentinelPatterns:      true,
	SentinelFilename:      true,
	SentinelReserved:      true,
	SentinelID:            true,
}

// sentinelPattern matches a "%name%" run using the same bare identifier
// shape every sentinel in spec.md §6 uses.
var sentinelPattern = regexp.MustCompile(`%[A-Za-z_][A-Za-z0-9_]*%`)

const escapePlaceholder = "\x00"

// Values holds the rendered text for each sentinel, keyed by the bare name
// (without '%'). A Values with a zero-value field substitutes the empty
// string for that sentinel.
type Values map[string]string

// Render substitutes every "%name%" sentinel in tmpl with vals[name] via
// strings.Replacer — literal-to-literal substitution, not a templating
// language, per spec.md §6 and DESIGN.md's choice of strings.Replacer over
// text/template.
//
// A literal '%' that must survive untouched is written doubled ("%%") in
// tmpl. Any "%name%" run whose name is not a recognized sentinel is
// rejected rather than silently left in place or silently substituted,
// resolving spec.md §9's open question on sentinel collisions in favor of
// "escape or reject".
func Render(tmpl string, vals Values) (string, error) {
	protected := strings.ReplaceAll(tmpl, "%%", escapePlaceholder)

	for _, m := range sentinelPattern.FindAllString(protected, -1) {
		name := strings.Trim(m, "%")
		if !knownSentinels[name] {
			return "", fmt.Errorf("emit: unrecognized sentinel %q in template (escape a literal %% as %%%%)", m)
		}
	}

	pairs := make([]string, 0, len(knownSentinels)*2)
	names := make([]string, 0, len(knownSentinels))
	for n := range knownSentinels {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		pairs = append(pairs, "%"+n+"%", vals[n])
	}
	out := strings.NewReplacer(pairs...).Replace(protected)

	return strings.ReplaceAll(out, escapePlaceholder, "%"), nil
}

// buildNamespace is a fixed namespace UUID used to derive a stable %id%
// content hash from a serialized table's bytes, the way uuid.NewSHA1 is
// used elsewhere in the teacher for deterministic entity ids.
var buildNamespace = uuid.MustParse("6f6e6520-6c61-6c72-2067-656e206e7320")

// ContentID returns a stable, content-addressed identifier for the given
// serialized table bytes, suitable for the %id% sentinel.
func ContentID(tableBytes []byte) string {
	sum := sha256.Sum256(tableBytes)
	return uuid.NewSHA1(buildNamespace, sum[:]).String()
}
