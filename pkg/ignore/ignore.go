package ignore

import (
	"errors"
	"io/fs"
	"path"
	"strings"

	f2errors "github.com/arthur-debert/f2llm/pkg/errors"
	"github.com/arthur-debert/f2llm/pkg/logging"
	"github.com/arthur-debert/f2llm/pkg/types"
)

// DefaultFileName is the rule file read from the root of a scanned tree.
const DefaultFileName = ".gitignore"

// ImplicitRules are always in effect, whatever the rule file says. The
// .git rule is dir-only, so nested repositories are skipped as well.
var ImplicitRules = []string{".git/"}

// Kind tells how a rule's pattern is applied to a candidate path.
type Kind int

const (
	// KindBasename matches the final path segment.
	KindBasename Kind = iota
	// KindAnchored matches the whole relative path.
	KindAnchored
	// KindDirOnly matches any single segment (or, for patterns holding a
	// separator, any leading run of segments).
	KindDirOnly
)

func (k Kind) String() string {
	switch k {
	case KindBasename:
		return "basename"
	case KindAnchored:
		return "anchored"
	case KindDirOnly:
		return "dir"
	default:
		return "unknown"
	}
}

// Rule is one compiled ignore line.
type Rule struct {
	// Source is the trimmed line the rule was compiled from.
	Source  string
	Pattern string
	Kind    Kind
}

// Matcher is an ordered, immutable set of rules.
type Matcher struct {
	rules []Rule
}

// Compile builds a Matcher from raw rule lines. Blank lines and comments are
// discarded; surrounding whitespace is trimmed.
func Compile(lines []string) *Matcher {
	m := &Matcher{}
	for _, line := range lines {
		if r, ok := compileRule(line); ok {
			m.rules = append(m.rules, r)
		}
	}
	return m
}

// New builds a Matcher holding ImplicitRules followed by lines.
func New(lines []string) *Matcher {
	all := make([]string, 0, len(ImplicitRules)+len(lines))
	all = append(all, ImplicitRules...)
	all = append(all, lines...)
	return Compile(all)
}

// Load reads a rule file and returns New over its lines. A missing file is
// not an error: the result then holds only ImplicitRules.
func Load(fsys types.FS, filename string) (*Matcher, error) {
	logger := logging.GetLogger("ignore")

	data, err := fsys.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug().Str("file", filename).Msg("No ignore file, using implicit rules only")
			return New(nil), nil
		}
		return nil, f2errors.Wrapf(err, f2errors.ErrFileRead, "failed to read ignore file %s", filename).
			WithDetail("path", filename)
	}

	m := New(strings.Split(string(data), "\n"))
	for _, r := range m.Rules() {
		logger.Trace().Str("rule", r.Source).Stringer("kind", r.Kind).Msg("Ignore rule")
	}
	logger.Debug().
		Str("file", filename).
		Int("rules", m.Len()).
		Msg("Loaded ignore rules")
	return m, nil
}

func compileRule(line string) (Rule, bool) {
	line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
	if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
		return Rule{}, false
	}

	r := Rule{Source: line}
	pattern := line

	switch {
	case strings.HasSuffix(pattern, "/"):
		r.Kind = KindDirOnly
		pattern = strings.TrimRight(pattern, "/")
		pattern = strings.TrimPrefix(pattern, "/")
	case strings.Contains(pattern, "/"):
		r.Kind = KindAnchored
		pattern = strings.TrimPrefix(pattern, "/")
	default:
		r.Kind = KindBasename
	}
	if pattern == "" {
		return Rule{}, false
	}
	r.Pattern = pattern
	return r, true
}

// With returns a new Matcher holding m's rules followed by lines.
func (m *Matcher) With(lines ...string) *Matcher {
	extra := Compile(lines)
	out := &Matcher{rules: make([]Rule, 0, len(m.rules)+len(extra.rules))}
	out.rules = append(out.rules, m.rules...)
	out.rules = append(out.rules, extra.rules...)
	return out
}

// Rules returns a copy of the compiled rules in source order.
func (m *Matcher) Rules() []Rule {
	return append([]Rule(nil), m.rules...)
}

// Len returns the number of compiled rules.
func (m *Matcher) Len() int {
	if m == nil {
		return 0
	}
	return len(m.rules)
}

// Match reports whether the slash-separated relative path rel is ignored.
// A nil Matcher ignores nothing.
func (m *Matcher) Match(rel string) bool {
	if m == nil {
		return false
	}
	rel = strings.Trim(strings.ReplaceAll(rel, "\\", "/"), "/")
	if rel == "" {
		return false
	}
	for _, r := range m.rules {
		if r.match(rel) {
			return true
		}
	}
	return false
}

func (r Rule) match(rel string) bool {
	switch r.Kind {
	case KindDirOnly:
		segments := strings.Split(rel, "/")
		if strings.Contains(r.Pattern, "/") {
			for i := range segments {
				if glob(r.Pattern, strings.Join(segments[:i+1], "/")) {
					return true
				}
			}
			return false
		}
		for _, seg := range segments {
			if glob(r.Pattern, seg) {
				return true
			}
		}
		return false
	case KindAnchored:
		return glob(r.Pattern, rel)
	default:
		return glob(r.Pattern, path.Base(rel))
	}
}

// glob is path.Match with malformed patterns treated as non-matching.
func glob(pattern, name string) bool {
	matched, err := path.Match(pattern, name)
	return err == nil && matched
}
