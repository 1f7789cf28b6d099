package organize

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Rule binds a category to the extensions it claims.
type Rule struct {
	Category   Category
	Extensions []string
}

// Table is an immutable extension to category mapping with an explicit
// fallback. Build one with NewTable or use DefaultTable.
type Table struct {
	rules    []Rule
	index    map[string]Category
	fallback Category
}

var defaultRules = []Rule{
	{Images, []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tiff", ".webp", ".svg", ".heic", ".avif"}},
	{Documents, []string{".pdf", ".doc", ".docx", ".txt", ".rtf", ".md", ".xls", ".xlsx", ".ppt", ".pptx", ".csv", ".odt", ".ods", ".odp"}},
	{Videos, []string{".mp4", ".mkv", ".mov", ".avi", ".wmv", ".flv", ".webm", ".m4v"}},
	{Audio, []string{".mp3", ".wav", ".flac", ".aac", ".ogg", ".m4a", ".wma"}},
	{Archives, []string{".zip", ".rar", ".7z", ".tar", ".gz", ".bz2", ".xz", ".tar.gz", ".tar.bz2", ".tar.xz"}},
	{Installers, []string{".exe", ".msi", ".pkg", ".dmg"}},
	{Code, []string{
		".py", ".ipynb", ".js", ".ts", ".tsx", ".jsx", ".java", ".c", ".h", ".cpp", ".hpp", ".cs", ".rb", ".go",
		".php", ".sh", ".bat", ".ps1", ".html", ".css", ".scss", ".json", ".yml", ".yaml", ".xml", ".toml", ".ini", ".cfg",
	}},
}

var defaultTable = mustTable(defaultRules, Other)

// DefaultTable returns the built-in category table. The value is shared and
// must not be modified; Table exposes no mutators.
func DefaultTable() *Table {
	return defaultTable
}

// DefaultRules returns a copy of the built-in rules.
func DefaultRules() []Rule {
	return copyRules(defaultRules)
}

func mustTable(rules []Rule, fallback Category) *Table {
	t, err := NewTable(rules, fallback)
	if err != nil {
		panic(err)
	}
	return t
}

// NewTable validates rules and builds a table. An extension claimed by two
// categories is rejected with ErrOverlappingExtension instead of being
// resolved by rule order.
func NewTable(rules []Rule, fallback Category) (*Table, error) {
	if !fallback.Valid() {
		return nil, fmt.Errorf("fallback category %q is not a valid directory name", fallback)
	}
	t := &Table{
		rules:    make([]Rule, 0, len(rules)),
		index:    make(map[string]Category),
		fallback: fallback,
	}
	seen := map[Category]bool{fallback: true}
	for _, rule := range rules {
		if !rule.Category.Valid() {
			return nil, fmt.Errorf("category %q is not a valid directory name", rule.Category)
		}
		if seen[rule.Category] {
			return nil, fmt.Errorf("category %q declared twice", rule.Category)
		}
		seen[rule.Category] = true

		exts := make([]string, 0, len(rule.Extensions))
		for _, raw := range rule.Extensions {
			ext := NormalizeExtension(strings.TrimSpace(raw))
			if ext == "" || ext == "." || strings.ContainsAny(ext, `/\`) {
				return nil, fmt.Errorf("category %q: invalid extension %q", rule.Category, raw)
			}
			if owner, ok := t.index[ext]; ok {
				if owner == rule.Category {
					continue
				}
				return nil, fmt.Errorf("%w: %q claimed by %s and %s", ErrOverlappingExtension, ext, owner, rule.Category)
			}
			t.index[ext] = rule.Category
			exts = append(exts, ext)
		}
		t.rules = append(t.rules, Rule{Category: rule.Category, Extensions: exts})
	}
	return t, nil
}

// NormalizeExtension lower-cases ext and ensures a single leading dot.
// Empty input stays empty. Whitespace is kept: "x.png " does not end in
// ".png".
func NormalizeExtension(ext string) string {
	if ext == "" {
		return ""
	}
	ext = cases.Lower(language.Und).String(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// Classify maps an extension to its category, case-insensitively. Unknown
// and empty extensions map to the fallback.
func (t *Table) Classify(ext string) Category {
	if c, ok := t.index[NormalizeExtension(ext)]; ok {
		return c
	}
	return t.fallback
}

// Match finds the longest known extension token of a file name, so
// "archive.tar.gz" matches ".tar.gz" before ".gz". A leading dot does not
// start an extension. When no token is known the last extension is
// returned with the fallback category.
func (t *Table) Match(name string) (string, Category) {
	if i := t.knownSuffix(name); i > 0 {
		ext := NormalizeExtension(name[i:])
		return ext, t.index[ext]
	}
	return NormalizeExtension(Extension(name)), t.fallback
}

// SplitName splits a file name into stem and extension using the same
// token Match would pick, keeping the original spelling.
func (t *Table) SplitName(name string) (string, string) {
	if i := t.knownSuffix(name); i > 0 {
		return name[:i], name[i:]
	}
	ext := Extension(name)
	return name[:len(name)-len(ext)], ext
}

func (t *Table) knownSuffix(name string) int {
	for i := 1; i < len(name)-1; i++ {
		if name[i] != '.' {
			continue
		}
		if _, ok := t.index[NormalizeExtension(name[i:])]; ok {
			return i
		}
	}
	return -1
}

// Fallback returns the category used for unmatched extensions.
func (t *Table) Fallback() Category {
	return t.fallback
}

// Rules returns a copy of the table rules in declaration order.
func (t *Table) Rules() []Rule {
	return copyRules(t.rules)
}

// Categories lists rule categories in order followed by the fallback.
func (t *Table) Categories() []Category {
	out := make([]Category, 0, len(t.rules)+1)
	for _, r := range t.rules {
		out = append(out, r.Category)
	}
	return append(out, t.fallback)
}

// Extension returns the suffix after the last dot of name, ignoring a
// leading dot. It returns "" when there is none.
func Extension(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return ""
	}
	return name[i:]
}

func copyRules(in []Rule) []Rule {
	out := make([]Rule, len(in))
	for i, r := range in {
		out[i] = Rule{Category: r.Category, Extensions: append([]string(nil), r.Extensions...)}
	}
	return out
}
