package repl

import (
	"maps"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/scopelet/lang"
)

// ctrlCommands are the commands available with a leading ':'.
var ctrlCommands = []string{":help", ":paths", ":program", ":clear", ":quit"}

// keywords are the directive keywords offered after "{.".
var keywords = lang.Keywords()

// Directive delimiters and the keywords that take a path argument.
const (
	openBrace  = "{"
	closeBrace = "}"

	sectionKeyword = ".section"
	repeatKeyword  = ".repeat"
)

// wordKind classifies what the word at the cursor completes to.
type wordKind int

const (
	wordNone wordKind = iota
	wordCommand
	wordKeyword
	wordPath
)

// word is the completable text around the cursor.
type word struct {
	kind       wordKind
	text       string
	parent     string // dotted path leading up to text, for wordPath
	start, end int    // byte bounds of text in the input
}

// isIdentRune reports whether r may appear in a path segment.
func isIdentRune(r rune) bool {
	return r == '_' || r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// identEnd returns the byte offset of the end of the identifier run starting
// at offset.
func identEnd(input string, offset int) int {
	for offset < len(input) {
		r, size := utf8.DecodeRuneInString(input[offset:])
		if !isIdentRune(r) {
			break
		}

		offset += size
	}

	return offset
}

// locate finds the word at cursor that completion applies to.
// Outside a directive only a leading ':' command is completable.
func locate(input string, cursor int) word {
	cursor = min(max(cursor, 0), len(input))

	if strings.HasPrefix(input, ":") {
		end := strings.IndexAny(input, " \t")
		if end < 0 {
			end = len(input)
		}

		if cursor > end {
			return word{}
		}

		return word{kind: wordCommand, text: input[:end], start: 0, end: end}
	}

	open := strings.LastIndex(input[:cursor], openBrace)
	if open < 0 || strings.Contains(input[open:cursor], closeBrace) {
		return word{}
	}

	bodyStart := open + len(openBrace)
	body := input[bodyStart:cursor]

	if strings.HasPrefix(body, ".") {
		if !strings.ContainsFunc(body, unicode.IsSpace) {
			end := identEnd(input, bodyStart+1)

			return word{
				kind:  wordKeyword,
				text:  input[bodyStart:end],
				start: bodyStart,
				end:   end,
			}
		}

		keyword, _, _ := strings.Cut(body, " ")
		if keyword != sectionKeyword && keyword != repeatKeyword {
			return word{}
		}

		bodyStart += len(keyword)
		for bodyStart < cursor && input[bodyStart] == ' ' {
			bodyStart++
		}

		body = input[bodyStart:cursor]
	}

	if strings.ContainsFunc(body, unicode.IsSpace) {
		return word{}
	}

	w := word{kind: wordPath, start: bodyStart}

	if dot := strings.LastIndexByte(body, '.'); dot >= 0 {
		w.parent = body[:dot]
		w.start = bodyStart + dot + 1
	}

	w.end = identEnd(input, cursor)
	w.text = input[w.start:w.end]

	return w
}

// childNames returns the names reachable one step below the value at the
// dotted parent path in data. The root also offers the self reference.
func childNames(data any, parent string) []string {
	v := data

	if parent != "" {
		var ok bool

		if v, ok = lang.NewScope(data).Resolve(parent); !ok {
			return nil
		}
	}

	var names []string

	switch x := v.(type) {
	case map[string]any:
		names = slices.Sorted(maps.Keys(x))

	case []any:
		for i := range x {
			names = append(names, strconv.Itoa(i))
		}
	}

	if parent == "" {
		names = append(names, lang.Self)
	}

	return names
}

// paths lists every dotted path in data in depth-first order.
func paths(data any) []string {
	var out []string

	var walk func(prefix string, v any)

	walk = func(prefix string, v any) {
		m, ok := v.(map[string]any)
		if !ok {
			return
		}

		for _, key := range slices.Sorted(maps.Keys(m)) {
			path := key
			if prefix != "" {
				path = prefix + "." + key
			}

			out = append(out, path)
			walk(path, m[key])
		}
	}

	walk("", data)

	return out
}

// candidates returns the completion candidates for w.
func candidates(data any, w word) []string {
	switch w.kind {
	case wordCommand:
		return ctrlCommands

	case wordKeyword:
		return keywords

	case wordPath:
		return childNames(data, w.parent)

	default:
		return nil
	}
}

// computeMatches calculates the fuzzy match results for the word at the
// cursor, ranked best first. An empty word after a dot lists every child so
// members can be browsed.
func (m model) computeMatches() (fuzzy.Matches, word) {
	w := locate(m.input.Value(), m.input.Position())

	cands := candidates(m.data, w)
	if len(cands) == 0 {
		return nil, w
	}

	if w.text == "" {
		if w.kind != wordPath || w.parent == "" {
			return nil, w
		}

		matches := make(fuzzy.Matches, len(cands))
		for i, c := range cands {
			matches[i] = fuzzy.Match{Str: c, Index: i}
		}

		return matches, w
	}

	return fuzzy.Find(w.text, cands), w
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within width.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	ellipsis := hintStyle.Render("...")
	reserve := lipgloss.Width(sep) + lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)
		w := lipgloss.Width(rendered)

		if i > 0 {
			w += lipgloss.Width(sep)

			last := i == len(matches)-1
			if used+w > width || (!last && used+w+reserve > width) {
				b.WriteString(sep)
				b.WriteString(ellipsis)

				break
			}

			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += w
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, matchStyle
	if selected {
		base, highlight = selectedStyle, selectedMatchStyle
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	return b.String()
}
