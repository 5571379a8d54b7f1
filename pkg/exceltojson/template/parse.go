// Package template expands the code-generation template of a sheet.
//
// A template is plain text with these tokens:
//
//	$EXTENSION(ext)                    output file extension, removed from the text
//	$SHEET_NAME                        the sheet name
//	$PROPERTY_LOOP[pattern]            one line per column
//	$PROPERTY_SET_LOOP(type)[pattern]  one line per column of that type
//	$PROPERTY_SET_LOOP[pattern]        one line per column without a typed block
//
// Inside a pattern $PROPERTY_TYPE and $PROPERTY_NAME are replaced by the
// column's type tag and member name. The text in front of a loop token on its
// line is the indent and is repeated on every rendered line. A pattern runs to
// the last ']' on the line, so a line holds at most one loop token.
package template

import (
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	// ErrDuplicateSetLoop indicates two typed property-set loops for one type.
	ErrDuplicateSetLoop = errors.New("duplicate property-set loop")
	// ErrDuplicateDefaultSetLoop indicates more than one default property-set loop.
	ErrDuplicateDefaultSetLoop = errors.New("duplicate default property-set loop")
	// ErrMultipleLoops indicates more than one loop token on a line.
	ErrMultipleLoops = errors.New("more than one loop on a line")
)

var (
	extensionRe      = regexp.MustCompile(`\$EXTENSION\((.+?)\)`)
	propertyLoopRe   = regexp.MustCompile(`^(.*?)\$PROPERTY_LOOP\[(.+)\](.*)$`)
	typedSetLoopRe   = regexp.MustCompile(`^(.*?)\$PROPERTY_SET_LOOP\((.+?)\)\[(.+)\](.*)$`)
	defaultSetLoopRe = regexp.MustCompile(`^(.*?)\$PROPERTY_SET_LOOP\[(.+)\](.*)$`)
	loopTokenRe      = regexp.MustCompile(`\$PROPERTY_(?:SET_)?LOOP[\[(]`)
)

type node interface{}

type textNode struct {
	text pattern
}

type propertyLoopNode struct {
	indent  pattern
	pattern pattern
}

type setLoopNode struct {
	typ     string // empty for the default block
	indent  pattern
	pattern pattern
}

// Template is a parsed template document. It is immutable and may be
// rendered for any number of sheets concurrently.
type Template struct {
	extension  string
	eol        string
	nodes      []node
	setLoops   map[string]int // type tag -> node index
	defaultSet int            // node index, -1 when absent
}

// Parse parses template text.
//
// Text without an $EXTENSION token yields an empty template that renders
// nothing.
func Parse(text string) (*Template, error) {
	t := &Template{
		setLoops:   make(map[string]int),
		defaultSet: -1,
	}

	m := extensionRe.FindStringSubmatch(text)
	if m == nil {
		return t, nil
	}
	t.extension = m[1]
	text = extensionRe.ReplaceAllLiteralString(text, "")

	t.eol = "\n"
	if strings.Contains(text, "\r\n") {
		t.eol = "\r\n"
	}

	lineNo := 0
	for len(text) > 0 {
		lineNo++
		line, term := text, ""
		if i := strings.IndexByte(text, '\n'); i >= 0 {
			line, term, text = text[:i], "\n", text[i+1:]
			if strings.HasSuffix(line, "\r") {
				line, term = line[:len(line)-1], "\r\n"
			}
		} else {
			text = ""
		}

		if err := t.parseLine(line, lineNo); err != nil {
			return nil, err
		}
		if term != "" {
			t.nodes = append(t.nodes, textNode{text: pattern{{kind: segText, text: term}}})
		}
	}
	return t, nil
}

// parseLine appends the nodes of one line, without its terminator.
func (t *Template) parseLine(line string, lineNo int) error {
	if len(loopTokenRe.FindAllStringIndex(line, 2)) > 1 {
		return errors.Wrapf(ErrMultipleLoops, "line %d", lineNo)
	}
	loop, rest, ok := matchLoop(line)
	if !ok {
		if line != "" {
			t.nodes = append(t.nodes, textNode{text: compileText(line)})
		}
		return nil
	}

	if n, isSet := loop.(setLoopNode); isSet {
		if n.typ == "" {
			if t.defaultSet >= 0 {
				return errors.Wrapf(ErrDuplicateDefaultSetLoop, "line %d", lineNo)
			}
			t.defaultSet = len(t.nodes)
		} else {
			if _, dup := t.setLoops[n.typ]; dup {
				return errors.Wrapf(ErrDuplicateSetLoop, "type %q on line %d", n.typ, lineNo)
			}
			t.setLoops[n.typ] = len(t.nodes)
		}
	}
	t.nodes = append(t.nodes, loop)

	if rest != "" {
		t.nodes = append(t.nodes, textNode{text: compileText(rest)})
	}
	return nil
}

// matchLoop finds the first loop token on a line. rest is the text after
// the pattern's closing bracket.
func matchLoop(line string) (loop node, rest string, ok bool) {
	best := -1

	if m := propertyLoopRe.FindStringSubmatch(line); m != nil {
		best = len(m[1])
		loop = propertyLoopNode{indent: compileText(m[1]), pattern: compileLoop(m[2])}
		rest = m[3]
	}
	if m := typedSetLoopRe.FindStringSubmatch(line); m != nil && (best < 0 || len(m[1]) < best) {
		best = len(m[1])
		loop = setLoopNode{typ: m[2], indent: compileText(m[1]), pattern: compileLoop(m[3])}
		rest = m[4]
	}
	if m := defaultSetLoopRe.FindStringSubmatch(line); m != nil && (best < 0 || len(m[1]) < best) {
		best = len(m[1])
		loop = setLoopNode{indent: compileText(m[1]), pattern: compileLoop(m[2])}
		rest = m[3]
	}
	return loop, rest, best >= 0
}

// Extension returns the output file extension.
func (t *Template) Extension() string {
	return t.extension
}

// Empty reports whether the template has no $EXTENSION token and therefore
// produces no output.
func (t *Template) Empty() bool {
	return t.extension == ""
}
