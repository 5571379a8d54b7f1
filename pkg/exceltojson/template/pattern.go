package template

import (
	"regexp"
	"strings"

	"github.com/lsk2017/ExcelToJson/pkg/exceltojson/models"
)

// Placeholders recognised inside text and loop patterns.
const (
	TokenSheetName    = "$SHEET_NAME"
	TokenPropertyType = "$PROPERTY_TYPE"
	TokenPropertyName = "$PROPERTY_NAME"
)

var (
	sheetNameRe    = regexp.MustCompile(regexp.QuoteMeta(TokenSheetName))
	patternTokenRe = regexp.MustCompile(`\$(SHEET_NAME|PROPERTY_TYPE|PROPERTY_NAME)`)
)

type segmentKind int

const (
	segText segmentKind = iota
	segSheetName
	segPropertyType
	segPropertyName
)

type segment struct {
	kind segmentKind
	text string
}

// pattern is a piece of template text split at its placeholders.
type pattern []segment

// compileText splits literal template text. Only $SHEET_NAME is a
// placeholder outside loop patterns.
func compileText(s string) pattern {
	return compile(s, sheetNameRe)
}

// compileLoop splits a loop pattern.
func compileLoop(s string) pattern {
	return compile(s, patternTokenRe)
}

func compile(s string, re *regexp.Regexp) pattern {
	var p pattern
	last := 0
	for _, loc := range re.FindAllStringIndex(s, -1) {
		if loc[0] > last {
			p = append(p, segment{kind: segText, text: s[last:loc[0]]})
		}
		switch s[loc[0]:loc[1]] {
		case TokenSheetName:
			p = append(p, segment{kind: segSheetName})
		case TokenPropertyType:
			p = append(p, segment{kind: segPropertyType})
		case TokenPropertyName:
			p = append(p, segment{kind: segPropertyName})
		}
		last = loc[1]
	}
	if last < len(s) {
		p = append(p, segment{kind: segText, text: s[last:]})
	}
	return p
}

// render writes the pattern. Substituted values are written verbatim and
// never scanned for placeholders again.
func (p pattern) render(b *strings.Builder, sheet string, col models.Column) {
	for _, seg := range p {
		switch seg.kind {
		case segText:
			b.WriteString(seg.text)
		case segSheetName:
			b.WriteString(sheet)
		case segPropertyType:
			b.WriteString(col.Type)
		case segPropertyName:
			b.WriteString(col.Member)
		}
	}
}
