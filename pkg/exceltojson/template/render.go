package template

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/lsk2017/ExcelToJson/pkg/exceltojson/models"
)

// ErrNoSetLoopBlock indicates a column whose type has no property-set loop
// and no default block to fall back to.
var ErrNoSetLoopBlock = errors.New("no property-set loop for column type")

// Result is a rendered template.
type Result struct {
	// Text is the generated source.
	Text string
	// Extension is the output file extension, without the dot.
	Extension string
}

// Empty reports whether nothing was generated.
func (r Result) Empty() bool {
	return r.Extension == ""
}

// Render expands the template for one sheet schema.
func (t *Template) Render(s models.SheetSchema) (Result, error) {
	if t.Empty() {
		return Result{}, nil
	}

	cols := s.Columns()
	assigned, err := t.dispatch(s.Name, cols)
	if err != nil {
		return Result{}, err
	}

	var b strings.Builder
	for i, n := range t.nodes {
		switch n := n.(type) {
		case textNode:
			n.text.render(&b, s.Name, models.Column{})
		case propertyLoopNode:
			t.renderLines(&b, s.Name, n.indent, n.pattern, cols)
		case setLoopNode:
			t.renderLines(&b, s.Name, n.indent, n.pattern, assigned[i])
		}
	}

	return Result{Text: b.String(), Extension: t.extension}, nil
}

// dispatch assigns every column to the property-set loop of its type, or to
// the default loop. Templates without property-set loops take no columns.
func (t *Template) dispatch(sheet string, cols []models.Column) (map[int][]models.Column, error) {
	assigned := make(map[int][]models.Column)
	if len(t.setLoops) == 0 && t.defaultSet < 0 {
		return assigned, nil
	}

	for i, col := range cols {
		idx, ok := t.setLoops[col.Type]
		if !ok {
			if t.defaultSet < 0 {
				return nil, errors.WithHint(
					errors.Wrapf(ErrNoSetLoopBlock, "sheet %q column %d (%s %s)", sheet, i+1, col.Type, col.Member),
					"add $PROPERTY_SET_LOOP("+col.Type+")[...] or a default $PROPERTY_SET_LOOP[...] to the template",
				)
			}
			idx = t.defaultSet
		}
		assigned[idx] = append(assigned[idx], col)
	}
	return assigned, nil
}

// renderLines writes one line per column, separated by line breaks, with no
// break after the last line.
func (t *Template) renderLines(b *strings.Builder, sheet string, indent, p pattern, cols []models.Column) {
	for i, col := range cols {
		if i > 0 {
			b.WriteString(t.eol)
		}
		indent.render(b, sheet, col)
		p.render(b, sheet, col)
	}
}

// Expand parses text and renders it for s.
func Expand(text string, s models.SheetSchema) (Result, error) {
	t, err := Parse(text)
	if err != nil {
		return Result{}, err
	}
	return t.Render(s)
}
