package document

import (
	"encoding/json"
)

// Every node marshals with a "type" tag so consumers can switch on it.

func (h Heading) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type   string   `json:"type"`
		Level  int      `json:"level"`
		Inline []Inline `json:"inline"`
	}{KindHeading.String(), h.Level, nonNil(h.Inline)})
}

func (p Paragraph) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type   string   `json:"type"`
		Inline []Inline `json:"inline"`
	}{KindParagraph.String(), nonNil(p.Inline)})
}

func (l List) MarshalJSON() ([]byte, error) {
	items := make([][]Inline, len(l.Items))
	for i, it := range l.Items {
		items[i] = nonNil(it)
	}
	return json.Marshal(struct {
		Type    string     `json:"type"`
		Ordered bool       `json:"ordered"`
		Items   [][]Inline `json:"items"`
	}{KindList.String(), l.Ordered, items})
}

func (c CodeBlock) MarshalJSON() ([]byte, error) {
	lines := c.Lines
	if lines == nil {
		lines = []string{}
	}
	return json.Marshal(struct {
		Type     string   `json:"type"`
		Language string   `json:"language"`
		Lines    []string `json:"lines"`
	}{KindCodeBlock.String(), c.Language, lines})
}

func (c CodeLine) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Code string `json:"code"`
	}{KindCodeLine.String(), c.Code})
}

func (q Blockquote) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type   string   `json:"type"`
		Inline []Inline `json:"inline"`
	}{KindBlockquote.String(), nonNil(q.Inline)})
}

func (HorizontalRule) MarshalJSON() ([]byte, error) {
	return typeOnly(KindHorizontalRule.String())
}

func (t Table) MarshalJSON() ([]byte, error) {
	header := t.HeaderCells
	if header == nil {
		header = []string{}
	}
	rows := t.Rows
	if rows == nil {
		rows = [][]string{}
	}
	return json.Marshal(struct {
		Type        string     `json:"type"`
		HeaderCells []string   `json:"headerCells"`
		Rows        [][]string `json:"rows"`
	}{KindTable.String(), header, rows})
}

func (m MathBlock) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type       string `json:"type"`
		Expression string `json:"expression"`
	}{KindMathBlock.String(), m.Expression})
}

func (Spacer) MarshalJSON() ([]byte, error) {
	return typeOnly(KindSpacer.String())
}

func (t Text) MarshalJSON() ([]byte, error)   { return valueNode(KindText, t.Value) }
func (b Bold) MarshalJSON() ([]byte, error)   { return valueNode(KindBold, b.Value) }
func (i Italic) MarshalJSON() ([]byte, error) { return valueNode(KindItalic, i.Value) }
func (c Code) MarshalJSON() ([]byte, error)   { return valueNode(KindCode, c.Value) }

func (l Link) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"type"`
		Label string `json:"label"`
		URL   string `json:"url"`
	}{KindLink.String(), l.Label, l.URL})
}

func valueNode(k InlineKind, v string) ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	}{k.String(), v})
}

func typeOnly(t string) ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
	}{t})
}

func nonNil(in []Inline) []Inline {
	if in == nil {
		return []Inline{}
	}
	return in
}
