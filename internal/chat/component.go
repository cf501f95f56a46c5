// Package chat decodes JSON chat components and renders them as plain text or
// ANSI-styled terminal text.
package chat

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidComponent = errors.New("chat: invalid component")

// Style is the formatting state of one component. Nil fields inherit from the
// parent.
type Style struct {
	Color         string `json:"color,omitempty"`
	Bold          *bool  `json:"bold,omitempty"`
	Italic        *bool  `json:"italic,omitempty"`
	Underlined    *bool  `json:"underlined,omitempty"`
	Strikethrough *bool  `json:"strikethrough,omitempty"`
	Obfuscated    *bool  `json:"obfuscated,omitempty"`
}

// Component is one node of a chat message tree.
type Component struct {
	Style
	Text      string      `json:"text,omitempty"`
	Translate string      `json:"translate,omitempty"`
	With      []Component `json:"with,omitempty"`
	Extra     []Component `json:"extra,omitempty"`
}

// Parse accepts the encodings a component may take on the wire: a bare
// string, an array (first element is the parent of the rest) or an object.
// null is an empty component.
func Parse(raw []byte) (Component, error) {
	var c Component
	if err := json.Unmarshal(raw, &c); err != nil {
		return Component{}, fmt.Errorf("%w: %v", ErrInvalidComponent, err)
	}
	return c, nil
}

func (c *Component) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ErrInvalidComponent
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Component{Text: s}
		return nil
	case '[':
		var parts []Component
		if err := json.Unmarshal(data, &parts); err != nil {
			return err
		}
		if len(parts) == 0 {
			*c = Component{}
			return nil
		}
		head := parts[0]
		head.Extra = append(head.Extra, parts[1:]...)
		*c = head
		return nil
	case 'n':
		if bytes.Equal(data, []byte("null")) {
			*c = Component{}
			return nil
		}
		return ErrInvalidComponent
	case '{':
		type plain Component
		var p plain
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		*c = Component(p)
		return nil
	default:
		// Numbers and booleans show up as translation arguments.
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*c = Component{Text: fmt.Sprint(v)}
		return nil
	}
}

// Plain renders the component tree without styling.
func (c Component) Plain() string {
	var b strings.Builder
	c.walk(Style{}, func(text string, _ Style) {
		b.WriteString(text)
	})
	return b.String()
}

// walk visits text segments in order with the effective style of each.
func (c Component) walk(parent Style, visit func(text string, style Style)) {
	style := inherit(parent, c.Style)
	if c.Translate != "" {
		translate(c.Translate, len(c.With),
			func(text string) { visit(text, style) },
			func(i int) { c.With[i].walk(style, visit) })
	} else if c.Text != "" {
		visit(c.Text, style)
	}
	for _, child := range c.Extra {
		child.walk(style, visit)
	}
}

func inherit(parent, child Style) Style {
	out := parent
	if child.Color != "" {
		out.Color = child.Color
	}
	if child.Bold != nil {
		out.Bold = child.Bold
	}
	if child.Italic != nil {
		out.Italic = child.Italic
	}
	if child.Underlined != nil {
		out.Underlined = child.Underlined
	}
	if child.Strikethrough != nil {
		out.Strikethrough = child.Strikethrough
	}
	if child.Obfuscated != nil {
		out.Obfuscated = child.Obfuscated
	}
	return out
}
