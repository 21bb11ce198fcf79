package models

import (
	"bytes"
	"encoding/json"
)

// Node is one element of a Storyblok rich-text tree. Container kinds carry
// Content, text leaves carry Text and Marks.
type Node struct {
	Type    string                 `json:"type"`
	Text    string                 `json:"text,omitempty"`
	Attrs   map[string]interface{} `json:"attrs,omitempty"`
	Marks   []Mark                 `json:"marks,omitempty"`
	Content []Node                 `json:"content,omitempty"`
}

// Mark is a formatting annotation on a text node.
type Mark struct {
	Type  string                 `json:"type"`
	Attrs map[string]interface{} `json:"attrs,omitempty"`
}

// Document holds the root of a rich-text field. The CDN sends "" (or null)
// for fields that were never edited; those decode to a nil Root.
type Document struct {
	Root *Node
}

func (d *Document) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		d.Root = nil
		return nil
	}
	var n Node
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return err
	}
	d.Root = &n
	return nil
}

func (d Document) MarshalJSON() ([]byte, error) {
	if d.Root == nil {
		return []byte("null"), nil
	}
	return json.Marshal(d.Root)
}
