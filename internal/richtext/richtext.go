// Package richtext описывает структурированное содержимое комментария:
// дерево узлов в духе ProseMirror (doc -> paragraph -> text с marks).
package richtext

import (
	"errors"
	"fmt"
	"strings"
)

// Типы узлов, которые понимает виджет комментариев.
const (
	TypeDoc            = "doc"
	TypeParagraph      = "paragraph"
	TypeText           = "text"
	TypeHeading        = "heading"
	TypeBulletList     = "bulletList"
	TypeOrderedList    = "orderedList"
	TypeListItem       = "listItem"
	TypeBlockquote     = "blockquote"
	TypeCodeBlock      = "codeBlock"
	TypeHardBreak      = "hardBreak"
	TypeHorizontalRule = "horizontalRule"
	TypeImage          = "image"
)

// MaxNesting — предельная вложенность узлов документа.
const MaxNesting = 16

var (
	// ErrInvalidDocument — корень не doc или нарушена структура.
	ErrInvalidDocument = errors.New("invalid rich text document")
	// ErrUnknownNode — встретился неизвестный тип узла.
	ErrUnknownNode = errors.New("unknown rich text node")
	// ErrTooDeep — превышена MaxNesting.
	ErrTooDeep = errors.New("rich text document is nested too deep")
)

var knownTypes = map[string]struct{}{
	TypeDoc: {}, TypeParagraph: {}, TypeText: {}, TypeHeading: {},
	TypeBulletList: {}, TypeOrderedList: {}, TypeListItem: {},
	TypeBlockquote: {}, TypeCodeBlock: {}, TypeHardBreak: {},
	TypeHorizontalRule: {}, TypeImage: {},
}

// Mark — форматирование текстового узла (bold, italic, link, ...).
type Mark struct {
	Type  string         `json:"type" bson:"type"`
	Attrs map[string]any `json:"attrs,omitempty" bson:"attrs,omitempty"`
}

// Node — узел документа.
type Node struct {
	Type    string         `json:"type" bson:"type"`
	Attrs   map[string]any `json:"attrs,omitempty" bson:"attrs,omitempty"`
	Content []Node         `json:"content,omitempty" bson:"content,omitempty"`
	Text    string         `json:"text,omitempty" bson:"text,omitempty"`
	Marks   []Mark         `json:"marks,omitempty" bson:"marks,omitempty"`
}

// Document — корневой узел (Type == "doc").
type Document = Node

// FromPlainText строит документ из обычного текста: каждая строка — отдельный параграф.
func FromPlainText(s string) Document {
	doc := Document{Type: TypeDoc}

	for _, line := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		p := Node{Type: TypeParagraph}
		if line != "" {
			p.Content = []Node{{Type: TypeText, Text: line}}
		}
		doc.Content = append(doc.Content, p)
	}

	return doc
}

// PlainText возвращает текст документа; блоки разделяются переводом строки.
func PlainText(doc Document) string {
	var b strings.Builder
	writePlain(&b, doc)

	return strings.TrimRight(b.String(), "\n")
}

func writePlain(b *strings.Builder, n Node) {
	switch n.Type {
	case TypeText:
		b.WriteString(n.Text)
		return
	case TypeHardBreak:
		b.WriteString("\n")
		return
	}

	for _, child := range n.Content {
		writePlain(b, child)
	}

	switch n.Type {
	case TypeParagraph, TypeHeading, TypeCodeBlock, TypeListItem:
		b.WriteString("\n")
	}
}

// IsEmpty — в документе нет ни текста, ни встроенных объектов (image, hr).
func IsEmpty(doc Document) bool {
	return isEmpty(doc)
}

func isEmpty(n Node) bool {
	switch n.Type {
	case TypeText:
		return strings.TrimSpace(n.Text) == ""
	case TypeImage, TypeHorizontalRule:
		return false
	}

	for _, child := range n.Content {
		if !isEmpty(child) {
			return false
		}
	}

	return true
}

// Validate проверяет, что документ можно сохранить:
// корень — doc, все узлы известны, вложенность не больше MaxNesting,
// у текстовых узлов нет детей.
func Validate(doc Document) error {
	if doc.Type != TypeDoc {
		return fmt.Errorf("%w: root type %q", ErrInvalidDocument, doc.Type)
	}

	return validate(doc, 0)
}

func validate(n Node, depth int) error {
	if depth > MaxNesting {
		return ErrTooDeep
	}

	if _, ok := knownTypes[n.Type]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNode, n.Type)
	}

	if depth > 0 && n.Type == TypeDoc {
		return fmt.Errorf("%w: nested doc", ErrInvalidDocument)
	}

	if n.Type == TypeText && len(n.Content) > 0 {
		return fmt.Errorf("%w: text node with children", ErrInvalidDocument)
	}

	for _, child := range n.Content {
		if err := validate(child, depth+1); err != nil {
			return err
		}
	}

	return nil
}
