// Package richtext turns Storyblok rich-text documents into HTML.
//
// Every node kind maps to one fixed markup rule. Kinds the renderer does not
// know produce no output and a warning on the renderer's logger. All text and
// attribute values are escaped; nothing else is sanitized.
package richtext

import (
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"tourly/pkg/models"

	"go.uber.org/zap"
)

// Node kinds of the Storyblok rich-text schema.
const (
	KindDoc            = "doc"
	KindText           = "text"
	KindParagraph      = "paragraph"
	KindHeading        = "heading"
	KindBulletList     = "bullet_list"
	KindOrderedList    = "ordered_list"
	KindListItem       = "list_item"
	KindBlockquote     = "blockquote"
	KindHorizontalRule = "horizontal_rule"
	KindImage          = "image"
	KindHardBreak      = "hard_break"
	KindCodeBlock      = "code_block"
)

// Mark kinds.
const (
	MarkBold      = "bold"
	MarkItalic    = "italic"
	MarkStrike    = "strike"
	MarkUnderline = "underline"
	MarkCode      = "code"
	MarkLink      = "link"
)

const (
	imageWidth  = 800
	imageHeight = 600
)

// Renderer converts documents to HTML. It holds no per-render state and is
// safe for concurrent use.
type Renderer struct {
	log *zap.Logger
}

// New returns a Renderer that reports unknown node kinds to log. A nil
// logger discards them.
func New(log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{log: log}
}

// Render returns one fragment per child of root, in order. A nil root, a
// root that is not a "doc" node or a doc without content yields nil.
// Children of unknown kind yield an empty fragment.
func (r *Renderer) Render(root *models.Node) []template.HTML {
	if !renderable(root) {
		return nil
	}
	fragments := make([]template.HTML, 0, len(root.Content))
	for i := range root.Content {
		var sb strings.Builder
		r.renderNode(&sb, &root.Content[i])
		fragments = append(fragments, template.HTML(sb.String()))
	}
	return fragments
}

// RenderDocument renders doc inside a <div> carrying class. It returns an
// empty string when Render would return nil.
func (r *Renderer) RenderDocument(doc models.Document, class string) template.HTML {
	if !renderable(doc.Root) {
		return ""
	}
	var sb strings.Builder
	if class != "" {
		sb.WriteString(`<div class="`)
		sb.WriteString(escape(class))
		sb.WriteString(`">`)
	} else {
		sb.WriteString("<div>")
	}
	for _, fragment := range r.Render(doc.Root) {
		sb.WriteString(string(fragment))
	}
	sb.WriteString("</div>")
	return template.HTML(sb.String())
}

func renderable(root *models.Node) bool {
	return root != nil && root.Type == KindDoc && root.Content != nil
}

func (r *Renderer) renderNode(sb *strings.Builder, n *models.Node) {
	switch n.Type {
	case KindText:
		renderText(sb, n)

	case KindParagraph:
		sb.WriteString("<p")
		writeTextAlign(sb, n.Attrs)
		sb.WriteString(">")
		r.renderChildren(sb, n)
		sb.WriteString("</p>")

	case KindHeading:
		tag := "h" + strconv.Itoa(headingLevel(n.Attrs))
		sb.WriteString("<" + tag)
		writeTextAlign(sb, n.Attrs)
		sb.WriteString(">")
		r.renderChildren(sb, n)
		sb.WriteString("</" + tag + ">")

	case KindBulletList:
		r.wrap(sb, "ul", n)

	case KindOrderedList:
		start := attrInt(n.Attrs, "order")
		if start == 0 {
			start = 1
		}
		fmt.Fprintf(sb, `<ol start="%d">`, start)
		r.renderChildren(sb, n)
		sb.WriteString("</ol>")

	case KindListItem:
		r.wrap(sb, "li", n)

	case KindBlockquote:
		r.wrap(sb, "blockquote", n)

	case KindHorizontalRule:
		sb.WriteString("<hr>")

	case KindHardBreak:
		sb.WriteString("<br>")

	case KindImage:
		renderImage(sb, n.Attrs)

	case KindCodeBlock:
		sb.WriteString("<pre><code")
		if lang := attrString(n.Attrs, "class"); lang != "" {
			writeAttr(sb, "class", lang)
		}
		sb.WriteString(">")
		r.renderChildren(sb, n)
		sb.WriteString("</code></pre>")

	default:
		r.log.Warn("Unknown rich text node type", zap.String("type", n.Type))
	}
}

func (r *Renderer) wrap(sb *strings.Builder, tag string, n *models.Node) {
	sb.WriteString("<" + tag + ">")
	r.renderChildren(sb, n)
	sb.WriteString("</" + tag + ">")
}

func (r *Renderer) renderChildren(sb *strings.Builder, n *models.Node) {
	for i := range n.Content {
		r.renderNode(sb, &n.Content[i])
	}
}

// renderText applies marks in order, so the first mark ends up innermost.
func renderText(sb *strings.Builder, n *models.Node) {
	content := escape(n.Text)
	for _, m := range n.Marks {
		content = applyMark(m, content)
	}
	sb.WriteString(content)
}

func applyMark(m models.Mark, inner string) string {
	switch m.Type {
	case MarkBold:
		return "<strong>" + inner + "</strong>"
	case MarkItalic:
		return "<em>" + inner + "</em>"
	case MarkStrike:
		return "<s>" + inner + "</s>"
	case MarkUnderline:
		return "<u>" + inner + "</u>"
	case MarkCode:
		return "<code>" + inner + "</code>"
	case MarkLink:
		return linkOpenTag(m.Attrs) + inner + "</a>"
	default:
		var sb strings.Builder
		sb.WriteString("<span")
		writeAttr(&sb, "data-mark-type", m.Type)
		sb.WriteString(">")
		sb.WriteString(inner)
		sb.WriteString("</span>")
		return sb.String()
	}
}

func linkOpenTag(attrs map[string]interface{}) string {
	href := attrString(attrs, "href")
	if href == "" {
		href = "#"
	}
	target := attrString(attrs, "target")
	if target == "" {
		target = "_self"
	}

	var sb strings.Builder
	sb.WriteString("<a")
	writeAttr(&sb, "href", href)
	writeAttr(&sb, "target", target)
	if target == "_blank" {
		writeAttr(&sb, "rel", "noopener noreferrer")
	}
	if title := attrString(attrs, "title"); title != "" {
		writeAttr(&sb, "title", title)
	}
	sb.WriteString(">")
	return sb.String()
}

func renderImage(sb *strings.Builder, attrs map[string]interface{}) {
	sb.WriteString("<img")
	writeAttr(sb, "src", attrString(attrs, "src"))
	writeAttr(sb, "alt", attrString(attrs, "alt"))
	if title := attrString(attrs, "title"); title != "" {
		writeAttr(sb, "title", title)
	}
	fmt.Fprintf(sb, ` width="%d" height="%d"`, imageWidth, imageHeight)
	sb.WriteString(` class="rich-text-image" style="width:100%;height:auto">`)
}

func writeTextAlign(sb *strings.Builder, attrs map[string]interface{}) {
	if align := attrString(attrs, "textAlign"); align != "" {
		writeAttr(sb, "style", "text-align:"+align)
	}
}

func writeAttr(sb *strings.Builder, name, value string) {
	sb.WriteString(" ")
	sb.WriteString(name)
	sb.WriteString(`="`)
	sb.WriteString(escape(value))
	sb.WriteString(`"`)
}

// headingLevel clamps attrs.level into 1..6. A missing level renders as h2.
func headingLevel(attrs map[string]interface{}) int {
	level := attrInt(attrs, "level")
	switch {
	case level == 0:
		return 2
	case level < 1:
		return 1
	case level > 6:
		return 6
	}
	return level
}

func escape(s string) string {
	return template.HTMLEscapeString(s)
}
