package scene

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// WriteSVG serializes the scene graph as a complete SVG document.
func WriteSVG(w io.Writer, root *Node, width, height float64) error {
	if _, err := fmt.Fprintf(w,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`,
		Ftoa(width), Ftoa(height), Ftoa(width), Ftoa(height)); err != nil {
		return err
	}
	if err := writeNode(w, root); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</svg>")
	return err
}

// SVGString renders the scene graph to a string, for handlers and tests.
func SVGString(root *Node, width, height float64) (string, error) {
	var sb strings.Builder
	if err := WriteSVG(&sb, root, width, height); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func writeNode(w io.Writer, n *Node) error {
	if _, err := fmt.Fprintf(w, "<%s", n.Tag); err != nil {
		return err
	}
	if n.Key != "" {
		if _, err := fmt.Fprintf(w, ` data-key="%s"`, escapeAttr(n.Key)); err != nil {
			return err
		}
	}
	for _, name := range n.sortedAttrNames() {
		if _, err := fmt.Fprintf(w, ` %s="%s"`, name, escapeAttr(n.Attrs[name])); err != nil {
			return err
		}
	}
	if len(n.Children) == 0 && n.Text == "" {
		_, err := io.WriteString(w, "/>")
		return err
	}
	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}
	if n.Text != "" {
		if err := xml.EscapeText(w, []byte(n.Text)); err != nil {
			return err
		}
	}
	for _, c := range n.Children {
		if err := writeNode(w, c); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "</%s>", n.Tag)
	return err
}

func escapeAttr(s string) string {
	var sb strings.Builder
	if err := xml.EscapeText(&sb, []byte(s)); err != nil {
		return s
	}
	return sb.String()
}
