package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/jsonvalue"
)

// SyntaxStyles contains styles for syntax highlighting.
type SyntaxStyles struct {
	Key     lipgloss.Style
	String  lipgloss.Style
	Number  lipgloss.Style
	Boolean lipgloss.Style
	Null    lipgloss.Style
	Bracket lipgloss.Style
}

// NewSyntaxStyles creates syntax styles based on color mode.
func NewSyntaxStyles(noColor bool) SyntaxStyles {
	if noColor {
		return SyntaxStyles{
			Key:     lipgloss.NewStyle(),
			String:  lipgloss.NewStyle(),
			Number:  lipgloss.NewStyle(),
			Boolean: lipgloss.NewStyle(),
			Null:    lipgloss.NewStyle(),
			Bracket: lipgloss.NewStyle(),
		}
	}

	return SyntaxStyles{
		Key:     lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true), // Blue
		String:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),            // Green
		Number:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),            // Yellow
		Boolean: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),            // Magenta
		Null:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),             // Gray
		Bracket: lipgloss.NewStyle().Foreground(lipgloss.Color("7")),             // Light gray
	}
}

// FormatJSON pretty-prints v. Number literals and key order are kept as the
// API sent them.
func FormatJSON(v jsonvalue.Value, noColor bool) string {
	out := v.Indent()
	if noColor {
		return out
	}
	return highlightJSON(out, NewSyntaxStyles(false))
}

// highlightJSON colors indented JSON token by token. The input is known to be
// valid, so the scanner only has to tell tokens apart.
func highlightJSON(src string, styles SyntaxStyles) string {
	var sb strings.Builder
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == '"':
			j := i + 1
			for j < len(src) && src[j] != '"' {
				if src[j] == '\\' {
					j++
				}
				j++
			}
			j++
			tok := src[i:j]
			if isKey(src[j:]) {
				sb.WriteString(styles.Key.Render(tok))
			} else {
				sb.WriteString(styles.String.Render(tok))
			}
			i = j
		case c == '-' || (c >= '0' && c <= '9'):
			j := i
			for j < len(src) && strings.IndexByte("+-.eE0123456789", src[j]) >= 0 {
				j++
			}
			sb.WriteString(styles.Number.Render(src[i:j]))
			i = j
		case strings.HasPrefix(src[i:], "true"), strings.HasPrefix(src[i:], "false"):
			n := 4
			if c == 'f' {
				n = 5
			}
			sb.WriteString(styles.Boolean.Render(src[i : i+n]))
			i += n
		case strings.HasPrefix(src[i:], "null"):
			sb.WriteString(styles.Null.Render("null"))
			i += 4
		case strings.IndexByte("{}[]", c) >= 0:
			sb.WriteString(styles.Bracket.Render(string(c)))
			i++
		default:
			sb.WriteByte(c)
			i++
		}
	}
	return sb.String()
}

func isKey(rest string) bool {
	return strings.HasPrefix(strings.TrimLeft(rest, " "), ":")
}

// FormatYAML renders v as block-style YAML, keeping the key order of the
// JSON document.
func FormatYAML(v jsonvalue.Value, noColor bool) (string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(v.String()), &doc); err != nil {
		return "", fmt.Errorf("failed to convert to YAML: %w", err)
	}
	blockStyle(&doc)

	yamlBytes, err := yaml.Marshal(&doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if noColor {
		return string(yamlBytes), nil
	}

	styles := NewSyntaxStyles(false)
	lines := strings.Split(strings.TrimRight(string(yamlBytes), "\n"), "\n")
	var highlighted strings.Builder
	for _, line := range lines {
		highlighted.WriteString(highlightYAMLLine(line, styles))
		highlighted.WriteString("\n")
	}
	return highlighted.String(), nil
}

// blockStyle drops the flow and quoting styles a JSON source leaves on the
// tree so the encoder picks plain block output.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	if n.Kind == yaml.ScalarNode && n.Tag == "!!str" && needsQuotes(n.Value) {
		n.Style = yaml.DoubleQuotedStyle
	}
	for _, c := range n.Content {
		blockStyle(c)
	}
}

// needsQuotes reports strings that would read back as another type unquoted.
func needsQuotes(s string) bool {
	var parsed any
	if err := yaml.Unmarshal([]byte(s), &parsed); err != nil {
		return true
	}
	_, isString := parsed.(string)
	return !isString
}

// highlightYAMLLine applies syntax highlighting to a YAML line.
func highlightYAMLLine(line string, styles SyntaxStyles) string {
	result := line

	if strings.Contains(line, ":") && !strings.HasPrefix(strings.TrimSpace(line), `"`) {
		parts := strings.SplitN(line, ":", 2)
		indent := getLeadingSpaces(parts[0])
		key := strings.TrimSpace(parts[0])
		result = indent + styles.Key.Render(key) + ":" + parts[1]
	}

	result = strings.ReplaceAll(result, " null", " "+styles.Null.Render("null"))
	result = strings.ReplaceAll(result, " true", " "+styles.Boolean.Render("true"))
	result = strings.ReplaceAll(result, " false", " "+styles.Boolean.Render("false"))
	return result
}

func getLeadingSpaces(s string) string {
	for i, c := range s {
		if c != ' ' && c != '-' {
			return s[:i]
		}
	}
	return s
}
