package gameconfig

import (
	"fmt"
	"strconv"
	"strings"

	"duke3dmm/internal/diagnostic"
)

const emptyValueMarker = "~"

// Parse reads an engine configuration document from raw bytes (spec §4.4
// grammar: `;` comments, `[Section]` headers, `Name = Value` entries).
// Parse errors are reported as diagnostics rather than a hard Go error so a
// caller can decide whether a mostly-valid file is still usable; a nil
// Document return always pairs with at least one error-severity diagnostic.
func Parse(data []byte) (*Document, *diagnostic.Collector) {
	diags := &diagnostic.Collector{}
	doc := NewDocument()

	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")

	var pendingComments []string
	var current *Section

	flushPreceding := func() string {
		s := strings.Join(pendingComments, "\n")
		pendingComments = nil
		return s
	}

	for lineNo, raw := range lines {
		line := raw
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			pendingComments = append(pendingComments, line)

		case strings.HasPrefix(trimmed, ";"):
			pendingComments = append(pendingComments, line)

		case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
			name := strings.TrimSpace(trimmed[1 : len(trimmed)-1])
			if name == "" {
				diags.Error(fmt.Sprintf("line %d", lineNo+1), "section header has an empty name")
				continue
			}
			sec := NewSection(name, flushPreceding())
			if err := doc.AddSection(sec); err != nil {
				diags.Error(fmt.Sprintf("line %d", lineNo+1), "%s", err)
				continue
			}
			current = sec

		default:
			if current == nil {
				diags.Error(fmt.Sprintf("line %d", lineNo+1), "entry appears before any section header")
				continue
			}
			name, entry, err := parseEntryLine(trimmed)
			if err != nil {
				diags.Error(fmt.Sprintf("line %d", lineNo+1), "%s", err)
				continue
			}
			entry.PrecedingComments = flushPreceding()
			entry.Name = name
			if addErr := current.addEntry(entry); addErr != nil {
				diags.Error(fmt.Sprintf("line %d", lineNo+1), "%s", addErr)
			}
		}
	}

	if len(doc.Sections) > 0 {
		doc.Sections[len(doc.Sections)-1].FollowingComments = flushPreceding()
	}
	if !doc.HasUniqueEntryNames() {
		diags.Error("", "entry names must be unique across all sections")
	}

	if diags.HasErrors() {
		return nil, diags
	}
	return doc, diags
}

func parseEntryLine(line string) (string, *Entry, error) {
	eq := strings.Index(line, "=")
	if eq < 0 {
		return "", nil, fmt.Errorf("malformed entry line %q: missing '='", line)
	}
	name := strings.TrimSpace(line[:eq])
	if name == "" {
		return "", nil, fmt.Errorf("malformed entry line %q: empty name", line)
	}
	value := strings.TrimSpace(line[eq+1:])

	switch {
	case value == emptyValueMarker:
		return name, &Entry{Kind: KindEmpty}, nil

	case strings.HasPrefix(value, "0x") || strings.HasPrefix(value, "0X"):
		n, err := strconv.ParseInt(value[2:], 16, 64)
		if err != nil {
			return "", nil, fmt.Errorf("malformed hexadecimal value %q for entry %q", value, name)
		}
		return name, &Entry{Kind: KindHexadecimal, IntegerValue: n}, nil

	case strings.HasPrefix(value, `"`):
		values, err := parseQuotedStrings(value)
		if err != nil {
			return "", nil, fmt.Errorf("entry %q: %w", name, err)
		}
		if len(values) == 1 {
			return name, &Entry{Kind: KindString, StringValue: values[0]}, nil
		}
		return name, &Entry{Kind: KindMultiString, MultiStringValues: values}, nil

	default:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return "", nil, fmt.Errorf("malformed value %q for entry %q: expected '~', integer, 0x-hex, or quoted string", value, name)
		}
		return name, &Entry{Kind: KindInteger, IntegerValue: n}, nil
	}
}

// parseQuotedStrings splits a `"a", "b", "c"` tuple (or a lone `"a"`) into
// its component unquoted strings.
func parseQuotedStrings(value string) ([]string, error) {
	var out []string
	i := 0
	for i < len(value) {
		for i < len(value) && (value[i] == ' ' || value[i] == ',') {
			i++
		}
		if i >= len(value) {
			break
		}
		if value[i] != '"' {
			return nil, fmt.Errorf("expected '\"' at offset %d in value %q", i, value)
		}
		end := strings.Index(value[i+1:], `"`)
		if end < 0 {
			return nil, fmt.Errorf("unterminated quoted string in value %q", value)
		}
		out = append(out, value[i+1:i+1+end])
		i = i + 1 + end + 1
	}
	return out, nil
}

// Generate serializes doc back into the engine's text format, preserving
// comment placement verbatim (spec §4.4 "round-trips them on save").
func Generate(doc *Document) []byte {
	var b strings.Builder
	for i, s := range doc.Sections {
		if s.PrecedingComments != "" {
			b.WriteString(s.PrecedingComments)
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "[%s]\n", s.Name)
		for _, e := range s.Entries {
			if e.PrecedingComments != "" {
				b.WriteString(e.PrecedingComments)
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "%s = %s\n", e.Name, formatEntryValue(e))
		}
		if s.FollowingComments != "" {
			b.WriteString(s.FollowingComments)
			b.WriteString("\n")
		}
		if i != len(doc.Sections)-1 {
			b.WriteString("\n")
		}
	}
	return []byte(b.String())
}

func formatEntryValue(e *Entry) string {
	switch e.Kind {
	case KindEmpty:
		return emptyValueMarker
	case KindInteger, KindHexadecimal:
		return formatIntegerValue(e)
	case KindString:
		return `"` + e.StringValue + `"`
	case KindMultiString:
		return formatMultiStringValue(e.MultiStringValues)
	default:
		return emptyValueMarker
	}
}
