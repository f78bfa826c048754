package config

import (
	"fmt"
	"strings"
)

// RenderDefaultTOML renders a TOML config with defaults from GetConfigOptions.
func RenderDefaultTOML() string {
	var b strings.Builder
	b.WriteString("# blogtech configuration (TOML)\n\n")

	top, sections, order := splitSections(GetConfigOptions())
	for _, o := range top {
		writeOption(&b, o)
	}
	for _, section := range order {
		b.WriteString("[" + section + "]\n")
		for _, o := range sections[section] {
			writeOption(&b, o)
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// UpdateTOML merges defaults into an existing TOML string and comments out
// unknown keys. Missing keys are inserted under their existing table, or in
// a new table at the end. It reports whether anything changed.
func UpdateTOML(existing string) (string, bool) {
	lines := strings.Split(existing, "\n")
	opts := GetConfigOptions()

	known := make(map[string]bool, len(opts))
	for _, o := range opts {
		known[o.Key] = true
	}

	// first pass: which keys and tables already exist
	existingKeys := make(map[string]bool)
	existingTables := make(map[string]bool)
	currentSection := ""
	for _, line := range lines {
		trim := strings.TrimSpace(line)
		if isTableHeader(trim) {
			currentSection = strings.TrimSpace(trim[1 : len(trim)-1])
			existingTables[currentSection] = true
			continue
		}
		if key, ok := parseTOMLKey(line); ok && !strings.HasPrefix(trim, "#") {
			existingKeys[joinKey(currentSection, key)] = true
		}
	}

	missing := make([]ConfigOption, 0)
	for _, o := range opts {
		if !existingKeys[o.Key] {
			missing = append(missing, o)
		}
	}
	top, sections, order := splitSections(missing)
	changed := len(missing) > 0

	var b strings.Builder
	for _, o := range top {
		writeOption(&b, o)
	}
	currentSection = ""
	for i, line := range lines {
		trim := strings.TrimSpace(line)
		switch {
		case trim == "" || strings.HasPrefix(trim, "#") || strings.HasPrefix(trim, ";"):
			b.WriteString(line)
		case isTableHeader(trim):
			currentSection = strings.TrimSpace(trim[1 : len(trim)-1])
			b.WriteString(line + "\n")
			for _, o := range sections[currentSection] {
				writeOption(&b, o)
			}
			delete(sections, currentSection)
			continue
		default:
			key, ok := parseTOMLKey(line)
			if ok && !known[joinKey(currentSection, key)] {
				indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
				b.WriteString(indent + "# OUTDATED: option removed from config schema\n")
				b.WriteString(indent + "# " + strings.TrimLeft(line, " \t"))
				changed = true
			} else {
				b.WriteString(line)
			}
		}
		if i < len(lines)-1 {
			b.WriteString("\n")
		}
	}

	var added bool
	for _, section := range order {
		opts, ok := sections[section]
		if !ok || existingTables[section] {
			continue
		}
		if !added {
			b.WriteString("\n# Added by config update\n")
			added = true
		}
		b.WriteString("[" + section + "]\n")
		for _, o := range opts {
			writeOption(&b, o)
		}
	}
	return b.String(), changed
}

func isTableHeader(trim string) bool {
	return strings.HasPrefix(trim, "[") && strings.HasSuffix(trim, "]")
}

func joinKey(section, key string) string {
	if section == "" {
		return key
	}
	return section + "." + key
}

func splitSections(opts []ConfigOption) ([]ConfigOption, map[string][]ConfigOption, []string) {
	top := make([]ConfigOption, 0, len(opts))
	sections := make(map[string][]ConfigOption)
	order := make([]string, 0)
	for _, o := range opts {
		section, key, ok := strings.Cut(o.Key, ".")
		if !ok {
			top = append(top, o)
			continue
		}
		if _, seen := sections[section]; !seen {
			order = append(order, section)
		}
		sections[section] = append(sections[section], ConfigOption{Key: key, Default: o.Default, Comment: o.Comment})
	}
	return top, sections, order
}

func parseTOMLKey(line string) (string, bool) {
	idx := strings.Index(line, "=")
	if idx == -1 {
		return "", false
	}
	key := strings.TrimSpace(line[:idx])
	if key == "" || strings.HasPrefix(key, "[") {
		return "", false
	}
	if strings.HasPrefix(key, "\"") || strings.HasPrefix(key, "'") {
		return "", false
	}
	return key, true
}

func writeOption(b *strings.Builder, o ConfigOption) {
	if o.Comment != "" {
		b.WriteString("# " + o.Comment + "\n")
	}
	b.WriteString(o.Key + " = " + formatValue(o.Default) + "\n\n")
}

func formatValue(value any) string {
	switch v := value.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case []string:
		quoted := make([]string, len(v))
		for i, s := range v {
			quoted[i] = fmt.Sprintf("%q", s)
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	default:
		return fmt.Sprintf("%v", v)
	}
}
