package service

import (
	"fmt"
	"regexp"
	"strings"
)

// Antecedent patterns are keyword templates with {variable} slots, e.g.
// "if {a} then {b}". A pattern compiles to a case-insensitive regex where
// each slot captures free text; matching a premise set means finding an
// assignment of distinct premises to patterns with consistent bindings.

var slotRe = regexp.MustCompile(`\{([a-z][a-z0-9]*)\}`)

type compiledPattern struct {
	re   *regexp.Regexp
	vars []string
}

func compilePattern(pattern string) (*compiledPattern, error) {
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	if pattern == "" {
		return nil, fmt.Errorf("empty pattern")
	}

	var sb strings.Builder
	sb.WriteString("^")
	var vars []string

	last := 0
	for _, loc := range slotRe.FindAllStringSubmatchIndex(pattern, -1) {
		literal := pattern[last:loc[0]]
		sb.WriteString(literalToRegex(literal))
		vars = append(vars, pattern[loc[2]:loc[3]])
		sb.WriteString(`(.+?)`)
		last = loc[1]
	}
	sb.WriteString(literalToRegex(pattern[last:]))
	sb.WriteString("$")

	re, err := regexp.Compile(sb.String())
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", pattern, err)
	}
	return &compiledPattern{re: re, vars: vars}, nil
}

// literalToRegex escapes a literal pattern segment and loosens whitespace so
// "if {a} then {b}" still matches "if  x , then y".
func literalToRegex(lit string) string {
	fields := strings.Fields(lit)
	if len(fields) == 0 {
		if strings.TrimSpace(lit) == "" && lit != "" {
			return `\s+`
		}
		return ""
	}
	escaped := make([]string, len(fields))
	for i, f := range fields {
		escaped[i] = regexp.QuoteMeta(f)
	}
	body := strings.Join(escaped, `[\s,]+`)
	if strings.HasPrefix(lit, " ") || strings.HasPrefix(lit, "\t") {
		body = `[\s,]+` + body
	}
	if strings.HasSuffix(lit, " ") || strings.HasSuffix(lit, "\t") {
		body += `[\s,]+`
	}
	return body
}

// match binds the pattern's slots against one normalized premise.
func (p *compiledPattern) match(premise string) (map[string]string, bool) {
	m := p.re.FindStringSubmatch(premise)
	if m == nil {
		return nil, false
	}
	bindings := make(map[string]string, len(p.vars))
	for i, v := range p.vars {
		val := strings.Trim(strings.TrimSpace(m[i+1]), ",.")
		if val == "" {
			return nil, false
		}
		// A slot used twice in one pattern must bind consistently.
		if prev, ok := bindings[v]; ok && !bindingCompatible(prev, val) {
			return nil, false
		}
		bindings[v] = val
	}
	return bindings, true
}

// bindingCompatible accepts an exact match or one side containing the other,
// so "the system is intelligent" unifies with "it is intelligent"-style
// partial restatements without full syntactic parsing.
func bindingCompatible(a, b string) bool {
	if a == b {
		return true
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// normalizePremise lowercases and strips punctuation that keyword patterns
// should see through.
func normalizePremise(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	text = strings.Trim(text, ".!?")
	var sb strings.Builder
	for _, r := range text {
		switch r {
		case ',', '"', '\'', '(', ')':
			// drop
		default:
			sb.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

// mergeBindings unifies two binding sets, or reports a conflict. When the
// sets agree via containment, the shorter (more specific fragment) value is
// kept so consequent templates stay tight.
func mergeBindings(into, from map[string]string) (map[string]string, bool) {
	out := make(map[string]string, len(into)+len(from))
	for k, v := range into {
		out[k] = v
	}
	for k, v := range from {
		if prev, ok := out[k]; ok {
			if !bindingCompatible(prev, v) {
				return nil, false
			}
			if len(v) < len(prev) {
				out[k] = v
			}
		} else {
			out[k] = v
		}
	}
	return out, true
}

// instantiate fills a consequent template from bindings. Unbound slots are
// an instantiation failure, reported as an error so the caller can skip the
// rule without failing the call.
func instantiate(template string, bindings map[string]string) (string, error) {
	var missing []string
	out := slotRe.ReplaceAllStringFunc(strings.ToLower(template), func(slot string) string {
		name := slotRe.FindStringSubmatch(slot)[1]
		v, ok := bindings[name]
		if !ok {
			missing = append(missing, name)
			return slot
		}
		return v
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("unbound template slots: %s", strings.Join(missing, ", "))
	}
	return out, nil
}
