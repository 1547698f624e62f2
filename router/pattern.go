package router

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// patternMacros maps macro names to regexp fragments for use in variable
// definitions: {name:macro}. Names not listed here are treated as raw
// regexp patterns, so {id:[0-9]+} keeps working.
var patternMacros = map[string]string{
	"uuid":     `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`,
	"int":      `[0-9]+`,
	"float":    `[0-9]*\.?[0-9]+`,
	"slug":     `[a-zA-Z0-9]+(?:-[a-zA-Z0-9]+)*`,
	"alpha":    `[a-zA-Z]+`,
	"alphanum": `[a-zA-Z0-9]+`,
	"date":     `[0-9]{4}-[0-9]{2}-[0-9]{2}`,
	"hex":      `[0-9a-fA-F]+`,
}

// expandMacro returns the regexp fragment for a macro name, or the input
// unchanged when it is not a known macro.
func expandMacro(s string) string {
	if patt, ok := patternMacros[s]; ok {
		return patt
	}
	return s
}

// pattern is a compiled path template. Matching works segment by segment:
// static segments compare directly, segments containing {braces} match a
// compiled regexp, and a trailing {name...} segment captures whatever is
// left of the path, slashes included.
type pattern struct {
	template string
	segments []segment
	tail     string
	names    []string
}

// segment is one slash-delimited piece of a template. re is nil for
// static segments.
type segment struct {
	literal string
	re      *regexp.Regexp
	names   []string
}

// compilePattern parses a path template into a pattern. The template is
// split on slashes that sit outside braces, so regexp bodies may contain
// slashes of their own.
func compilePattern(tpl string) (*pattern, error) {
	parts, err := splitTemplate(tpl)
	if err != nil {
		return nil, err
	}

	p := &pattern{template: tpl}
	for i, part := range parts {
		if name, ok := tailName(part); ok {
			if i != len(parts)-1 {
				return nil, fmt.Errorf("router: %q must be the last segment in %q", part, tpl)
			}
			p.tail = name
			p.names = append(p.names, name)
			break
		}

		seg, err := compileSegment(part, tpl)
		if err != nil {
			return nil, err
		}
		p.segments = append(p.segments, seg)
		p.names = append(p.names, seg.names...)
	}

	if err := checkDuplicateVars(p.names, tpl); err != nil {
		return nil, err
	}
	return p, nil
}

// match reports whether path satisfies the pattern and returns the
// extracted variables. The variables map is nil for patterns without
// captures.
func (p *pattern) match(path string) (map[string]string, bool) {
	parts := strings.Split(path, "/")
	if p.tail == "" {
		if len(parts) != len(p.segments) {
			return nil, false
		}
	} else if len(parts) < len(p.segments) {
		return nil, false
	}

	var vars map[string]string
	set := func(name, value string) {
		if vars == nil {
			vars = make(map[string]string, len(p.names))
		}
		vars[name] = value
	}

	for i, seg := range p.segments {
		if seg.re == nil {
			if parts[i] != seg.literal {
				return nil, false
			}
			continue
		}
		m := seg.re.FindStringSubmatch(parts[i])
		if m == nil {
			return nil, false
		}
		for j, name := range seg.names {
			set(name, m[j+1])
		}
	}

	if p.tail != "" {
		set(p.tail, strings.Join(parts[len(p.segments):], "/"))
	}
	return vars, true
}

// tailName reports whether part is a rest-of-path capture of the form
// {name...} and returns the name.
func tailName(part string) (string, bool) {
	if len(part) > 5 && part[0] == '{' && strings.HasSuffix(part, "...}") {
		name := part[1 : len(part)-4]
		if !strings.ContainsAny(name, "{}:") {
			return name, true
		}
	}
	return "", false
}

// compileSegment turns one template segment into a matcher. Static text
// around braces is quoted, each brace introduces one capture group, and
// the variable pattern defaults to [^/]+ when no macro or regexp is given.
func compileSegment(seg, tpl string) (segment, error) {
	idxs, err := braceIndices(seg, tpl)
	if err != nil {
		return segment{}, err
	}
	if len(idxs) == 0 {
		return segment{literal: seg}, nil
	}

	var (
		expr  strings.Builder
		names []string
		end   int
	)
	expr.WriteByte('^')

	for i := 0; i < len(idxs); i += 2 {
		raw := seg[end:idxs[i]]
		end = idxs[i+1]

		parts := strings.SplitN(seg[idxs[i]+1:end-1], ":", 2)
		name := parts[0]
		if name == "" {
			return segment{}, fmt.Errorf("router: missing name in %q from %q", seg[idxs[i]:end], tpl)
		}

		patt := "[^/]+"
		if len(parts) == 2 {
			patt = expandMacro(parts[1])
		}

		fmt.Fprintf(&expr, "%s(%s)", regexp.QuoteMeta(raw), patt)
		names = append(names, name)
	}

	expr.WriteString(regexp.QuoteMeta(seg[end:]))
	expr.WriteByte('$')

	re, err := compileRegexp(expr.String())
	if err != nil {
		return segment{}, fmt.Errorf("router: invalid pattern %q in %q: %w", seg, tpl, err)
	}
	return segment{re: re, names: names}, nil
}

// splitTemplate splits tpl on slashes that are not inside braces.
func splitTemplate(tpl string) ([]string, error) {
	var (
		parts []string
		level int
		start int
	)
	for i := 0; i < len(tpl); i++ {
		switch tpl[i] {
		case '{':
			level++
		case '}':
			if level--; level < 0 {
				return nil, fmt.Errorf("router: unbalanced braces in %q", tpl)
			}
		case '/':
			if level == 0 {
				parts = append(parts, tpl[start:i])
				start = i + 1
			}
		}
	}
	if level != 0 {
		return nil, fmt.Errorf("router: unbalanced braces in %q", tpl)
	}
	return append(parts, tpl[start:]), nil
}

// braceIndices returns the start and end+1 indices of each top-level
// {...} pair in s. Braces nest for regexp repetition counts, so pairs are
// tracked by depth.
func braceIndices(s, tpl string) ([]int, error) {
	var (
		idxs  []int
		level int
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			if level++; level == 1 {
				idxs = append(idxs, i)
			}
		case '}':
			if level--; level == 0 {
				idxs = append(idxs, i+1)
			} else if level < 0 {
				return nil, fmt.Errorf("router: unbalanced braces in %q", tpl)
			}
		}
	}
	if level != 0 {
		return nil, fmt.Errorf("router: unbalanced braces in %q", tpl)
	}
	return idxs, nil
}

// checkDuplicateVars returns an error if any variable name repeats within
// one template.
func checkDuplicateVars(names []string, tpl string) error {
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			return fmt.Errorf("router: duplicated variable %q in %q", name, tpl)
		}
		seen[name] = true
	}
	return nil
}

// regexpCache caches compiled segment expressions. Macro segments repeat
// across routes, so the cache is small and settles after registration.
var regexpCache sync.Map

// compileRegexp returns a cached *regexp.Regexp for the given expression,
// compiling and caching it on first use.
func compileRegexp(expr string) (*regexp.Regexp, error) {
	if v, ok := regexpCache.Load(expr); ok {
		return v.(*regexp.Regexp), nil
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}

	actual, _ := regexpCache.LoadOrStore(expr, re)
	return actual.(*regexp.Regexp), nil
}
