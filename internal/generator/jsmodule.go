package generator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// JavaScript values for the CommonJS config module. Objects keep insertion
// order so the output reads like a hand-written config.
type (
	jsExpr   string
	jsObject []jsProp
	jsArray  []any
	jsProp   struct {
		Key   string
		Value any
	}
	// jsTyped is a value preceded by a JSDoc type annotation and wrapped in parentheses.
	jsTyped struct {
		Type  string
		Value any
	}
)

func (o *jsObject) set(key string, v any) { *o = append(*o, jsProp{Key: key, Value: v}) }

// setString adds key only when v is non-empty.
func (o *jsObject) setString(key, v string) {
	if v != "" {
		o.set(key, v)
	}
}

var jsIdentifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

func jsKey(k string) string {
	if jsIdentifier.MatchString(k) {
		return k
	}
	return jsString(k)
}

// jsString quotes s as a single-quoted JavaScript string literal.
func jsString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\u2028', '\u2029':
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			if r < 0x20 || r == utf8.RuneError {
				fmt.Fprintf(&b, `\u%04x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

func jsRequire(module string) jsExpr      { return jsExpr("require(" + jsString(module) + ")") }
func jsRequireResolve(path string) jsExpr { return jsExpr("require.resolve(" + jsString(path) + ")") }
func jsStrings(values []string) jsArray {
	out := make(jsArray, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}

// writeJS appends the literal for v at the given indentation depth.
func writeJS(b *strings.Builder, v any, depth int) error {
	pad := strings.Repeat("  ", depth)
	switch val := v.(type) {
	case string:
		b.WriteString(jsString(val))
	case bool:
		b.WriteString(strconv.FormatBool(val))
	case int:
		b.WriteString(strconv.Itoa(val))
	case float64:
		b.WriteString(strconv.FormatFloat(val, 'g', -1, 64))
	case jsExpr:
		b.WriteString(string(val))
	case jsTyped:
		b.WriteString("/** @type {" + val.Type + "} */\n" + pad + "(")
		if err := writeJS(b, val.Value, depth); err != nil {
			return err
		}
		b.WriteString(")")
	case jsObject:
		if len(val) == 0 {
			b.WriteString("{}")
			return nil
		}
		b.WriteString("{\n")
		for _, p := range val {
			b.WriteString(pad + "  " + jsKey(p.Key) + ": ")
			if err := writeJS(b, p.Value, depth+1); err != nil {
				return err
			}
			b.WriteString(",\n")
		}
		b.WriteString(pad + "}")
	case jsArray:
		if len(val) == 0 {
			b.WriteString("[]")
			return nil
		}
		b.WriteString("[\n")
		for _, item := range val {
			b.WriteString(pad + "  ")
			if err := writeJS(b, item, depth+1); err != nil {
				return err
			}
			b.WriteString(",\n")
		}
		b.WriteString(pad + "]")
	default:
		return fmt.Errorf("unsupported JavaScript value %T", v)
	}
	return nil
}
