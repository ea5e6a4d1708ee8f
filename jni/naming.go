package jni

import (
	"fmt"
	"strings"
)

// InternalName converts a binary class name to the slash-separated form
// FindClass expects.
// e.g., "java.lang.String" → "java/lang/String",
// "java.util.Map$Entry" → "java/util/Map$Entry"
func InternalName(binaryName string) string {
	return strings.ReplaceAll(binaryName, ".", "/")
}

// BinaryName is the inverse of InternalName.
func BinaryName(internalName string) string {
	return strings.ReplaceAll(internalName, "/", ".")
}

// ClassSignature returns the field descriptor of a class.
// e.g., "java.lang.String" → "Ljava/lang/String;"
func ClassSignature(binaryName string) string {
	return "L" + InternalName(binaryName) + ";"
}

// ArraySignature returns the descriptor of an array of elem.
// e.g., "I" → "[I"
func ArraySignature(elem string) string {
	return "[" + elem
}

// MethodSignature assembles a method descriptor from a return descriptor
// and parameter descriptors.
// e.g., MethodSignature("V", "I", "Ljava/lang/String;") → "(ILjava/lang/String;)V"
func MethodSignature(ret string, params ...string) string {
	return "(" + strings.Join(params, "") + ")" + ret
}

// ParseMethodSignature splits a method descriptor into its parameter and
// return descriptors.
func ParseMethodSignature(sig string) (params []string, ret string, err error) {
	if !strings.HasPrefix(sig, "(") {
		return nil, "", fmt.Errorf("jni: malformed method signature %q: missing '('", sig)
	}
	rest := sig[1:]
	for {
		if rest == "" {
			return nil, "", fmt.Errorf("jni: malformed method signature %q: missing ')'", sig)
		}
		if rest[0] == ')' {
			rest = rest[1:]
			break
		}
		p, n, err := nextFieldSignature(rest)
		if err != nil {
			return nil, "", fmt.Errorf("jni: malformed method signature %q: %w", sig, err)
		}
		params = append(params, p)
		rest = rest[n:]
	}
	if rest == "V" {
		return params, rest, nil
	}
	r, n, err := nextFieldSignature(rest)
	if err != nil || n != len(rest) {
		return nil, "", fmt.Errorf("jni: malformed method signature %q: bad return type", sig)
	}
	return params, r, nil
}

// ValidFieldSignature reports whether sig is exactly one field descriptor.
func ValidFieldSignature(sig string) bool {
	_, n, err := nextFieldSignature(sig)
	return err == nil && n == len(sig)
}

// nextFieldSignature scans one field descriptor from the front of s.
func nextFieldSignature(s string) (string, int, error) {
	i := 0
	for i < len(s) && s[i] == '[' {
		i++
	}
	if i == len(s) {
		return "", 0, fmt.Errorf("truncated type at %q", s)
	}
	switch s[i] {
	case 'Z', 'B', 'C', 'S', 'I', 'J', 'F', 'D':
		return s[:i+1], i + 1, nil
	case 'L':
		end := strings.IndexByte(s[i:], ';')
		if end <= 1 {
			return "", 0, fmt.Errorf("unterminated class type at %q", s)
		}
		n := i + end + 1
		return s[:n], n, nil
	}
	return "", 0, fmt.Errorf("unknown type code %q", s[i])
}

// KindForSignature maps a field descriptor onto the kind whose entry points
// carry it. Arrays and classes other than the built-in references map to
// KindObject.
func KindForSignature(sig string) (Kind, bool) {
	if sig == "" {
		return 0, false
	}
	for k := range descriptors {
		if descriptors[k].Signature == sig {
			return Kind(k), true
		}
	}
	if sig[0] == 'L' || sig[0] == '[' {
		return KindObject, ValidFieldSignature(sig)
	}
	return 0, false
}
