package util

import (
	"regexp"
	"strings"
	"unicode"
)

var pkgPathSeparatorRe = regexp.MustCompile(`[/.]+`)

// Namespace turns a Go import path into a dotted Avro namespace.
// "github.com/acme/order-svc" becomes "github.com.acme.order_svc".
func Namespace(pkgPath string) string {
	var parts []string
	for _, part := range pkgPathSeparatorRe.Split(pkgPath, -1) {
		if part = identifier(part); part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ".")
}

// QualifiedName joins the namespace of pkgPath with name.
func QualifiedName(pkgPath, name string) string {
	ns := Namespace(pkgPath)
	if ns == "" {
		return name
	}
	return ns + "." + name
}

func identifier(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case r == '_' || r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			if i == 0 && unicode.IsDigit(r) {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
