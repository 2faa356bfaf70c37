package source

import "strings"

const DefaultSuffix = "Dto"

// Policy decides which classes are offered for conversion.
type Policy struct {
	Suffix string
}

func DefaultPolicy() Policy {
	return Policy{Suffix: DefaultSuffix}
}

// Accepts reports whether a class named name is eligible. An empty suffix accepts every name.
func (p Policy) Accepts(name string) bool {
	return strings.HasSuffix(name, p.Suffix)
}
