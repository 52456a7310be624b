package introspection

import (
	"fmt"
	"strconv"
	"strings"
)

var builtinScalars = map[string]bool{
	"Int": true, "Float": true, "String": true, "Boolean": true, "ID": true,
}

// SDL renders the introspected schema as SDL. Introspection-only types
// (the __ namespace) and the built-in scalars are skipped; everything else
// is emitted in the order the endpoint listed it.
func (s *Schema) SDL() string {
	var b strings.Builder

	if s.needsSchemaBlock() {
		b.WriteString("schema {\n")
		writeRoot(&b, "query", s.QueryType)
		writeRoot(&b, "mutation", s.MutationType)
		writeRoot(&b, "subscription", s.SubscriptionType)
		b.WriteString("}\n")
	}

	for _, t := range s.Types {
		if t.Name == nil || strings.HasPrefix(*t.Name, "__") {
			continue
		}
		if t.Kind == TypeKindScalar && builtinScalars[*t.Name] {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		writeType(&b, t)
	}
	return b.String()
}

func (s *Schema) needsSchemaBlock() bool {
	if t := s.QueryType; t != nil && t.Name != nil && *t.Name != "Query" {
		return true
	}
	if t := s.MutationType; t != nil && t.Name != nil && *t.Name != "Mutation" {
		return true
	}
	if t := s.SubscriptionType; t != nil && t.Name != nil && *t.Name != "Subscription" {
		return true
	}
	return false
}

func writeRoot(b *strings.Builder, op string, t *Type) {
	if t == nil || t.Name == nil {
		return
	}
	fmt.Fprintf(b, "  %s: %s\n", op, *t.Name)
}

func writeType(b *strings.Builder, t Type) {
	writeDescription(b, t.Description, "")
	switch t.Kind {
	case TypeKindScalar:
		fmt.Fprintf(b, "scalar %s\n", *t.Name)

	case TypeKindUnion:
		names := make([]string, len(t.PossibleTypes))
		for i, m := range t.PossibleTypes {
			names[i] = typeReference(m)
		}
		fmt.Fprintf(b, "union %s = %s\n", *t.Name, strings.Join(names, " | "))

	case TypeKindEnum:
		fmt.Fprintf(b, "enum %s {\n", *t.Name)
		for _, v := range t.EnumValues {
			writeDescription(b, v.Description, "  ")
			fmt.Fprintf(b, "  %s%s\n", v.Name, deprecated(v.IsDeprecated, v.DeprecationReason))
		}
		b.WriteString("}\n")

	case TypeKindInputObject:
		fmt.Fprintf(b, "input %s {\n", *t.Name)
		for _, in := range t.InputFields {
			writeDescription(b, in.Description, "  ")
			fmt.Fprintf(b, "  %s\n", inputValue(in))
		}
		b.WriteString("}\n")

	case TypeKindObject, TypeKindInterface:
		keyword := "type"
		if t.Kind == TypeKindInterface {
			keyword = "interface"
		}
		fmt.Fprintf(b, "%s %s", keyword, *t.Name)
		if len(t.Interfaces) > 0 {
			names := make([]string, len(t.Interfaces))
			for i, it := range t.Interfaces {
				names[i] = typeReference(it)
			}
			fmt.Fprintf(b, " implements %s", strings.Join(names, " & "))
		}
		b.WriteString(" {\n")
		for _, f := range t.Fields {
			writeDescription(b, f.Description, "  ")
			fmt.Fprintf(b, "  %s%s: %s%s\n", f.Name, fieldArgs(f.Args), typeReference(*f.Type), deprecated(f.IsDeprecated, f.DeprecationReason))
		}
		b.WriteString("}\n")
	}
}

func fieldArgs(args []InputValue) string {
	if len(args) == 0 {
		return ""
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = inputValue(a)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func inputValue(in InputValue) string {
	s := in.Name + ": " + typeReference(*in.Type)
	if in.DefaultValue != nil {
		s += " = " + *in.DefaultValue
	}
	return s
}

// typeReference unwinds the OfType chain and rebuilds GraphQL notation,
// applying list and non-null modifiers innermost-first.
func typeReference(t Type) string {
	var modifiers []TypeKind
	ofType := &t
	for ofType.OfType != nil {
		modifiers = append(modifiers, ofType.Kind)
		ofType = ofType.OfType
	}
	if ofType.Name == nil {
		return "<invalid>"
	}
	name := *ofType.Name
	for i := len(modifiers) - 1; i >= 0; i-- {
		switch modifiers[i] {
		case TypeKindList:
			name = "[" + name + "]"
		case TypeKindNonNull:
			name += "!"
		}
	}
	return name
}

func deprecated(is bool, reason *string) string {
	if !is {
		return ""
	}
	if reason == nil || *reason == "" {
		return " @deprecated"
	}
	return " @deprecated(reason: " + strconv.Quote(*reason) + ")"
}

func writeDescription(b *strings.Builder, desc *string, indent string) {
	if desc == nil || *desc == "" {
		return
	}
	if !strings.ContainsAny(*desc, "\n\"") {
		fmt.Fprintf(b, "%s%q\n", indent, *desc)
		return
	}
	fmt.Fprintf(b, "%s\"\"\"\n", indent)
	for _, line := range strings.Split(*desc, "\n") {
		fmt.Fprintf(b, "%s%s\n", indent, line)
	}
	fmt.Fprintf(b, "%s\"\"\"\n", indent)
}
