package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// SDL renders the schema back to SDL text, in declaration order. Built-in
// scalars are not rendered. The output parses back into an equivalent
// schema, which makes SDL the normal form for snapshotting and for
// converting introspection dumps.
func (s *Schema) SDL() string {
	var b strings.Builder

	if s.needsSchemaBlock() {
		b.WriteString("schema {\n")
		for _, root := range s.Roots() {
			fmt.Fprintf(&b, "  %s: %s\n", root.Op, root.Type.Name)
		}
		b.WriteString("}\n")
	}

	for _, t := range s.Types {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		writeType(&b, t)
	}
	return b.String()
}

// needsSchemaBlock reports whether any root deviates from the default
// naming convention, in which case the roots must be spelled out.
func (s *Schema) needsSchemaBlock() bool {
	if s.Query != nil && s.Query.Name != "Query" {
		return true
	}
	if s.Mutation != nil && s.Mutation.Name != "Mutation" {
		return true
	}
	if s.Subscription != nil && s.Subscription.Name != "Subscription" {
		return true
	}
	return false
}

func writeType(b *strings.Builder, t *Type) {
	writeDescription(b, t.Desc, "")
	switch t.Kind {
	case Scalar:
		fmt.Fprintf(b, "scalar %s\n", t.Name)

	case Object, Interface:
		keyword := "type"
		if t.Kind == Interface {
			keyword = "interface"
		}
		fmt.Fprintf(b, "%s %s", keyword, t.Name)
		if len(t.Interfaces) > 0 {
			names := make([]string, len(t.Interfaces))
			for i, it := range t.Interfaces {
				names[i] = it.Name
			}
			fmt.Fprintf(b, " implements %s", strings.Join(names, " & "))
		}
		b.WriteString(" {\n")
		for _, f := range t.Fields {
			writeDescription(b, f.Desc, "  ")
			fmt.Fprintf(b, "  %s%s: %s%s\n", f.Name, argsSignature(f.Args), f.Type, deprecatedDirective(f.Deprecated, f.DeprecationReason))
		}
		b.WriteString("}\n")

	case Union:
		names := make([]string, len(t.Possible))
		for i, m := range t.Possible {
			names[i] = m.Name
		}
		fmt.Fprintf(b, "union %s = %s\n", t.Name, strings.Join(names, " | "))

	case Enum:
		fmt.Fprintf(b, "enum %s {\n", t.Name)
		for _, v := range t.EnumValues {
			writeDescription(b, v.Desc, "  ")
			fmt.Fprintf(b, "  %s%s\n", v.Name, deprecatedDirective(v.Deprecated, v.DeprecationReason))
		}
		b.WriteString("}\n")

	case InputObject:
		fmt.Fprintf(b, "input %s {\n", t.Name)
		for _, in := range t.Inputs {
			writeDescription(b, in.Desc, "  ")
			fmt.Fprintf(b, "  %s\n", inputSignature(in))
		}
		b.WriteString("}\n")
	}
}

func argsSignature(args []*InputValue) string {
	if len(args) == 0 {
		return ""
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = inputSignature(a)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func inputSignature(in *InputValue) string {
	s := in.Name + ": " + in.Type.String()
	if in.Default != "" {
		s += " = " + in.Default
	}
	return s
}

func deprecatedDirective(deprecated bool, reason string) string {
	if !deprecated {
		return ""
	}
	if reason == "" {
		return " @deprecated"
	}
	return " @deprecated(reason: " + strconv.Quote(reason) + ")"
}

func writeDescription(b *strings.Builder, desc, indent string) {
	if desc == "" {
		return
	}
	if !strings.ContainsAny(desc, "\n\"") {
		fmt.Fprintf(b, "%s%q\n", indent, desc)
		return
	}
	fmt.Fprintf(b, "%s\"\"\"\n", indent)
	for _, line := range strings.Split(desc, "\n") {
		fmt.Fprintf(b, "%s%s\n", indent, line)
	}
	fmt.Fprintf(b, "%s\"\"\"\n", indent)
}
