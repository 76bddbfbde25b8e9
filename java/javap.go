package java

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dhamidi/jnigen/jni"
)

// javap output is line-oriented with fixed companion-line conventions, so
// this mode scans lines directly instead of tokenizing: the qualified
// class name comes from the first "public class/interface" line, each
// method's authoritative descriptor from a "Signature:"/"descriptor:"
// line right below it, and each constant's value from a
// "ConstantValue" line two or three lines below the field.

var (
	javapClassPattern = regexp.MustCompile(
		`.*?public.*?(?:class|interface) (\S+?)(?: |$)`)
	javapMethodPattern = regexp.MustCompile(
		`^(.*?)(\S+?) (\w+?)\((.*?)\)`)
	javapConstantPattern = regexp.MustCompile(
		`.*?public static final int (.*?);`)
	javapConstantValuePattern = regexp.MustCompile(
		`.*?Constant(?:Value| value): int (-?[0-9]+)`)
)

// ParseJavap extracts the JNI model from the output of
// "javap -c -verbose -s" on one compiled class. Every public method and
// constructor becomes a called-by-native declaration.
func ParseJavap(contents string, opts Options) (*File, error) {
	lines := strings.Split(contents, "\n")

	fullyQualifiedClass := ""
	for _, line := range lines {
		if m := javapClassPattern.FindStringSubmatch(line); m != nil {
			fullyQualifiedClass = m[1]
			break
		}
	}
	if fullyQualifiedClass == "" {
		return nil, &ParseError{
			Description:  "unable to find a public class or interface declaration",
			ContextLines: lines[:min(2, len(lines))],
		}
	}
	fullyQualifiedClass = strings.ReplaceAll(fullyQualifiedClass, ".", "/")
	// javap from Java 7 onward prints type parameters (HashSet<T>); strip
	// them to recover the raw class name.
	if i := strings.IndexByte(fullyQualifiedClass, '<'); i >= 0 {
		fullyQualifiedClass = fullyQualifiedClass[:i]
	}

	file := &File{
		FullyQualifiedClass: fullyQualifiedClass,
		Context:             jni.NewContext(fullyQualifiedClass),
		Namespace:           opts.Namespace,
	}
	if file.Namespace == "" {
		file.Namespace = "JNI_" + file.ClassName()
	}

	constructorPattern := regexp.MustCompile(
		`(.*?)public ` + regexp.QuoteMeta(strings.ReplaceAll(fullyQualifiedClass, "/", ".")) + `\((.*?)\)`)

	// Methods and constructors are collected in separate passes, all
	// methods first. The method pattern cannot match a constructor line:
	// it needs a space directly before the parenthesized name, and the
	// constructor's qualified name carries dots, not spaces.
	for lineno := 2; lineno < len(lines); lineno++ {
		line := lines[lineno]

		if m := javapMethodPattern.FindStringSubmatch(line); m != nil {
			file.CalledByNatives = append(file.CalledByNatives, &CalledByNative{
				SystemClass: true,
				Static:      strings.Contains(m[1], "static"),
				ReturnType:  strings.ReplaceAll(m[2], ".", "/"),
				Name:        m[3],
				Params:      parseJavapParams(m[4]),
				Signature:   javapSignature(lines, lineno),
			})
			continue
		}

		if m := javapConstantPattern.FindStringSubmatch(line); m != nil {
			if value := javapConstantValue(lines, lineno); value != "" {
				file.Constants = append(file.Constants, ConstantField{
					Name:  m[1],
					Value: value,
				})
			}
		}
	}

	for lineno := 2; lineno < len(lines); lineno++ {
		if m := constructorPattern.FindStringSubmatch(lines[lineno]); m != nil {
			file.CalledByNatives = append(file.CalledByNatives, &CalledByNative{
				SystemClass:   true,
				ReturnType:    fullyQualifiedClass,
				Name:          "Constructor",
				Params:        parseJavapParams(m[2]),
				Signature:     javapSignature(lines, lineno),
				IsConstructor: true,
			})
		}
	}

	if err := MangleCalledByNatives(file.Context, file.CalledByNatives); err != nil {
		return nil, err
	}
	return file, nil
}

// javapSignature pulls the verbatim descriptor from the companion line
// below a method line. Older javap labels it "Signature:", newer
// "descriptor:". An empty result means the caller computes the descriptor
// from the parameter types instead.
func javapSignature(lines []string, methodLine int) string {
	if methodLine+1 >= len(lines) {
		return ""
	}
	line := lines[methodLine+1]
	for _, prefix := range []string{"Signature: ", "descriptor: "} {
		if i := strings.Index(line, prefix); i >= 0 {
			return strings.TrimSpace(line[i+len(prefix):])
		}
	}
	return ""
}

// javapConstantValue reads the literal from the ConstantValue companion
// line, two or three lines below the field declaration.
func javapConstantValue(lines []string, fieldLine int) string {
	for _, offset := range []int{2, 3} {
		if fieldLine+offset >= len(lines) {
			continue
		}
		if m := javapConstantValuePattern.FindStringSubmatch(lines[fieldLine+offset]); m != nil {
			return m[1]
		}
	}
	return ""
}

// parseJavapParams splits a javap parameter list. Types arrive in dotted
// form and are converted to slash form so the resolver treats them as
// already qualified; parameters are unnamed and get p0, p1, ...
func parseJavapParams(params string) []Param {
	params = strings.TrimSpace(params)
	if params == "" {
		return nil
	}
	var result []Param
	for _, part := range strings.Split(params, ",") {
		result = append(result, Param{
			Datatype: strings.ReplaceAll(strings.TrimSpace(part), ".", "/"),
			Name:     fmt.Sprintf("p%d", len(result)),
		})
	}
	return result
}
