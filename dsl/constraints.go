package dsl

import (
	"regexp"
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"

	spschema "github.com/storpool/spschema"
	js "github.com/storpool/spschema/jsonschema"
)

func required(name string) error {
	return spschema.NewError(spschema.CodeRequired, map[string]any{"name": name})
}

// IntRange accepts integers in [min, max] and returns int.
func IntRange(name string, min, max int64) Type {
	desc := "Integer in the range [" + strconv.FormatInt(min, 10) + ", " + strconv.FormatInt(max, 10) + "]."
	return leaf(name, desc, func(v any) (any, error) {
		i, ok := toInt64(v)
		if !ok {
			return nil, typeError(name, "an integer", v)
		}
		if i < min {
			return nil, spschema.NewError(spschema.CodeTooSmall, map[string]any{"name": name, "value": i, "min": min, "max": max})
		}
		if i > max {
			return nil, spschema.NewError(spschema.CodeTooBig, map[string]any{"name": name, "value": i, "min": min, "max": max})
		}
		return int(i), nil
	}, func() *js.Schema {
		return &js.Schema{Type: "integer", Title: name, Minimum: js.Float(float64(min)), Maximum: js.Float(float64(max))}
	})
}

// anchor compiles pattern so that it matches only at the start of the
// input, the way the control plane applies its name patterns.
func anchor(pattern string) *regexp.Regexp {
	if !strings.HasPrefix(pattern, "^") {
		pattern = "^(?:" + pattern + ")"
	}
	return regexp.MustCompile(pattern)
}

// Regex accepts strings (and numbers, as text) matching pattern. The match
// is anchored at the start; a trailing $ in pattern anchors the end.
func Regex(name, pattern string) Type {
	re := anchor(pattern)
	return leaf(name, "A string matching the regular expression "+pattern+".", func(v any) (any, error) {
		if v == nil {
			return nil, required(name)
		}
		s, ok := toText(v)
		if !ok {
			return nil, typeError(name, "a string", v)
		}
		if !re.MatchString(s) {
			return nil, spschema.NewError(spschema.CodePattern, map[string]any{"name": name, "value": s, "pattern": pattern})
		}
		return s, nil
	}, func() *js.Schema {
		return &js.Schema{Type: "string", Title: name, Pattern: re.String()}
	})
}

// OneOf accepts exactly one of values and returns the declared value.
func OneOf(name string, values ...any) Type {
	shown := make([]string, len(values))
	for i, v := range values {
		b, err := gojson.Marshal(v)
		if err != nil {
			shown[i] = constName(v)
			continue
		}
		shown[i] = string(b)
	}
	accepted := "{" + strings.Join(shown, ", ") + "}"
	return leaf(name, "One of "+accepted, func(v any) (any, error) {
		for _, want := range values {
			if equalValues(v, want) {
				return want, nil
			}
		}
		return nil, spschema.NewError(spschema.CodeInvalidEnum, map[string]any{"name": name, "value": constName(v), "accepted": accepted})
	}, func() *js.Schema {
		return &js.Schema{Title: name, Enum: append([]any(nil), values...)}
	})
}

// NamedEnum maps the numeric codes first..first+len(names)-1 to names.
// The names themselves are accepted too, so decoded values survive being
// encoded and decoded again.
func NamedEnum(name string, names []string, first int) Type {
	last := first + len(names) - 1
	byName := make(map[string]struct{}, len(names))
	for _, n := range names {
		byName[n] = struct{}{}
	}
	return leaf(name, "One of "+strings.Join(names, ", ")+".", func(v any) (any, error) {
		if s, ok := v.(string); ok {
			if _, known := byName[s]; known {
				return s, nil
			}
		}
		i, ok := toInt64(v)
		if !ok {
			return nil, typeError(name, "an integer", v)
		}
		if i < int64(first) {
			return nil, spschema.NewError(spschema.CodeTooSmall, map[string]any{"name": name, "value": i, "min": first, "max": last})
		}
		if i > int64(last) {
			return nil, spschema.NewError(spschema.CodeTooBig, map[string]any{"name": name, "value": i, "min": first, "max": last})
		}
		return names[int(i)-first], nil
	}, func() *js.Schema {
		enum := make([]any, len(names))
		for i, n := range names {
			enum[i] = n
		}
		return &js.Schema{
			Title:       name,
			Description: "Sent as the integer code " + strconv.Itoa(first) + ".." + strconv.Itoa(last) + ".",
			AnyOf: []*js.Schema{
				{Type: "integer", Minimum: js.Float(float64(first)), Maximum: js.Float(float64(last))},
				{Type: "string", Enum: enum},
			},
		}
	})
}

// Name accepts identifiers matching pattern that are shorter than size
// and are not one of the reserved words.
func Name(name, pattern string, size int, reserved ...string) Type {
	re := anchor(pattern)
	desc := "A string matching the regular expression " + pattern + ", at most " + strconv.Itoa(size-1) + " characters long"
	if len(reserved) > 0 {
		desc += ", not one of " + strings.Join(reserved, ", ")
	}
	return leaf(name, desc+".", func(v any) (any, error) {
		if v == nil {
			return nil, required(name)
		}
		s, ok := toText(v)
		if !ok {
			return nil, typeError(name, "a string", v)
		}
		if !re.MatchString(s) {
			return nil, spschema.NewError(spschema.CodePattern, map[string]any{"name": name, "value": s, "pattern": pattern})
		}
		for _, r := range reserved {
			if s == r {
				return nil, spschema.NewError(spschema.CodeReservedName, map[string]any{"name": name, "value": s, "reserved": reserved})
			}
		}
		if len(s) >= size {
			return nil, spschema.NewError(spschema.CodeTooLong, map[string]any{"name": name, "value": s, "max": size - 1})
		}
		return s, nil
	}, func() *js.Schema {
		maxLen := size - 1
		s := &js.Schema{Type: "string", Title: name, Pattern: re.String(), MaxLength: &maxLen}
		if len(reserved) > 0 {
			enum := make([]any, len(reserved))
			for i, r := range reserved {
				enum[i] = r
			}
			s.Not = &js.Schema{Enum: enum}
		}
		return s
	})
}

// UnlimitedInt accepts integers >= min or the marker unlimited, which is
// returned as is.
func UnlimitedInt(name string, min int64, unlimited string) Type {
	return leaf(name, "An integer >= "+strconv.FormatInt(min, 10)+" or "+strconv.Quote(unlimited)+" for unlimited.", func(v any) (any, error) {
		if v == nil {
			return nil, required(name)
		}
		if s, ok := v.(string); ok && s == unlimited {
			return unlimited, nil
		}
		i, ok := toInt64(v)
		if !ok {
			return nil, typeError(name, "an integer or "+strconv.Quote(unlimited), v)
		}
		if i < min {
			return nil, spschema.NewError(spschema.CodeTooSmall, map[string]any{"name": name, "value": i, "min": min})
		}
		return i, nil
	}, func() *js.Schema {
		return &js.Schema{Title: name, AnyOf: []*js.Schema{
			{Type: "integer", Minimum: js.Float(float64(min))},
			{Const: unlimited},
		}}
	})
}

// SectorSize is the granularity of volume sizes.
const SectorSize = 512

// VolumeSize accepts positive multiples of SectorSize and returns int64.
func VolumeSize(name string) Type {
	return leaf(name, "A positive integer divisible by "+strconv.Itoa(SectorSize)+".", func(v any) (any, error) {
		i, ok := toInt64(v)
		if !ok {
			return nil, typeError(name, "an integer", v)
		}
		if i <= 0 {
			return nil, spschema.NewError(spschema.CodeNotPositive, map[string]any{"name": name, "value": i})
		}
		if i%SectorSize != 0 {
			return nil, spschema.NewError(spschema.CodeNotMultiple, map[string]any{"name": name, "value": i, "multiple": SectorSize})
		}
		return i, nil
	}, func() *js.Schema {
		return &js.Schema{Type: "integer", Format: "int64", Title: name, Minimum: js.Float(SectorSize), MultipleOf: js.Float(SectorSize)}
	})
}
