// FILE: lixenwraith/params/decode.go
package params

import (
	"fmt"
	"maps"
	"net"
	"net/url"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mitchellh/mapstructure"
)

// Coercer converts raw text into a field value.
type Coercer[T any] func(raw string) (T, error)

// defaultCoercer returns the conversion used when a field declares none.
// Strings pass through; everything else goes through the mapstructure pipeline.
func defaultCoercer[T any]() Coercer[T] {
	return func(raw string) (T, error) {
		var v T
		if s, ok := any(&v).(*string); ok {
			*s = raw
			return v, nil
		}
		if err := decodeValue(raw, &v); err != nil {
			var zero T
			return zero, err
		}
		return v, nil
	}
}

// decodeValue decodes a single raw string into target.
// Input is strictly typed: text reaches non-string kinds only through the hooks.
func decodeValue(raw string, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     target,
		DecodeHook: valueDecodeHook(),
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}
	return decoder.Decode(raw)
}

// decodeDocument decodes a section document (usually a map) into target.
func decodeDocument(doc any, target any, tagName string) error {
	if tagName == "" {
		tagName = DefaultTagName
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          tagName,
		WeaklyTypedInput: true,
		DecodeHook:       valueDecodeHook(),
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}
	return decoder.Decode(doc)
}

// valueDecodeHook returns the composite hook for all text conversions
func valueDecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		// Network types
		stringToNetIPHookFunc(),
		stringToNetIPNetHookFunc(),
		stringToURLHookFunc(),

		// Standard hooks
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		stringToSliceHookFunc(","),
		mapstructure.TextUnmarshallerHookFunc(),

		// Primitives last so named types above keep their own parsing
		stringToPrimitiveHookFunc(),
	)
}

// stringToPrimitiveHookFunc parses bool, integer and float kinds with strconv.
func stringToPrimitiveHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		str := reflect.ValueOf(data).String()

		switch t.Kind() {
		case reflect.Bool:
			return strconv.ParseBool(str)
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return strconv.ParseInt(str, 10, t.Bits())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return strconv.ParseUint(str, 10, t.Bits())
		case reflect.Float32, reflect.Float64:
			return strconv.ParseFloat(str, t.Bits())
		default:
			return data, nil
		}
	}
}

// stringToSliceHookFunc splits text into elements for any slice target.
// Each element is then decoded through the rest of the hook chain.
func stringToSliceHookFunc(sep string) mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t.Kind() != reflect.Slice {
			return data, nil
		}
		// []byte and named byte slices such as net.IP keep their own handling
		if t.Elem().Kind() == reflect.Uint8 {
			return data, nil
		}

		str := reflect.ValueOf(data).String()
		if str == "" {
			return []string{}, nil
		}
		return strings.Split(str, sep), nil
	}
}

// stringToNetIPHookFunc handles net.IP conversion
func stringToNetIPHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		if t != reflect.TypeOf(net.IP{}) {
			return data, nil
		}

		str := reflect.ValueOf(data).String()
		if len(str) > 45 { // Max IPv6 length
			return nil, fmt.Errorf("invalid IP length: %d", len(str))
		}

		ip := net.ParseIP(str)
		if ip == nil {
			return nil, fmt.Errorf("invalid IP address: %s", str)
		}
		return ip, nil
	}
}

// stringToNetIPNetHookFunc handles net.IPNet conversion
func stringToNetIPNetHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		isPtr := t.Kind() == reflect.Ptr
		targetType := t
		if isPtr {
			targetType = t.Elem()
		}
		if targetType != reflect.TypeOf(net.IPNet{}) {
			return data, nil
		}

		str := reflect.ValueOf(data).String()
		if len(str) > 49 { // Max IPv6 CIDR length
			return nil, fmt.Errorf("invalid CIDR length: %d", len(str))
		}
		_, ipnet, err := net.ParseCIDR(str)
		if err != nil {
			return nil, fmt.Errorf("invalid CIDR: %w", err)
		}
		if isPtr {
			return ipnet, nil
		}
		return *ipnet, nil
	}
}

// stringToURLHookFunc handles url.URL conversion
func stringToURLHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		isPtr := t.Kind() == reflect.Ptr
		targetType := t
		if isPtr {
			targetType = t.Elem()
		}
		if targetType != reflect.TypeOf(url.URL{}) {
			return data, nil
		}

		str := reflect.ValueOf(data).String()
		if len(str) > 2048 {
			return nil, fmt.Errorf("URL too long: %d bytes", len(str))
		}
		u, err := url.Parse(str)
		if err != nil {
			return nil, fmt.Errorf("invalid URL: %w", err)
		}
		if isPtr {
			return u, nil
		}
		return *u, nil
	}
}

// EnumMembers maps enumeration member names to their values.
type EnumMembers[T any] map[string]T

// EnumOf builds members named after each value's String method.
func EnumOf[T fmt.Stringer](values ...T) EnumMembers[T] {
	m := make(EnumMembers[T], len(values))
	for _, v := range values {
		m[v.String()] = v
	}
	return m
}

// Names returns the member names in sorted order.
func (m EnumMembers[T]) Names() []string {
	return slices.Sorted(maps.Keys(m))
}

// Parse matches raw against the member names, ignoring case.
// An exact match wins over a case-folded one.
func (m EnumMembers[T]) Parse(raw string) (T, error) {
	if v, ok := m[raw]; ok {
		return v, nil
	}

	names := m.Names()
	for _, name := range names {
		if strings.EqualFold(name, raw) {
			return m[name], nil
		}
	}

	var zero T
	return zero, fmt.Errorf("%w %q, expected one of [%s]", ErrUnknownMember, raw, strings.Join(names, ", "))
}

// ByteSize is a size in bytes written in human form ("10MB", "512 KiB", "1048576").
type ByteSize uint64

func (sz ByteSize) String() string {
	return humanize.Bytes(uint64(sz))
}

// MarshalText makes ByteSize implement encoding.TextMarshaler.
func (sz ByteSize) MarshalText() ([]byte, error) {
	return []byte(sz.String()), nil
}

// UnmarshalText makes ByteSize implement encoding.TextUnmarshaler.
func (sz *ByteSize) UnmarshalText(text []byte) error {
	u, err := humanize.ParseBytes(string(text))
	if err != nil {
		return err
	}
	*sz = ByteSize(u)
	return nil
}
