package env

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var durationType = reflect.TypeOf(time.Duration(0))

// MarshalEnv renders one KEY=value line per `env`-tagged field of each struct
// pointer in cs, in declaration order. Zero values are written too, so the
// output pins the effective configuration. Fields tagged `envMarshal:"-"`
// are skipped.
func MarshalEnv(cs ...any) (string, error) {
	var lines []string
	for _, c := range cs {
		v := reflect.ValueOf(c)
		if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
			return "", fmt.Errorf("marshal env: want pointer to struct, got %T", c)
		}
		v = v.Elem()
		t := v.Type()

		for i := 0; i < v.NumField(); i++ {
			field := t.Field(i)
			tag := field.Tag.Get("env")
			if tag == "" || !field.IsExported() || field.Tag.Get("envMarshal") == "-" {
				continue
			}

			// "KEY,required,notEmpty" -> KEY
			key := strings.Split(tag, ",")[0]
			if key == "" {
				continue
			}

			lines = append(lines, fmt.Sprintf("%s=%s", key, formatValue(v.Field(i))))
		}
	}

	result := strings.Join(lines, "\n")
	if result != "" {
		result += "\n"
	}
	return result, nil
}

func formatValue(v reflect.Value) string {
	if v.Type() == durationType {
		return time.Duration(v.Int()).String()
	}

	switch v.Kind() {
	case reflect.String:
		return quote(v.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'f', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	default:
		return quote(fmt.Sprintf("%v", v.Interface()))
	}
}

// quote wraps values godotenv would otherwise split or trim.
func quote(s string) string {
	if s == "" || strings.ContainsAny(s, " #\"'\t") {
		return strconv.Quote(s)
	}
	return s
}
