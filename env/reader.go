package env

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/tencent-go/avrogen/types"
)

type ConfigReader[T any] interface {
	Read() T
	// Parse returns the parsed config or a description of every invalid variable.
	Parse() (T, error)
}

type ReaderBuilder[T any] interface {
	WithPrefix(prefix string) ReaderBuilder[T]
	Build() ConfigReader[T]
}

func NewReaderBuilder[T any]() ReaderBuilder[T] {
	return &readerBuilder[T]{}
}

type readerBuilder[T any] struct {
	prefix string
}

func (c *readerBuilder[T]) WithPrefix(prefix string) ReaderBuilder[T] {
	return &readerBuilder[T]{prefix: prefix}
}

func (c *readerBuilder[T]) Build() ConfigReader[T] {
	reader := &configReader[T]{
		prefix: c.prefix,
		typ:    reflect.TypeOf(new(T)).Elem(),
	}
	mu.Lock()
	configs = append(configs, reader)
	mu.Unlock()
	return reader
}

type printable interface {
	printState()
	parse()
}

var (
	configs []printable
	mu      sync.Mutex
)

// PrintState prints the variable table of every reader built so far.
func PrintState() {
	mu.Lock()
	defer mu.Unlock()
	for _, c := range configs {
		c.parse()
		c.printState()
	}
}

type configReader[T any] struct {
	prefix string
	parsed *T
	once   sync.Once
	fields []fieldInfo
	hasErr bool
	typ    reflect.Type
}

// Read panics after printing the variable table when the environment is invalid.
func (c *configReader[T]) Read() T {
	v, err := c.Parse()
	if err != nil {
		c.printState()
		panic("Configuration parsing error")
	}
	return v
}

func (c *configReader[T]) Parse() (T, error) {
	c.parse()
	if c.hasErr {
		var issues []string
		for _, info := range c.fields {
			if info.errorMessage != "" {
				issues = append(issues, info.key+": "+info.errorMessage)
			}
		}
		return *c.parsed, fmt.Errorf("invalid environment: %s", strings.Join(issues, "; "))
	}
	return *c.parsed, nil
}

func (c *configReader[T]) printState() {
	var b strings.Builder
	withPrefix := ""
	if c.prefix != "" {
		withPrefix = fmt.Sprintf(" with prefix %s", c.prefix)
	}
	fmt.Fprintf(&b, "\nStruct [%s]%s environment variable state:\n", c.typ.String(), withPrefix)

	header := []string{"Key", "Type", "Current Value", "Required", "Example", "Description", "Issue"}
	rows := [][]string{header}
	for _, info := range c.fields {
		rows = append(rows, info.row())
	}
	widths := make([]int, len(header))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], min(len(cell), maxColumnWidth))
		}
	}
	line := "+"
	for _, w := range widths {
		line += strings.Repeat("-", w+2) + "+"
	}
	line += "\n"

	b.WriteString(line)
	for i, row := range rows {
		b.WriteString("|")
		for j, cell := range row {
			fmt.Fprintf(&b, " %-*s |", widths[j], truncate(cell, widths[j]))
		}
		b.WriteString("\n")
		if i == 0 {
			b.WriteString(line)
		}
	}
	b.WriteString(line)
	fmt.Print(b.String())
}

const maxColumnWidth = 50

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width <= 3 {
		return "..."
	}
	return s[:width-3] + "..."
}

type fieldInfo struct {
	key          string
	omitempty    bool
	defaultValue string
	example      string
	description  string
	value        string
	kind         string
	errorMessage string
}

func (info fieldInfo) row() []string {
	current := info.value
	if current == "" && info.defaultValue != "" {
		current = info.defaultValue + " (default)"
	}
	required := ""
	if !info.omitempty && info.defaultValue == "" {
		required = "yes"
	}
	return []string{info.key, info.kind, current, required, info.example, info.description, info.errorMessage}
}

var durationType = reflect.TypeOf(time.Duration(0))

func setFieldValue(value string, field reflect.Value) error {
	if field.Type() == durationType {
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value: %v", err)
		}
		field.SetInt(int64(d))
		return nil
	}
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid integer value: %v", err)
		}
		field.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i, err := strconv.ParseUint(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid unsigned integer value: %v", err)
		}
		field.SetUint(i)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(value, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid float value: %v", err)
		}
		field.SetFloat(f)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value: %v", err)
		}
		field.SetBool(b)
	case reflect.Slice:
		values := strings.Split(value, ",")
		slice := reflect.MakeSlice(field.Type(), len(values), len(values))
		for i, v := range values {
			if err := setFieldValue(strings.TrimSpace(v), slice.Index(i)); err != nil {
				return err
			}
		}
		field.Set(slice)
	default:
		return fmt.Errorf("unsupported type: %v", field.Type())
	}
	if e, ok := types.EnumOf(field.Type()); ok && !e.Contains(field.Interface()) {
		return fmt.Errorf("must be one of %s", enumExample(e))
	}
	return nil
}

func enumExample(e types.Enum) string {
	var items []string
	for _, item := range e.Items() {
		items = append(items, fmt.Sprintf("%v", item.Value))
	}
	return strings.Join(items, ", ")
}

func (c *configReader[T]) collectFieldInfo(val reflect.Value) []fieldInfo {
	typ := val.Type()
	var fields []fieldInfo

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)
		if !fieldType.IsExported() {
			continue
		}

		envTag := fieldType.Tag.Get("env")
		if strings.HasPrefix(envTag, "-") {
			continue
		}

		if fieldType.Anonymous {
			if field.Kind() == reflect.Pointer {
				if field.IsNil() {
					field.Set(reflect.New(field.Type().Elem()))
				}
				field = field.Elem()
			}
			if field.Kind() == reflect.Struct {
				fields = append(fields, c.collectFieldInfo(field)...)
			}
			continue
		}

		key, opts, _ := strings.Cut(envTag, ",")
		if key == "" {
			key = toSnakeCase(fieldType.Name)
		}
		if c.prefix != "" {
			key = c.prefix + "_" + key
		}
		info := fieldInfo{
			key:          key,
			omitempty:    opts == "omitempty",
			defaultValue: fieldType.Tag.Get("default"),
			example:      fieldType.Tag.Get("example"),
			description:  fieldType.Tag.Get("description"),
			value:        os.Getenv(key),
			kind:         field.Type().String(),
		}
		if e, ok := types.EnumOf(field.Type()); ok && info.example == "" {
			info.example = enumExample(e)
		}

		value := info.value
		if value == "" {
			value = info.defaultValue
		}
		if value == "" {
			if !info.omitempty {
				info.errorMessage = "required value is empty"
			}
		} else if err := setFieldValue(value, field); err != nil {
			info.errorMessage = err.Error()
		}
		fields = append(fields, info)
	}
	return fields
}

func (c *configReader[T]) parse() {
	c.once.Do(func() {
		t := new(T)
		c.fields = c.collectFieldInfo(reflect.ValueOf(t).Elem())
		for _, info := range c.fields {
			if info.errorMessage != "" {
				c.hasErr = true
				break
			}
		}
		c.parsed = t
	})
}

// toSnakeCase turns LogLevel into LOG_LEVEL.
func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			result.WriteRune('_')
		}
		result.WriteRune(unicode.ToUpper(r))
	}
	return result.String()
}
