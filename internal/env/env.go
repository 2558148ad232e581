// Package env loads configuration structs from environment variables via
// `env:"VAR_NAME"` struct tags.
package env

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
)

// Validator is implemented by config structs that need validation after
// loading.
type Validator interface {
	Validate() error
}

// ErrInvalidValue is returned when an environment variable value cannot
// be parsed into its field.
type ErrInvalidValue struct {
	Field  string
	EnvVar string
	Value  string
	Err    error
}

func (e ErrInvalidValue) Error() string {
	return fmt.Sprintf("invalid value for %s=%q (field: %s): %v", e.EnvVar, e.Value, e.Field, e.Err)
}

func (e ErrInvalidValue) Unwrap() error { return e.Err }

// Load fills the struct pointed to by v from the environment. Fields
// without an env tag, and variables that are unset, are left at their
// current value, so callers set defaults before loading. Supported field
// types: string, int, bool. If v implements Validator, Validate runs
// after loading.
func Load(v any) error {
	ptrVal := reflect.ValueOf(v)
	if ptrVal.Kind() != reflect.Pointer || ptrVal.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("env.Load: argument must be a pointer to struct, got %T", v)
	}

	val := ptrVal.Elem()
	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		structField := typ.Field(i)

		envKey := structField.Tag.Get("env")
		if envKey == "" || !field.CanSet() {
			continue
		}
		envVal, exists := os.LookupEnv(envKey)
		if !exists {
			continue
		}

		if err := setField(field, envVal); err != nil {
			return ErrInvalidValue{
				Field:  structField.Name,
				EnvVar: envKey,
				Value:  envVal,
				Err:    err,
			}
		}
	}

	if validator, ok := v.(Validator); ok {
		if err := validator.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
		return nil
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
		return nil
	case reflect.Int, reflect.Int64:
		i, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(i)
		return nil
	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}
}
