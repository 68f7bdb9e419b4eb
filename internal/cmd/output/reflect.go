package output

import (
	"fmt"
	"reflect"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/hemicycle/internal/cmd/table"
)

// structData turns a struct, or a slice of structs, into table.Data. Column
// names come from json tags, titled: dissent_rate becomes "Dissent Rate".
// Embedded structs are flattened.
func structData(data any) (table.Data, bool) {
	v := indirect(reflect.ValueOf(data))
	switch v.Kind() {
	case reflect.Struct:
		return propertyData(v), true
	case reflect.Slice, reflect.Array:
		elem := v.Type().Elem()
		for elem.Kind() == reflect.Pointer {
			elem = elem.Elem()
		}
		if elem.Kind() != reflect.Struct {
			return table.Data{}, false
		}
		return rowData(v, elem), true
	default:
		return table.Data{}, false
	}
}

func propertyData(v reflect.Value) table.Data {
	d := table.Data{Headers: []string{"Property", "Value"}}
	for _, f := range columns(v.Type()) {
		d.Rows = append(d.Rows, []string{columnTitle(f), cell(v, f)})
	}
	return d
}

func rowData(v reflect.Value, elem reflect.Type) table.Data {
	fields := columns(elem)
	d := table.Data{Headers: make([]string, len(fields))}
	for i, f := range fields {
		d.Headers[i] = columnTitle(f)
	}
	for i := 0; i < v.Len(); i++ {
		item := indirect(v.Index(i))
		row := make([]string, len(fields))
		for j, f := range fields {
			if item.IsValid() {
				row[j] = cell(item, f)
			} else {
				row[j] = table.Empty
			}
		}
		d.Rows = append(d.Rows, row)
	}
	return d
}

// columns lists the exported, non-embedded fields of t including promoted
// ones, skipping json:"-".
func columns(t reflect.Type) []reflect.StructField {
	var out []reflect.StructField
	for _, f := range reflect.VisibleFields(t) {
		if f.Anonymous || !f.IsExported() || f.Tag.Get("json") == "-" {
			continue
		}
		out = append(out, f)
	}
	return out
}

func columnTitle(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" {
		return f.Name
	}
	return cases.Title(language.English).String(strings.ReplaceAll(name, "_", " "))
}

func cell(v reflect.Value, f reflect.StructField) string {
	fv, err := v.FieldByIndexErr(f.Index)
	if err != nil {
		return table.Empty
	}
	fv = indirect(fv)
	if !fv.IsValid() {
		return table.Empty
	}
	return fmt.Sprint(fv.Interface())
}

func indirect(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}
