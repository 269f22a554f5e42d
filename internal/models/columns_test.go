package models

import (
	"reflect"
	"regexp"
	"strconv"
	"testing"
)

var varcharPattern = regexp.MustCompile(`type:varchar\((\d+)\)`)

func varcharSize(t *testing.T, model interface{}, field string) int {
	t.Helper()
	f, ok := reflect.TypeOf(model).FieldByName(field)
	if !ok {
		t.Fatalf("%T has no field %s", model, field)
	}
	m := varcharPattern.FindStringSubmatch(f.Tag.Get("gorm"))
	if m == nil {
		t.Fatalf("%T.%s has no varchar column type", model, field)
	}
	size, _ := strconv.Atoi(m[1])
	return size
}

func TestVarcharColumnsAreValidated(t *testing.T) {
	maxPattern := regexp.MustCompile(`(^|,)max=(\d+)(,|$)`)

	for _, model := range []interface{}{User{}, Film{}} {
		typ := reflect.TypeOf(model)
		for i := 0; i < typ.NumField(); i++ {
			field := typ.Field(i)
			m := varcharPattern.FindStringSubmatch(field.Tag.Get("gorm"))
			if m == nil {
				continue
			}

			got := maxPattern.FindStringSubmatch(field.Tag.Get("validate"))
			if got == nil {
				t.Errorf("%s.%s is varchar(%s) but has no max= validation", typ.Name(), field.Name, m[1])
				continue
			}
			if got[2] != m[1] {
				t.Errorf("%s.%s validates max=%s, column is varchar(%s)", typ.Name(), field.Name, got[2], m[1])
			}
		}
	}
}

func TestLengthConstantsMatchColumns(t *testing.T) {
	tests := []struct {
		model interface{}
		field string
		want  int
	}{
		{User{}, "Email", MaxEmailLength},
		{User{}, "Login", MaxLoginLength},
		{User{}, "Name", MaxNameLength},
		{Film{}, "Name", MaxFilmNameLength},
		{Film{}, "Description", MaxDescriptionLength},
	}

	for _, tt := range tests {
		if got := varcharSize(t, tt.model, tt.field); got != tt.want {
			t.Errorf("%T.%s column = varchar(%d), constant = %d", tt.model, tt.field, got, tt.want)
		}
	}
}
