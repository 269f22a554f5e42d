package validation

import (
	"testing"
	"time"
)

type sample struct {
	Name     string    `validate:"required,notblank"`
	Login    string    `validate:"required,nowhitespace"`
	Email    string    `validate:"required,singleat"`
	Bio      string    `validate:"max=10"`
	Duration int       `validate:"gt=0"`
	Born     time.Time `validate:"required,notfuture"`
	Released time.Time `validate:"required,cinemaera"`
}

func validSample() sample {
	return sample{
		Name:     "Harry",
		Login:    "harry",
		Email:    "harry@hogwarts.uk",
		Bio:      "wizard",
		Duration: 152,
		Born:     time.Date(1980, time.July, 31, 0, 0, 0, 0, time.UTC),
		Released: time.Date(2001, time.November, 16, 0, 0, 0, 0, time.UTC),
	}
}

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 == nil {
		t.Fatal("GetValidator() should not return nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(s *sample)
		wantField string
	}{
		{name: "Valid", mutate: func(s *sample) {}},
		{name: "Blank name", mutate: func(s *sample) { s.Name = "   " }, wantField: "Name"},
		{name: "Login with space", mutate: func(s *sample) { s.Login = "harry potter" }, wantField: "Login"},
		{name: "Login with tab", mutate: func(s *sample) { s.Login = "harry\tp" }, wantField: "Login"},
		{name: "Email without at", mutate: func(s *sample) { s.Email = "harry.hogwarts.uk" }, wantField: "Email"},
		{name: "Email with two ats", mutate: func(s *sample) { s.Email = "harry@@hogwarts.uk" }, wantField: "Email"},
		{name: "Email without domain", mutate: func(s *sample) { s.Email = "harry@" }, wantField: "Email"},
		{name: "Bio too long", mutate: func(s *sample) { s.Bio = "abcdefghijk" }, wantField: "Bio"},
		{name: "Bio multibyte within limit", mutate: func(s *sample) { s.Bio = "волшебник" }},
		{name: "Zero duration", mutate: func(s *sample) { s.Duration = 0 }, wantField: "Duration"},
		{name: "Born tomorrow", mutate: func(s *sample) { s.Born = time.Now().AddDate(0, 0, 1) }, wantField: "Born"},
		{name: "Born today", mutate: func(s *sample) { s.Born = time.Now() }},
		{name: "Missing birthday", mutate: func(s *sample) { s.Born = time.Time{} }, wantField: "Born"},
		{name: "Released on cinema birthday", mutate: func(s *sample) { s.Released = CinemaBirthday }},
		{
			name:      "Released day before cinema birthday",
			mutate:    func(s *sample) { s.Released = CinemaBirthday.AddDate(0, 0, -1) },
			wantField: "Released",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSample()
			tt.mutate(&s)

			err := ValidateStruct(&s)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("ValidateStruct() unexpected error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidateStruct() expected error on %s, got nil", tt.wantField)
			}
			if !err.HasField(tt.wantField) {
				t.Errorf("ValidateStruct() error = %v, want failure on %s", err, tt.wantField)
			}
		})
	}
}

func TestValidateStruct_Messages(t *testing.T) {
	s := validSample()
	s.Name = ""
	s.Duration = -5

	err := ValidateStruct(&s)
	if err == nil {
		t.Fatal("ValidateStruct() expected error, got nil")
	}

	want := "Name is required; Duration must be greater than 0"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if len(err.Errors()) != 2 {
		t.Errorf("len(Errors()) = %d, want 2", len(err.Errors()))
	}
}

func TestDay(t *testing.T) {
	in := time.Date(2001, time.November, 16, 23, 59, 0, 0, time.FixedZone("X", 3*3600))
	want := time.Date(2001, time.November, 16, 0, 0, 0, 0, time.UTC)

	if got := Day(in); !got.Equal(want) {
		t.Errorf("Day() = %v, want %v", got, want)
	}
}
