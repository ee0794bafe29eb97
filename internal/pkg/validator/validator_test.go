package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	valid := []string{"123", "0", "9876543210"}
	invalid := []string{"abc", "123a", "", "-123"}
	for _, s := range valid {
		if !IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = true, want false", s)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidPhoneNumber(t *testing.T) {
	valid := []string{"081234567890", "+14155550123", "(415) 555-0123", "020 7946 0958"}
	invalid := []string{"123456", "abc0812345678", "0812345678a", "+1234567890123456", ""}
	for _, phone := range valid {
		if !IsValidPhoneNumber(phone) {
			t.Errorf("IsValidPhoneNumber(%q) = false, want true", phone)
		}
	}
	for _, phone := range invalid {
		if IsValidPhoneNumber(phone) {
			t.Errorf("IsValidPhoneNumber(%q) = true, want false", phone)
		}
	}
}

func TestIsValidLoginID(t *testing.T) {
	valid := []string{"DXJODO20250001", "ACJASM20241234"}
	invalid := []string{"dxjodo20250001", "DXJODO2025001", "DXJO2025000001", "DXJODO20250001X", ""}
	for _, id := range valid {
		if !IsValidLoginID(id) {
			t.Errorf("IsValidLoginID(%q) = false, want true", id)
		}
	}
	for _, id := range invalid {
		if IsValidLoginID(id) {
			t.Errorf("IsValidLoginID(%q) = true, want false", id)
		}
	}
}

func TestIsNonNegativeAmount(t *testing.T) {
	cases := []struct {
		input string
		ok    bool
		want  string
	}{
		{"0", true, "0"},
		{"4500.50", true, "4500.5"},
		{" 12 ", true, "12"},
		{"-1", false, "0"},
		{"abc", false, "0"},
		{"", false, "0"},
	}
	for _, c := range cases {
		got, ok := IsNonNegativeAmount(c.input)
		if ok != c.ok || got.String() != c.want {
			t.Errorf("IsNonNegativeAmount(%q) = (%s, %v), want (%s, %v)", c.input, got, ok, c.want, c.ok)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"a", "b", "c"}
	if !IsInSlice("a", slice) {
		t.Errorf("IsInSlice('a') = false, want true")
	}
	if IsInSlice("d", slice) {
		t.Errorf("IsInSlice('d') = true, want false")
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "invalid"},
		{Field: "phone", Message: "required"},
	}
	got := errs.Error()
	want := "email: invalid; phone: required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "invalid"},
		{Field: "phone", Message: "required"},
	}
	got := errs.ToMap()
	want := map[string]string{"email": "invalid", "phone": "required"}
	if len(got) != len(want) {
		t.Errorf("ValidationErrors.ToMap() length = %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ValidationErrors.ToMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
}

func TestValidationErrors_Summary(t *testing.T) {
	single := New("action", `Invalid action. Use "checkin" or "checkout"`)
	if got := single.Summary(); got != `Invalid action. Use "checkin" or "checkout"` {
		t.Errorf("Summary() = %q", got)
	}
	multi := ValidationErrors{{Field: "a", Message: "x"}, {Field: "b", Message: "y"}}
	if got := multi.Summary(); got != "Validation failed" {
		t.Errorf("Summary() = %q, want %q", got, "Validation failed")
	}
}
