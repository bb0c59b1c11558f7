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

func TestIsValidMonth(t *testing.T) {
	for m := 1; m <= 12; m++ {
		if !IsValidMonth(m) {
			t.Errorf("IsValidMonth(%d) = false, want true", m)
		}
	}
	for _, m := range []int{0, -1, 13, 100} {
		if IsValidMonth(m) {
			t.Errorf("IsValidMonth(%d) = true, want false", m)
		}
	}
}

func TestIsValidYear(t *testing.T) {
	for _, y := range []int{2000, 2025, 2200} {
		if !IsValidYear(y) {
			t.Errorf("IsValidYear(%d) = false, want true", y)
		}
	}
	for _, y := range []int{1999, 0, -2025, 2201} {
		if IsValidYear(y) {
			t.Errorf("IsValidYear(%d) = true, want false", y)
		}
	}
}

func TestIsValidPAN(t *testing.T) {
	valid := []string{"ABCDE1234F", "abcde1234f"}
	invalid := []string{"ABCD1234F", "ABCDE12345", "1234567890", ""}
	for _, pan := range valid {
		if !IsValidPAN(pan) {
			t.Errorf("IsValidPAN(%q) = false, want true", pan)
		}
	}
	for _, pan := range invalid {
		if IsValidPAN(pan) {
			t.Errorf("IsValidPAN(%q) = true, want false", pan)
		}
	}
}

func TestIsValidUAN(t *testing.T) {
	if !IsValidUAN("123456789012") {
		t.Error("IsValidUAN(123456789012) = false, want true")
	}
	for _, uan := range []string{"12345678901", "1234567890123", "12345678901a", ""} {
		if IsValidUAN(uan) {
			t.Errorf("IsValidUAN(%q) = true, want false", uan)
		}
	}
}

func TestIsValidLoginID(t *testing.T) {
	valid := []string{"OIJODO20220001", "OIABCD20250042"}
	invalid := []string{"OIJOD020220001", "XXJODO20220001", "OIJODO2022001", ""}
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

func TestIsValidPhoneNumber(t *testing.T) {
	valid := []string{"0812345678", "+919876543210", "91-9876-543210"}
	invalid := []string{"12345", "abcdefghij", ""}
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
