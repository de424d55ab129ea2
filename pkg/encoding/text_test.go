package encoding

import "testing"

func TestToLatin1(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ascii", "Happy Birthday", "Happy Birthday"},
		{"precomposed", "Joyeux anniversaire, Zo\u00eb", "Joyeux anniversaire, Zo\u00eb"},
		{"decomposed", "Zoe\u0308", "Zo\u00eb"},
		{"newline", "Happy\nBirthday", "Happy\nBirthday"},
		{"hangul", "생일 축하해", "?? ???"},
		{"emoji", "Cake 🎂", "Cake ?"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToLatin1(tt.in); got != tt.want {
				t.Errorf("ToLatin1(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsLatin1(t *testing.T) {
	if !IsLatin1("Zo\u00eb!") {
		t.Error("IsLatin1 rejected a Latin-1 letter")
	}
	if IsLatin1("Zoe\u0308") {
		t.Error("IsLatin1 accepted a combining mark")
	}
	if IsLatin1("🎂") {
		t.Error("IsLatin1 accepted an emoji")
	}
}
