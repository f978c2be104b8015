package normalize

import "testing"

func TestName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "case", in: "ANN", want: "ann"},
		{name: "spaces", in: "  Jean   Luc ", want: "jean luc"},
		{name: "empty", in: "   ", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Name(tt.in); got != tt.want {
				t.Errorf("Name(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTitle(t *testing.T) {
	if got := Title(" jean  luc"); got != "Jean Luc" {
		t.Errorf("Title() = %q", got)
	}
}
