package reminder

import "testing"

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		tmpl string
		vars map[string]string
		want string
	}{
		{
			name: "simple substitution",
			tmpl: "{{x}}",
			vars: map[string]string{"x": "5"},
			want: "5",
		},
		{
			name: "missing variable substitutes empty",
			tmpl: "{{missing}}",
			vars: map[string]string{},
			want: "",
		},
		{
			name: "empty template",
			tmpl: "",
			vars: map[string]string{"x": "5"},
			want: "",
		},
		{
			name: "whitespace around name ignored",
			tmpl: "Hello {{  customer_name  }}!",
			vars: map[string]string{"customer_name": "Jane"},
			want: "Hello Jane!",
		},
		{
			name: "multiple tokens",
			tmpl: "{{a}} + {{b}} = {{c}}",
			vars: map[string]string{"a": "1", "b": "2", "c": "3"},
			want: "1 + 2 = 3",
		},
		{
			name: "repeated token",
			tmpl: "{{balance}} / {{balance}}",
			vars: map[string]string{"balance": "600"},
			want: "600 / 600",
		},
		{
			name: "nil vars",
			tmpl: "{{x}} done",
			vars: nil,
			want: " done",
		},
		{
			name: "no recursive expansion",
			tmpl: "{{outer}}",
			vars: map[string]string{"outer": "{{inner}}", "inner": "nope"},
			want: "{{inner}}",
		},
		{
			name: "values pass through unescaped",
			tmpl: "<b>{{v}}</b>",
			vars: map[string]string{"v": "<i>600</i>"},
			want: "<b><i>600</i></b>",
		},
		{
			name: "malformed token left literal",
			tmpl: "{{not closed",
			vars: map[string]string{"not": "x"},
			want: "{{not closed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.tmpl, tt.vars); got != tt.want {
				t.Errorf("Render(%q) = %q, want %q", tt.tmpl, got, tt.want)
			}
		})
	}
}
