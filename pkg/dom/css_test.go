package dom

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseCSSText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Declaration
	}{
		{
			name: "empty",
			text: "",
			want: []Declaration{},
		},
		{
			name: "simple pairs",
			text: "color: red; width: 10px",
			want: []Declaration{
				{Property: "color", Value: "red"},
				{Property: "width", Value: "10px"},
			},
		},
		{
			name: "important priority",
			text: "color: red !important;",
			want: []Declaration{
				{Property: "color", Value: "red", Priority: "important"},
			},
		},
		{
			name: "important without space and mixed case",
			text: "COLOR: blue!IMPORTANT",
			want: []Declaration{
				{Property: "color", Value: "blue", Priority: "important"},
			},
		},
		{
			name: "semicolon inside url and quotes",
			text: `background: url("a;b.png"); content: ';'`,
			want: []Declaration{
				{Property: "background", Value: `url("a;b.png")`},
				{Property: "content", Value: "';'"},
			},
		},
		{
			name: "custom property keeps case",
			text: "--Main-Color: #fff",
			want: []Declaration{
				{Property: "--Main-Color", Value: "#fff"},
			},
		},
		{
			name: "malformed entries dropped",
			text: "color; : red; width:; height: 1px",
			want: []Declaration{
				{Property: "height", Value: "1px"},
			},
		},
		{
			name: "comments and escaped quotes",
			text: `color: /* a; b */ red; content: "x\"; y"`,
			want: []Declaration{
				{Property: "color", Value: "red"},
				{Property: "content", Value: `"x\"; y"`},
			},
		},
		{
			name: "functions and whitespace",
			text: "width: calc(1px + var(--gap, 2px)); margin: 0 \n  auto",
			want: []Declaration{
				{Property: "width", Value: "calc(1px + var(--gap, 2px))"},
				{Property: "margin", Value: "0 auto"},
			},
		},
		{
			name: "invalid property names dropped",
			text: "a b: 1; 2: 3; top: 0",
			want: []Declaration{
				{Property: "top", Value: "0"},
			},
		},
		{
			name: "duplicate updates in place",
			text: "color: red; width: 1px; color: blue",
			want: []Declaration{
				{Property: "color", Value: "blue"},
				{Property: "width", Value: "1px"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCSSText(tt.text).All()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseCSSText() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDeclarationsSetProperty(t *testing.T) {
	d := &Declarations{}

	if err := d.SetProperty("Color", "red", "IMPORTANT"); err != nil {
		t.Fatalf("SetProperty() error = %v", err)
	}
	if got := d.GetPropertyValue("color"); got != "red" {
		t.Errorf("GetPropertyValue() = %q, want %q", got, "red")
	}
	if got := d.GetPropertyPriority("color"); got != "important" {
		t.Errorf("GetPropertyPriority() = %q, want %q", got, "important")
	}

	// Unknown priorities are ignored.
	if err := d.SetProperty("color", "blue", "urgent"); err != nil {
		t.Fatalf("SetProperty() error = %v", err)
	}
	if got := d.GetPropertyValue("color"); got != "red" {
		t.Errorf("value after invalid priority = %q, want %q", got, "red")
	}

	// A priority inside the value is not accepted.
	if err := d.SetProperty("color", "green !important", ""); err != nil {
		t.Fatalf("SetProperty() error = %v", err)
	}
	if got := d.GetPropertyValue("color"); got != "red" {
		t.Errorf("value after inline priority = %q, want %q", got, "red")
	}

	if err := d.SetProperty("width", "10px", ""); err != nil {
		t.Fatalf("SetProperty() error = %v", err)
	}
	if d.Len() != 2 || d.Item(0) != "color" || d.Item(1) != "width" {
		t.Errorf("items = [%q %q], len %d", d.Item(0), d.Item(1), d.Len())
	}
	if d.Item(5) != "" {
		t.Errorf("Item(5) = %q, want empty", d.Item(5))
	}

	// Empty value removes.
	if err := d.SetProperty("color", "", ""); err != nil {
		t.Fatalf("SetProperty() error = %v", err)
	}
	if d.Len() != 1 || d.Item(0) != "width" {
		t.Errorf("after removal len = %d, item0 = %q", d.Len(), d.Item(0))
	}

	if err := d.SetProperty("  ", "x", ""); !errors.Is(err, ErrSyntax) {
		t.Errorf("empty name error = %v, want ErrSyntax", err)
	}
}

func TestDeclarationsCSSText(t *testing.T) {
	d := ParseCSSText("color: red !important; width: 10px")
	want := "color: red !important; width: 10px;"
	if got := d.CSSText(); got != want {
		t.Errorf("CSSText() = %q, want %q", got, want)
	}
	if got := ParseCSSText(d.CSSText()).CSSText(); got != want {
		t.Errorf("round trip = %q, want %q", got, want)
	}
	if got := (&Declarations{}).CSSText(); got != "" {
		t.Errorf("empty CSSText() = %q", got)
	}
}

func TestSplitImportant(t *testing.T) {
	tests := []struct {
		in, value, priority string
	}{
		{"red", "red", ""},
		{"red !important", "red", "important"},
		{"red ! important", "red", "important"},
		{"red !unimportant", "red !unimportant", ""},
		{"!important", "", "important"},
		{`"!important"`, `"!important"`, ""},
		{"red  /* x */ !  IMPORTANT", "red", "important"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, p := SplitImportant(tt.in)
			if v != tt.value || p != tt.priority {
				t.Errorf("SplitImportant(%q) = (%q, %q), want (%q, %q)", tt.in, v, p, tt.value, tt.priority)
			}
		})
	}
}
