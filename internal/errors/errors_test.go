package errors

import (
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/elmen"
	"github.com/vango-dev/elmen/pkg/markup"
	"github.com/vango-dev/elmen/pkg/vdom"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "builder error",
			code:    CodeMalformedArguments,
			wantMsg: "Malformed CSS arguments",
			wantCat: CategoryBuilder,
		},
		{
			name:    "markup error",
			code:    CodeMarkupSyntax,
			wantMsg: "Invalid JSON",
			wantCat: CategoryMarkup,
		},
		{
			name:    "config error",
			code:    CodeConfigInvalid,
			wantMsg: "Invalid elmen.json",
			wantCat: CategoryConfig,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "file %q not found", "page.json")
	if err.Message != `file "page.json" not found` {
		t.Errorf("Message = %q, want %q", err.Message, `file "page.json" not found`)
	}
	if err.Category != CategoryCLI {
		t.Errorf("Category = %q, want %q", err.Category, CategoryCLI)
	}
}

func TestElmenError_Error(t *testing.T) {
	tests := []struct {
		err  *ElmenError
		want string
	}{
		{New(CodeFinalized), "E004: Builder already finalized"},
		{&ElmenError{Message: "test error"}, "test error"},
		{New(CodeMarkupInvalid).WithPath("css"), "E101: Invalid element description at css"},
		{New(CodeHostFailure).Wrap(stderrors.New("boom")), "E005: Host rejected the operation: boom"},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestElmenError_WithLocation(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "page.json")
	content := "{\n  \"tag\": \"div\",\n  \"css\": 3,\n  \"children\": []\n}\n"
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	err := New(CodeMarkupInvalid).WithLocation(tmpFile, 3, 10)

	if err.Location == nil {
		t.Fatal("Location is nil")
	}
	if err.Location.File != tmpFile || err.Location.Line != 3 || err.Location.Column != 10 {
		t.Errorf("Location = %+v", err.Location)
	}
	if len(err.Context) != 5 {
		t.Errorf("Context = %q, want 5 lines", err.Context)
	}
}

func TestElmenError_With(t *testing.T) {
	err := New(CodeTypeKind).WithSuggestion("use a string").WithDetail("custom detail")
	if err.Suggestion != "use a string" {
		t.Errorf("Suggestion = %q", err.Suggestion)
	}
	if err.Detail != "custom detail" {
		t.Errorf("Detail = %q", err.Detail)
	}
}

func TestElmenError_Wrap(t *testing.T) {
	inner := New(CodeTypeKind)
	outer := New(CodeRenderFailed).Wrap(inner)

	if outer.Wrapped != inner {
		t.Error("Wrapped error mismatch")
	}
	if outer.Unwrap() != inner {
		t.Error("Unwrap() should return wrapped error")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, CodeRenderFailed) != nil {
		t.Error("FromError(nil, ...) should return nil")
	}

	ee := New(CodeTypeKind)
	if FromError(ee, CodeRenderFailed) != ee {
		t.Error("FromError should return ElmenError as-is")
	}

	stdErr := stderrors.New("test error")
	if result := FromError(stdErr, CodeOutputFailed); result.Wrapped != stdErr || result.Code != CodeOutputFailed {
		t.Errorf("FromError() = %+v", result)
	}
}

func TestFromBuild(t *testing.T) {
	doc := vdom.NewDocument()
	build := func(s string) error {
		desc, err := markup.DecodeString(s)
		if err != nil {
			return err
		}
		_, err = markup.Build(doc, desc, nil)
		return err
	}

	tests := []struct {
		name     string
		err      error
		wantCode string
		wantPath string
	}{
		{"nil", nil, "", ""},
		{"syntax", build(`{"tag": }`), CodeMarkupSyntax, ""},
		{"invalid description", build(`{"tag": "p", "css": 3}`), CodeMarkupInvalid, "css"},
		{"malformed css", build(`{"tag": "p", "children": [{"tag": "i", "css": ["x"]}]}`), CodeMalformedArguments, "children[0]"},
		{"unknown action", build(`{"tag": "p", "actions": ["go"]}`), CodeMissingField, "actions[0]"},
		{"host failure", build(`{"tag": "a b"}`), CodeHostFailure, ""},
		{"plain builder error", elmen.ErrFinalized, CodeFinalized, ""},
		{"other", stderrors.New("disk full"), CodeOutputFailed, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromBuild(tt.err, CodeOutputFailed)
			if tt.err == nil {
				if got != nil {
					t.Fatalf("FromBuild(nil) = %v", got)
				}
				return
			}
			if got.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q (%v)", got.Code, tt.wantCode, tt.err)
			}
			if got.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", got.Path, tt.wantPath)
			}
			if !stderrors.Is(got, tt.err) {
				t.Error("converted error does not wrap the original")
			}
		})
	}

	ee := New(CodeConfigValue)
	if FromBuild(ee, CodeOutputFailed) != ee {
		t.Error("FromBuild should return ElmenError as-is")
	}
}

func TestOffset(t *testing.T) {
	data := []byte("{\n  \"tag\": ,\n}")
	tests := []struct {
		offset    int64
		line, col int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{2, 2, 1},
		{11, 2, 10},
		{999, 3, 2},
		{-5, 1, 1},
	}

	for _, tt := range tests {
		line, col := Offset(data, tt.offset)
		if line != tt.line || col != tt.col {
			t.Errorf("Offset(%d) = %d:%d, want %d:%d", tt.offset, line, col, tt.line, tt.col)
		}
	}
}

func TestSyntaxOffset(t *testing.T) {
	var v any
	err := json.Unmarshal([]byte(`{"tag": }`), &v)
	if off, ok := SyntaxOffset(err); !ok || off == 0 {
		t.Errorf("SyntaxOffset() = %d, %v", off, ok)
	}
	if _, ok := SyntaxOffset(stderrors.New("x")); ok {
		t.Error("SyntaxOffset() found an offset in a plain error")
	}
}

func TestLocation_String(t *testing.T) {
	tests := []struct {
		name string
		loc  *Location
		want string
	}{
		{
			name: "nil location",
			loc:  nil,
			want: "",
		},
		{
			name: "with column",
			loc:  &Location{File: "page.json", Line: 10, Column: 5},
			want: "page.json:10:5",
		},
		{
			name: "without column",
			loc:  &Location{File: "page.json", Line: 10, Column: 0},
			want: "page.json:10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.loc.String()
			if got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	tmpFile := filepath.Join(t.TempDir(), "page.json")
	content := "{\n  \"tag\": \"p\",\n  \"css\": [\"color\"]\n}\n"
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	err := New(CodeMalformedArguments).
		WithPath("css").
		WithLocation(tmpFile, 3, 10).
		Wrap(stderrors.New("odd token count"))

	formatted := err.Format()
	for _, want := range []string{
		"ERROR E003: Malformed CSS arguments",
		"at css",
		tmpFile + ":3:10",
		`→    3 │   "css": ["color"]`,
		"│ " + strings.Repeat(" ", 9) + "^",
		"Hint:",
		"Cause: odd token count",
		"Learn more: https://elmen.dev/docs/errors/E003",
	} {
		if !strings.Contains(formatted, want) {
			t.Errorf("Format() missing %q:\n%s", want, formatted)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	err := New(CodeMarkupInvalid).WithPath("children[0]")
	err.Location = &Location{File: "page.json", Line: 10, Column: 5}

	want := "page.json:10:5: E101: Invalid element description at children[0]"
	if got := err.FormatCompact(); got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}
}

func TestFormatJSON(t *testing.T) {
	err := New(CodeMarkupInvalid).WithPath("css").Wrap(stderrors.New("bad"))
	err.Location = &Location{File: "page.json", Line: 10, Column: 5}

	var got map[string]any
	if e := json.Unmarshal([]byte(err.FormatJSON()), &got); e != nil {
		t.Fatalf("FormatJSON() is not JSON: %v", e)
	}
	if got["code"] != "E101" || got["category"] != "markup" || got["path"] != "css" || got["cause"] != "bad" {
		t.Errorf("FormatJSON() = %v", got)
	}
	loc, _ := got["location"].(map[string]any)
	if loc["file"] != "page.json" || loc["line"] != float64(10) {
		t.Errorf("location = %v", loc)
	}
}

func TestPrintError(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var b strings.Builder
	PrintError(&b, New(CodeFinalized))
	if !strings.Contains(b.String(), "ERROR E004") {
		t.Errorf("PrintError() = %q", b.String())
	}

	b.Reset()
	PrintError(&b, stderrors.New("plain"))
	if !strings.Contains(b.String(), "ERROR: plain") {
		t.Errorf("PrintError() = %q", b.String())
	}
}

func TestGetAllCodes(t *testing.T) {
	codes := GetAllCodes()
	for _, want := range []string{CodeTypeKind, CodeMissingField, CodeMalformedArguments, CodeFinalized, CodeHostFailure} {
		found := false
		for _, code := range codes {
			if code == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("%s should be in the codes list", want)
		}
	}
}

func TestKindCodesCoverEveryKind(t *testing.T) {
	for _, kind := range []elmen.Kind{elmen.TypeKind, elmen.MissingField, elmen.MalformedArguments, elmen.Finalized, elmen.HostFailure} {
		code, ok := kindCodes[kind]
		if !ok {
			t.Errorf("no code for %v", kind)
			continue
		}
		if _, ok := GetTemplate(code); !ok {
			t.Errorf("code %s for %v is not registered", code, kind)
		}
	}
}

func TestRegister(t *testing.T) {
	Register("E999", ErrorTemplate{
		Category: CategoryCLI,
		Message:  "Custom test error",
		Detail:   "This is a test error",
		DocURL:   "https://test.dev/E999",
	})
	defer delete(registry, "E999")

	err := New("E999")
	if err.Message != "Custom test error" {
		t.Errorf("Message = %q, want %q", err.Message, "Custom test error")
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("short text", 100)
	if len(got) != 1 || got[0] != "short text" {
		t.Errorf("wrapText short text: got %v", got)
	}

	got = wrapText("this is a longer text that should be wrapped", 20)
	if len(got) != 3 {
		t.Errorf("wrapText long text: expected 3 lines, got %d: %v", len(got), got)
	}

	got = wrapText("", 10)
	if len(got) != 0 {
		t.Errorf("wrapText empty: expected empty, got %v", got)
	}
}

func TestColorFunctions(t *testing.T) {
	EnableColors()
	if !strings.Contains(red("test"), "\033[31m") {
		t.Error("red should contain ANSI code when colors enabled")
	}

	DisableColors()
	if strings.Contains(red("test"), "\033[") {
		t.Error("red should not contain ANSI code when colors disabled")
	}
	EnableColors()
}
