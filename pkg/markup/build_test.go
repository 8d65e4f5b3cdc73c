package markup

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vango-dev/elmen"
	"github.com/vango-dev/elmen/pkg/dom"
	"github.com/vango-dev/elmen/pkg/render"
	"github.com/vango-dev/elmen/pkg/vdom"
)

func mustDecode(t *testing.T, s string) *Element {
	t.Helper()
	el, err := DecodeString(s)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	return el
}

func TestBuild(t *testing.T) {
	clicks := 0
	focused := false
	reg := NewRegistry().
		ListenerFunc("log", func(dom.Event) { clicks++ }).
		Action("focus", func(el dom.Element) { focused = true })

	desc := mustDecode(t, `{
		"tag": "div",
		"attributes": {"id": "x"},
		"classes": ["a"],
		"css": [["color", "red !important"]],
		"children": ["hi", 5, null, {"tag": "span", "css": "width: 1px"}, ["g1", "g2"]],
		"listeners": [{"type": "click", "listener": "log", "once": true}],
		"actions": ["focus"]
	}`)

	doc := vdom.NewDocument()
	out, err := Build(doc, desc, reg)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	node := out.(*vdom.VNode)

	html, err := render.NewRenderer(render.RendererConfig{}).RenderToString(node)
	if err != nil {
		t.Fatalf("RenderToString() error = %v", err)
	}
	want := `<div id="x" class="a" style="color: red !important;">hi5<span style="width: 1px;"></span>g1g2</div>`
	if html != want {
		t.Errorf("html = %q, want %q", html, want)
	}

	if !focused {
		t.Error("action did not run")
	}
	if diff := cmp.Diff(dom.ListenerOptions{"once": true}, node.ListenerOptions("click", 0)); diff != "" {
		t.Errorf("listener options mismatch (-want +got):\n%s", diff)
	}
	vdom.Dispatch(node, vdom.NewEvent("click"))
	vdom.Dispatch(node, vdom.NewEvent("click"))
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
}

func TestBuildErrors(t *testing.T) {
	reg := NewRegistry().ListenerFunc("log", func(dom.Event) {})

	tests := []struct {
		name string
		in   string
		path string
		want error
	}{
		{"odd flat css", `{"tag": "p", "css": ["color"]}`, "", elmen.ErrMalformedArguments},
		{"nested odd flat css", `{"tag": "p", "children": [{"tag": "b"}, {"tag": "i", "css": ["x"]}]}`, "children[1]", elmen.ErrMalformedArguments},
		{"group child", `{"tag": "p", "children": [[{"tag": "i", "css": [["a"]]}]]}`, "children[0][0]", elmen.ErrMalformedArguments},
		{"unknown listener", `{"tag": "p", "listeners": [{"type": "click", "listener": "nope"}]}`, "listeners[0].listener", elmen.ErrMissingField},
		{"missing listener", `{"tag": "p", "listeners": [{"type": "click"}]}`, "listeners[0]", elmen.ErrMissingField},
		{"missing type", `{"tag": "p", "listeners": [{"listener": "log"}]}`, "listeners[0]", elmen.ErrMissingField},
		{"unknown action", `{"tag": "p", "actions": ["a", "b"]}`, "actions[0]", elmen.ErrMissingField},
		{"bad tag", `{"tag": "a b"}`, "", elmen.ErrHostFailure},
		{"nested group", `{"tag": "p", "children": [[["x"]]]}`, "", elmen.ErrTypeKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(vdom.NewDocument(), mustDecode(t, tt.in), reg)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Build() error = %v, want %v", err, tt.want)
			}
			var pe *PathError
			if !errors.As(err, &pe) {
				t.Fatalf("Build() error = %T, want *PathError", err)
			}
			if pe.Path != tt.path {
				t.Errorf("Path = %q, want %q", pe.Path, tt.path)
			}
		})
	}
}

func TestBuildNil(t *testing.T) {
	if _, err := Build(vdom.NewDocument(), nil, nil); !errors.Is(err, ErrInvalid) {
		t.Errorf("Build(nil) error = %v, want ErrInvalid", err)
	}
}

func TestBuildVerbosity(t *testing.T) {
	desc := mustDecode(t, `{"tag": "p", "children": [[["x"]]]}`)
	out, err := Build(vdom.NewDocument(), desc, nil, elmen.WithVerbosity(elmen.NoChecks))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got := out.TextContent(); got != "x" {
		t.Errorf("TextContent() = %q, want %q", got, "x")
	}
}

func TestRegistryNames(t *testing.T) {
	reg := NewRegistry().
		ListenerFunc("b", func(dom.Event) {}).
		ListenerFunc("a", func(dom.Event) {}).
		Action("z", func(dom.Element) {})

	listeners, actions := reg.Names()
	if diff := cmp.Diff([]string{"a", "b"}, listeners); diff != "" {
		t.Errorf("listeners mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"z"}, actions); diff != "" {
		t.Errorf("actions mismatch (-want +got):\n%s", diff)
	}
}

type parentKey struct{}

// tree records which builder each builder was started under.
type tree struct {
	started []string
	ended   int
}

func (tr *tree) Begin(ctx context.Context, tag string) elmen.Span {
	parent, _ := ctx.Value(parentKey{}).(string)
	tr.started = append(tr.started, parent+">"+tag)
	return &treeSpan{tr: tr, ctx: context.WithValue(ctx, parentKey{}, tag)}
}

type treeSpan struct {
	tr  *tree
	ctx context.Context
}

func (s *treeSpan) Op(string, error)         {}
func (s *treeSpan) End(error)                { s.tr.ended++ }
func (s *treeSpan) Context() context.Context { return s.ctx }

func TestBuildNestsChildBuilders(t *testing.T) {
	tr := &tree{}
	desc := mustDecode(t, `{"tag": "ul", "children": [{"tag": "li", "children": [{"tag": "b"}]}, [{"tag": "li"}]]}`)

	if _, err := Build(vdom.NewDocument(), desc, nil, elmen.WithObserver(tr)); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	want := []string{">ul", "ul>li", "li>b", "ul>li"}
	if diff := cmp.Diff(want, tr.started); diff != "" {
		t.Errorf("builders mismatch (-want +got):\n%s", diff)
	}
	if tr.ended != len(tr.started) {
		t.Errorf("ended %d of %d builders", tr.ended, len(tr.started))
	}
}

func TestBuildFinalizesOnError(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		started int
	}{
		{"failing sibling", `{"tag": "p", "children": [{"tag": "b"}, {"tag": "i", "css": ["x"]}, {"tag": "u"}]}`, 3},
		{"rejected group", `{"tag": "p", "children": [{"tag": "b"}, [["x"]], {"tag": "i"}]}`, 3},
		{"failing listener", `{"tag": "p", "children": [{"tag": "b"}], "listeners": [{"type": "click"}]}`, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &tree{}
			if _, err := Build(vdom.NewDocument(), mustDecode(t, tt.in), nil, elmen.WithObserver(tr)); err == nil {
				t.Fatal("Build() error = nil")
			}
			if len(tr.started) != tt.started || tr.ended != tt.started {
				t.Errorf("started %v, ended %d, want %d of each", tr.started, tr.ended, tt.started)
			}
		})
	}
}
