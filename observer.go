package elmen

import "context"

// Operation names reported to observers and used in error messages.
const (
	OpNew        = "new"
	OpAttributes = "withAttributes"
	OpClasses    = "withClasses"
	OpCSS        = "withCSS"
	OpChildren   = "withChildren"
	OpListeners  = "withListeners"
	OpActions    = "withActions"
	OpGet        = "get"
	OpDone       = "done"
)

// Observer is notified about builder lifecycles. Implementations must be
// safe for concurrent use when shared between builders.
type Observer interface {
	// Begin is called when a builder is created. tag is empty when the
	// builder holds no element.
	Begin(ctx context.Context, tag string) Span
}

// Span follows one builder from creation to Done.
type Span interface {
	// Op is called after every chained call with its outcome.
	Op(name string, err error)

	// End is called once when the builder is finalized.
	End(err error)
}

// ContextSpan is a Span that carries its own context, for example an
// OpenTelemetry span. Builders started from Builder.Context nest under it.
type ContextSpan interface {
	Span
	Context() context.Context
}

// Observers fans out to several observers.
func Observers(obs ...Observer) Observer {
	return multiObserver(obs)
}

type multiObserver []Observer

// Begin starts each observer from the context of the last ContextSpan
// before it.
func (m multiObserver) Begin(ctx context.Context, tag string) Span {
	spans := &multiSpan{spans: make([]Span, 0, len(m)), ctx: ctx}
	for _, o := range m {
		if o == nil {
			continue
		}
		s := o.Begin(spans.ctx, tag)
		spans.spans = append(spans.spans, s)
		if cs, ok := s.(ContextSpan); ok {
			spans.ctx = cs.Context()
		}
	}
	return spans
}

type multiSpan struct {
	spans []Span
	ctx   context.Context
}

func (m *multiSpan) Op(name string, err error) {
	for _, s := range m.spans {
		s.Op(name, err)
	}
}

func (m *multiSpan) End(err error) {
	for _, s := range m.spans {
		s.End(err)
	}
}

func (m *multiSpan) Context() context.Context { return m.ctx }

type nopObserver struct{}

func (nopObserver) Begin(context.Context, string) Span { return nopSpan{} }

type nopSpan struct{}

func (nopSpan) Op(string, error) {}
func (nopSpan) End(error)        {}
