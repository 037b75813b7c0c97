package session

// NotFoundText is the body returned when the repository has no such session.
const NotFoundText = "Session not found."

// Outcome kinds, also used as metric labels.
const (
	KindRedirect = "redirect"
	KindContent  = "not_found"
	KindView     = "view"
)

// Result is one of Redirect, Content or View.
type Result interface {
	Kind() string
	isResult()
}

// Redirect names its target by controller and action; transports resolve it to a route.
type Redirect struct {
	Controller string
	Action     string
}

// Content is literal text returned to the caller.
type Content struct {
	Text string
}

// View carries the model to render.
type View struct {
	Model StormSessionViewModel
}

func (Redirect) Kind() string { return KindRedirect }
func (Content) Kind() string  { return KindContent }
func (View) Kind() string     { return KindView }

func (Redirect) isResult() {}
func (Content) isResult()  {}
func (View) isResult()     {}
