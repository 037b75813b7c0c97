package web

type route struct {
	controller string
	action     string
}

// routes maps controller/action names used by redirect outcomes to paths.
var routes = map[route]string{
	{"Home", "Index"}:    "/",
	{"Session", "Index"}: "/session",
}

// URLFor resolves a controller/action pair. Unknown pairs resolve to the home page.
func URLFor(controller, action string) string {
	if path, ok := routes[route{controller, action}]; ok {
		return path
	}
	return "/"
}
