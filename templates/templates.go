package templates

// Page is the layout state shared by every full page
type Page struct {
	Title  string
	Active string
	Flash  string
	User   string
	Admin  bool
}

// ChartView is a drawn chart and the surface it is attached to
type ChartView struct {
	SurfaceID string
	DataChart string
	Name      string
	HTML      string
}
