package viewer

import (
	"net/http"

	"github.com/agentic-research/lumiere/api"
	"github.com/agentic-research/lumiere/internal/emit"
	"github.com/agentic-research/lumiere/internal/prefs"
	"go.uber.org/zap"
)

type downloadLink struct {
	Href  string
	Label string
}

type pageData struct {
	Groups    []string
	Active    string
	Entries   []api.Token
	Swatches  bool
	Downloads []downloadLink
	Theme     prefs.Theme
	NavTab    prefs.NavTab
	Tabs      []prefs.NavTab
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	doc := s.docs.Current()
	groups := doc.Names()

	active := r.URL.Query().Get("group")
	if active == "" && len(groups) > 0 {
		active = groups[0]
	}
	var entries []api.Token
	if c, ok := doc.Category(active); ok {
		entries = c.Tokens
	} else if active != "" {
		http.NotFound(w, r)
		return
	}

	theme, err := s.prefs.Theme(r.Context())
	if err != nil {
		s.prefError(w, err)
		return
	}
	tab, err := s.prefs.NavTab(r.Context())
	if err != nil {
		s.prefError(w, err)
		return
	}

	data := pageData{
		Groups:   groups,
		Active:   active,
		Entries:  entries,
		Swatches: active == api.CategoryColors,
		Theme:    theme,
		NavTab:   tab,
		Tabs:     prefs.NavTabs(),
	}
	for _, f := range emit.DownloadFormats() {
		data.Downloads = append(data.Downloads, downloadLink{
			Href:  "/download/" + f.Ext(),
			Label: "Download tokens." + f.Ext(),
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(w, data); err != nil {
		s.logger.Error("render index", zap.Error(err))
	}
}

const indexTemplate = `<!doctype html>
<html lang="en" data-theme="{{.Theme}}">
<head>
<meta charset="utf-8">
<title>Design Tokens</title>
</head>
<body>
<nav>
{{- range .Tabs}}
  <span class="tab{{if eq . $.NavTab}} active{{end}}">{{.}}</span>
{{- end}}
</nav>
<section data-section="tokens">
<h2>Design Tokens</h2>
<p>These are the source values used to power colors, typography, and spacing. Browse them below or download a copy.</p>
<div class="downloads">
{{- range .Downloads}}
  <a href="{{.Href}}" download>{{.Label}}</a>
{{- end}}
</div>
<div class="groups">
{{- range .Groups}}
  <a href="/?group={{.}}" class="group{{if eq . $.Active}} active{{end}}">{{.}}</a>
{{- end}}
</div>
<div class="entries">
{{- range .Entries}}
  <div class="entry">
    <div class="name">{{.Name}}</div>
    <div class="value">{{.Value}}</div>
    {{- if $.Swatches}}
    <div class="swatch" style="background-color: {{.Value}}" aria-label="Color swatch for {{.Name}}" title="{{.Name}}: {{.Value}}"></div>
    {{- end}}
  </div>
{{- end}}
</div>
</section>
</body>
</html>
`
