package server

import (
	"html/template"
	"strconv"

	"github.com/piwi3910/ScatterBoard/internal/model"
)

// pageData feeds the fixture page template.
type pageData struct {
	Fixture model.FixtureSpec
	Layout  model.LayoutResult
}

var pageFuncs = template.FuncMap{
	"px": func(v float64) string {
		return strconv.FormatFloat(v, 'f', 1, 64) + "px"
	},
	"isInput": func(k model.WidgetKind) bool { return k == model.KindInput },
	"color": func(c string) string {
		if c == "" {
			return model.DefaultColors()[0]
		}
		return c
	},
	"footerTop": func(v model.Viewport) float64 { return v.Height - v.FooterHeight },
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>ScatterBoard fixtures</title>
<style>
body { font-family: sans-serif; margin: 2em; }
td, th { padding: 4px 12px; text-align: left; }
</style>
</head>
<body>
<h1>Fixtures</h1>
<table>
<tr><th>Name</th><th>Description</th><th>Widgets</th><th>Viewport</th></tr>
{{range .}}<tr>
<td><a href="/fixtures/{{.Name}}">{{.Name}}</a></td>
<td>{{.Description}}</td>
<td>{{.Requests}}</td>
<td>{{.Viewport.Width}} x {{.Viewport.Height}}</td>
</tr>
{{end}}</table>
</body>
</html>
`))

// fixtureTemplate renders the laid-out widgets as absolutely positioned
// elements. Every pointer press on the surface is reported back so the
// server can hit-test it against the layout it produced.
var fixtureTemplate = template.Must(template.New("fixture").Funcs(pageFuncs).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Fixture.Name}}</title>
<style>
html, body { margin: 0; padding: 0; }
#surface { position: relative; overflow: hidden; background: #fafafa;
  width: {{px .Fixture.Viewport.Width}}; height: {{px .Fixture.Viewport.Height}}; }
#header, #footer { position: absolute; left: 0; width: 100%; background: #263238; color: #eceff1;
  font: 14px sans-serif; box-sizing: border-box; padding: 8px; }
.obstacle { position: absolute; background: repeating-linear-gradient(45deg, #ccc, #ccc 4px, #eee 4px, #eee 8px); }
.widget { position: absolute; box-sizing: border-box; margin: 0; font: 13px sans-serif; }
button.widget { border: 1px solid #333; border-radius: 4px; color: #fff; cursor: pointer; }
button.clear { background: #9e9e9e; }
input.widget { border: 2px solid; padding: 0 6px; }
</style>
</head>
<body>
<div id="surface">
  <div id="header" style="top: 0; height: {{px .Fixture.Viewport.HeaderHeight}};">{{.Fixture.Name}} <span id="seed">seed {{.Layout.Seed}}</span></div>
  {{range .Layout.Obstacles}}<div class="obstacle" style="left: {{px .X}}; top: {{px .Y}}; width: {{px .Width}}; height: {{px .Height}};"></div>
  {{end}}
  {{range $i, $w := .Layout.Widgets}}{{with $w.Request}}
  {{if isInput .Kind}}<input class="widget" id="w-{{.ID}}" data-index="{{$i}}" placeholder="{{.Label}}" aria-label="{{.Label}}"
    style="left: {{px $w.Rect.X}}; top: {{px $w.Rect.Y}}; width: {{px $w.Rect.Width}}; height: {{px $w.Rect.Height}}; border-color: {{color .Color}};">
  {{else}}<button class="widget" id="w-{{.ID}}" data-index="{{$i}}"
    style="left: {{px $w.Rect.X}}; top: {{px $w.Rect.Y}}; width: {{px $w.Rect.Width}}; height: {{px $w.Rect.Height}}; background: {{color .Color}};">{{.Label}}</button>
  {{end}}{{if $w.Companion}}{{with $w.Companion}}<button class="widget clear" id="c-{{$w.Request.ID}}" data-index="{{$i}}" aria-label="Clear {{$w.Request.Label}}"
    style="left: {{px .X}}; top: {{px .Y}}; width: {{px .Width}}; height: {{px .Height}};">&times;</button>
  {{end}}{{end}}{{end}}{{end}}
  {{if gt .Fixture.Viewport.FooterHeight 0.0}}<div id="footer" style="top: {{px (footerTop .Fixture.Viewport)}}; height: {{px .Fixture.Viewport.FooterHeight}};"></div>{{end}}
</div>
<script>
const layout = {{.Layout}};
const clicksURL = "/api/fixtures/" + encodeURIComponent({{.Fixture.Name}}) + "/clicks";
const surface = document.getElementById("surface");
surface.addEventListener("mousedown", (ev) => {
  const box = surface.getBoundingClientRect();
  fetch(clicksURL, {
    method: "POST",
    headers: { "Content-Type": "application/json" },
    body: JSON.stringify({ x: ev.clientX - box.left, y: ev.clientY - box.top }),
  });
});
document.querySelectorAll("button.clear").forEach((btn) => {
  btn.addEventListener("click", () => {
    const input = document.getElementById("w-" + btn.id.slice(2));
    if (input) { input.value = ""; }
  });
});
window.scatterboard = { layout };
</script>
</body>
</html>
`))
