package templates

import "time"

type (
	//ReportingInfo fills the batch report template
	ReportingInfo struct {
		Title     string
		Generated time.Time
		Session   string
		Source    string
		Total     int
		Intrusion int
		Normal    int
		Rows      []Row
	}

	//Row is one classified record of the batch
	Row struct {
		Index       int
		Prediction  string
		IsIntrusion bool
		Confidence  string
		Attack      string
		Normal      string
	}
)

var header = `
<head>
<meta content="text/html;charset=utf-8" http-equiv="Content-Type">
<meta content="utf-8" http-equiv="encoding">
<title>{{.Title}}</title>
<link rel="stylesheet" type="text/css" href="./style.css">
</head>
<ul>
  <li><a href="./index.html">idsdash</a></li>
  <li><span>{{.Title}}</span></li>
  <li style="float:right"><span>{{.Generated.Format "2006-01-02 15:04:05"}}</span></li>
</ul>
`

// BatchTempl is our batch results html template
var BatchTempl = header + `
<div class="info">Source: {{.Source}} &middot; session {{.Session}}</div>
<div class="container">
  <table class="summary">
    <tr><th>Total</th><th>Intrusions</th><th>Normal</th></tr>
    <tr><td>{{.Total}}</td><td>{{.Intrusion}}</td><td>{{.Normal}}</td></tr>
  </table>
</div>
<div class="container">
  <table>
    <tr><th>#</th><th>Prediction</th><th>Confidence</th><th>Attack Prob.</th><th>Normal Prob.</th></tr>
    {{range .Rows}}
    <tr{{if .IsIntrusion}} class="attack"{{end}}><td>{{.Index}}</td><td>{{.Prediction}}</td><td>{{.Confidence}}</td><td>{{.Attack}}</td><td>{{.Normal}}</td></tr>
    {{else}}
    <tr><td colspan="5">No records were classified</td></tr>
    {{end}}
  </table>
</div>
`
