package api

import (
	"html/template"
	"net/http"
)

var formTemplate = template.Must(template.New("form").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>TOPSIS</title>
</head>
<body>
<h1>TOPSIS ranking</h1>
<form action="{{.Action}}" method="post" enctype="multipart/form-data">
  <p><label>Input file (.csv or .xlsx) <input type="file" name="file" accept=".csv,.xlsx" required></label></p>
  <p><label>Weights <input type="text" name="weights" placeholder="1,1,1,2" required></label></p>
  <p><label>Impacts <input type="text" name="impacts" placeholder="-,+,+,+" required></label></p>
  <p><label>Email (optional) <input type="email" name="email"></label></p>
  <p><button type="submit">Submit</button></p>
</form>
<p>Uploads are limited to {{.MaxUploadMiB}} MiB.</p>
</body>
</html>
`))

type formData struct {
	Action       string
	MaxUploadMiB int64
}

// Form handles GET /
func (h *RunsHandler) Form(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := formData{Action: "/api/v1/runs", MaxUploadMiB: h.maxUpload >> 20}
	if err := formTemplate.Execute(w, data); err != nil {
		h.logger.Error("failed to render form", "error", err)
	}
}
