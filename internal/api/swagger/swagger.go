package swagger

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"
	"path"
)

//go:embed openapi.yaml
var openAPIDoc []byte

// DocFile is the name the OpenAPI document is served under.
const DocFile = "openapi.yaml"

// Handler serves the embedded OpenAPI document and a Swagger UI page that
// loads it. mount is the path prefix the handler is stripped from, so the
// page can point the UI at mount/openapi.yaml.
func Handler(mount string) http.Handler {
	page := renderPage(path.Join("/", mount, DocFile))

	mux := http.NewServeMux()
	mux.HandleFunc("/"+DocFile, func(w http.ResponseWriter, r *http.Request) {
		if !readOnly(w, r) {
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(openAPIDoc)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" && r.URL.Path != "" {
			http.NotFound(w, r)
			return
		}
		if !readOnly(w, r) {
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	})
	return mux
}

func readOnly(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set("Allow", "GET, HEAD")
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	return false
}

func renderPage(docURL string) []byte {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, docURL); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// The UI bundle is loaded from the unpkg CDN.
var pageTemplate = template.Must(template.New("swagger").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Price Lookup API</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css">
  <style>body { margin: 0; } .swagger-ui .topbar { display: none; }</style>
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function () {
      window.ui = SwaggerUIBundle({url: {{.}}, dom_id: "#swagger-ui", docExpansion: "list"});
    };
  </script>
</body>
</html>
`))
