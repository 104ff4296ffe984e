package handlers

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/a-h/templ"
)

//go:embed openapi.json
var openAPISpec []byte

type apiRoute struct {
	Method  string
	Path    string
	Summary string
}

type apiDoc struct {
	Title       string
	Version     string
	Description string
	Routes      []apiRoute
}

// loadAPIDoc reads the title and route list out of the embedded description.
func loadAPIDoc(raw []byte) (apiDoc, error) {
	var desc struct {
		Info struct {
			Title       string `json:"title"`
			Version     string `json:"version"`
			Description string `json:"description"`
		} `json:"info"`
		Paths map[string]map[string]struct {
			Summary string `json:"summary"`
		} `json:"paths"`
	}
	if err := json.Unmarshal(raw, &desc); err != nil {
		return apiDoc{}, err
	}
	doc := apiDoc{Title: desc.Info.Title, Version: desc.Info.Version, Description: desc.Info.Description}
	for path, ops := range desc.Paths {
		for method, op := range ops {
			doc.Routes = append(doc.Routes, apiRoute{Method: strings.ToUpper(method), Path: path, Summary: op.Summary})
		}
	}
	slices.SortFunc(doc.Routes, func(a, b apiRoute) int {
		if c := strings.Compare(a.Path, b.Path); c != 0 {
			return c
		}
		return strings.Compare(a.Method, b.Method)
	})
	return doc, nil
}

const docsHead = `<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <title>%s %s</title>
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <style>
      body { margin: 0; font-family: sans-serif; }
      header { padding: 1rem 1.5rem; }
      table { border-collapse: collapse; margin: 0 1.5rem 1rem; }
      td { padding: 0.2rem 0.8rem 0.2rem 0; }
      redoc { display: block; }
    </style>
  </head>
  <body>
`

const docsTail = `    <redoc spec-url="/v1/openapi.json"></redoc>
    <script src="https://cdn.jsdelivr.net/npm/redoc@2.2.0/bundles/redoc.standalone.js"></script>
  </body>
</html>
`

// docsPage is the route index followed by the interactive reference.
func docsPage(doc apiDoc) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, docsHead, templ.EscapeString(doc.Title), templ.EscapeString(doc.Version)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "    <header>\n      <h1>%s</h1>\n      <p>%s</p>\n      <p>Submissions are rate limited per client. Amounts are whole numbers of at least 10.</p>\n    </header>\n    <table>\n",
			templ.EscapeString(doc.Title), templ.EscapeString(doc.Description)); err != nil {
			return err
		}
		for _, r := range doc.Routes {
			if _, err := fmt.Fprintf(w, "      <tr><td><code>%s</code></td><td><code>%s</code></td><td>%s</td></tr>\n",
				templ.EscapeString(r.Method), templ.EscapeString(r.Path), templ.EscapeString(r.Summary)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "    </table>\n"); err != nil {
			return err
		}
		_, err := io.WriteString(w, docsTail)
		return err
	})
}

func (a *App) OpenAPIJSON(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(openAPISpec)
}

// OpenAPIDocs renders the route index followed by the interactive reference.
func (a *App) OpenAPIDocs(w http.ResponseWriter, r *http.Request) {
	doc, err := loadAPIDoc(openAPISpec)
	if err != nil {
		a.Logger.Error().Err(err).Msg("openapi description unreadable")
		a.error(w, http.StatusInternalServerError, "internal", "api description unavailable")
		return
	}
	templ.Handler(docsPage(doc)).ServeHTTP(w, r)
}
