package httpx

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/target/marketplace-console/internal/domain/model"
	"github.com/target/marketplace-console/internal/domain/workflow"
	"github.com/target/marketplace-console/internal/http/uiutil"
)

//go:embed templates
var embeddedTemplates embed.FS

// TemplateRenderer renders the console's HTML screens.
type TemplateRenderer struct {
	t      *template.Template
	logger *slog.Logger
	now    func() time.Time
}

// TemplateRendererConfig configures NewTemplateRenderer.
type TemplateRendererConfig struct {
	// TemplateFS overrides the embedded templates, e.g. os.DirFS for live editing. It must
	// contain layout.tmpl, pages/ and partials/ at its root.
	TemplateFS fs.FS
	Logger     *slog.Logger
}

// NewTemplateRenderer parses every template up front so a broken template fails at startup.
func NewTemplateRenderer(cfg TemplateRendererConfig) (*TemplateRenderer, error) {
	fsys := cfg.TemplateFS
	if fsys == nil {
		sub, err := fs.Sub(embeddedTemplates, "templates")
		if err != nil {
			return nil, err
		}
		fsys = sub
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := &TemplateRenderer{logger: logger, now: time.Now}
	var t *template.Template
	t, err := template.New("root").Funcs(r.funcs(&t)).ParseFS(fsys, "*.tmpl", "pages/*.tmpl", "partials/*.tmpl")
	if err != nil {
		logger.Error("template parsing failed", slog.Any("error", err))
		return nil, err
	}
	r.t = t
	return r, nil
}

// RenderFull renders the layout with the page content.
func (r *TemplateRenderer) RenderFull(w http.ResponseWriter, data any) error {
	return r.render(w, "layout", data)
}

// RenderPartial renders only the page content, for htmx swaps.
func (r *TemplateRenderer) RenderPartial(w http.ResponseWriter, data any) error {
	return r.render(w, "content", data)
}

// RenderFragment renders one named partial such as the job workflow panel.
func (r *TemplateRenderer) RenderFragment(w http.ResponseWriter, name string, data any) error {
	return r.render(w, name, data)
}

func (r *TemplateRenderer) render(w http.ResponseWriter, name string, data any) error {
	var buf bytes.Buffer
	if err := r.t.ExecuteTemplate(&buf, name, data); err != nil {
		r.logger.Error("template execution failed", slog.String("template", name), slog.Any("error", err))
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err := buf.WriteTo(w)
	return err
}

// ContentTemplateFor maps a page name to its content template.
func ContentTemplateFor(page string) string {
	return page + "-content"
}

func (r *TemplateRenderer) funcs(t **template.Template) template.FuncMap {
	return template.FuncMap{
		"renderSection": func(page string, data any) (template.HTML, error) {
			if t == nil || *t == nil {
				return "", errors.New("template not initialized")
			}
			var buf bytes.Buffer
			if err := (*t).ExecuteTemplate(&buf, ContentTemplateFor(page), data); err != nil {
				return "", err
			}
			// #nosec G203 - output of our own html/template execution, already escaped.
			return template.HTML(buf.String()), nil
		},
		"money": func(v any) string {
			switch m := v.(type) {
			case model.Money:
				return m.String()
			case *model.Money:
				if m == nil {
					return ""
				}
				return m.String()
			default:
				return ""
			}
		},
		"date":     uiutil.FormatDate,
		"datetime": uiutil.FormatDateTime,
		"ago":      func(ts time.Time) string { return uiutil.RelativeTime(ts, r.now()) },
		"humanize": func(v any) string { return uiutil.Humanize(stringOf(v)) },
		"tone":     func(v any) string { return uiutil.StatusTone(stringOf(v)) },
		"truncate": uiutil.Truncate,
		"label":    func(a workflow.Action) string { return a.Label() },
		"add":      func(a, b int) int { return a + b },
		"toJSON": func(v any) (string, error) {
			b, err := json.Marshal(v)
			return string(b), err
		},
		"lower": strings.ToLower,
		"eqs":   func(a, b any) bool { return stringOf(a) == stringOf(b) },
		"fieldError": func(errs map[string]string, field string) string {
			return errs[field]
		},
		"list": func(items ...string) []string { return items },
		"dict": dict,
	}
}

// dict builds a map from alternating keys and values for passing several values to a template.
func dict(kv ...any) (map[string]any, error) {
	if len(kv)%2 != 0 {
		return nil, errors.New("dict needs an even number of arguments")
	}
	m := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict key %v is not a string", kv[i])
		}
		m[k] = kv[i+1]
	}
	return m, nil
}

// stringOf accepts the string-kinded enums the models use.
func stringOf(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
