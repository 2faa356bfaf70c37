// Package server exposes the converter over HTTP.
package server

import (
	"io"
	"net/http"

	"github.com/tencent-go/avrogen/converter"
	"github.com/tencent-go/avrogen/descriptor"
	"github.com/tencent-go/avrogen/errx"
	"github.com/tencent-go/avrogen/source"
)

const defaultMaxBodyBytes = 4 << 20

type Options struct {
	// Policy selects the classes converted when the request names none.
	Policy       source.Policy
	MaxBodyBytes int64
}

type SchemaView struct {
	Name     string `json:"name"`
	FullName string `json:"fullName"`
	Schema   string `json:"schema"`
}

type ConvertResponse struct {
	Schemas []SchemaView `json:"schemas"`
}

type handler struct {
	conv *converter.Converter
	opts Options
}

func New(conv *converter.Converter, opts Options) http.Handler {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	h := &handler{conv: conv, opts: opts}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/convert", h.convert)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJson(w, r, http.StatusOK, map[string]string{"status": "ok"}, nil)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeJson(w, r, http.StatusNotFound, nil, errx.NotFound.WithMsgf("route %s %s not found", r.Method, r.URL.Path).Err())
	})
	return LoggerMiddleware(mux)
}

func (h *handler) convert(w http.ResponseWriter, r *http.Request) {
	resp, err := h.doConvert(r)
	if err != nil {
		err = errx.Conversion.WithCause(err).WithType(err.Type()).Err()
		writeJson(w, r, statusOf(err), nil, err)
		return
	}
	writeJson(w, r, http.StatusOK, resp, nil)
}

func (h *handler) doConvert(r *http.Request) (*ConvertResponse, errx.Error) {
	body, e := io.ReadAll(http.MaxBytesReader(nil, r.Body, h.opts.MaxBodyBytes))
	if e != nil {
		return nil, errx.Validation.WithMsg("read request body").WithCause(e).Err()
	}
	doc, err := source.ParseDocument(body)
	if err != nil {
		return nil, err
	}

	var classes []*descriptor.ClassDescriptor
	if name := r.URL.Query().Get("class"); name != "" {
		class, err := doc.Class(name)
		if err != nil {
			return nil, err
		}
		classes = append(classes, class)
	} else {
		classes = doc.Roots(h.opts.Policy)
	}
	if len(classes) == 0 {
		return nil, errx.NotFound.WithMsgf("no class with suffix %q in document", h.opts.Policy.Suffix).Err()
	}

	results, err := h.conv.ConvertAll(r.Context(), classes)
	if err != nil {
		return nil, err
	}
	resp := &ConvertResponse{Schemas: make([]SchemaView, len(results))}
	for i, res := range results {
		resp.Schemas[i] = SchemaView{
			Name:     res.Schema.Name,
			FullName: res.Schema.FullName(),
			Schema:   string(res.Text),
		}
	}
	return resp, nil
}

func statusOf(err errx.Error) int {
	switch err.Type() {
	case errx.TypeValidation:
		return http.StatusBadRequest
	case errx.TypeNotFound:
		return http.StatusNotFound
	case errx.TypeCycle:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
