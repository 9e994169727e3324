package server

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/beadgraph/pkg/buildinfo"
	"github.com/matzehuels/beadgraph/pkg/engine"
	"github.com/matzehuels/beadgraph/pkg/errors"
	"github.com/matzehuels/beadgraph/pkg/pipeline"
)

// HeaderCache reports "hit" or "miss" for cached endpoints.
const HeaderCache = "X-Cache"

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

func (s *Server) handleOperations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, engine.Operations())
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{"targets": engine.GetTargets()}
	if s.counters != nil {
		body["stats"] = s.counters.Snapshot()
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	op, err := engine.Parse(chi.URLParam(r, "operation"))
	if err != nil {
		writeError(w, err)
		return
	}
	raw, err := readBody(r)
	if err != nil {
		writeError(w, err)
		return
	}

	out, hit, err := s.runner.Analyze(r.Context(), op, raw)
	if err != nil {
		writeError(w, err)
		return
	}
	setCacheHeader(w, hit)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

type batchItem struct {
	Result json.RawMessage `json:"result,omitempty"`
	Error  *errorBody      `json:"error,omitempty"`
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	op, err := engine.Parse(chi.URLParam(r, "operation"))
	if err != nil {
		writeError(w, err)
		return
	}
	raw, err := readBody(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var inputs []json.RawMessage
	if err := json.Unmarshal(raw, &inputs); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "batch body must be an array of bead arrays"))
		return
	}

	payloads := make([][]byte, len(inputs))
	for i, in := range inputs {
		payloads[i] = in
	}
	results, err := s.runner.Batch(r.Context(), op, payloads)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]batchItem, len(results))
	for i, res := range results {
		if res.Err != nil {
			out[i].Error = bodyFor(res.Err)
			continue
		}
		out[i].Result = res.Output
	}
	writeJSON(w, http.StatusOK, out)
}

var renderContentTypes = map[string]string{
	pipeline.FormatDOT: "text/vnd.graphviz",
	pipeline.FormatSVG: "image/svg+xml",
	pipeline.FormatPNG: "image/png",
	pipeline.FormatPDF: "application/pdf",
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := pipeline.RenderOptions{Format: q.Get("format")}
	if opts.Format == "" {
		opts.Format = pipeline.FormatSVG
	}
	opts.Nodelink.Critical = queryBool(q.Get("critical"))
	opts.Nodelink.HideClosed = queryBool(q.Get("hide_closed"))
	opts.Nodelink.Detailed = queryBool(q.Get("detailed"))
	opts.Nodelink.RankDir = q.Get("rankdir")
	opts.Nodelink.Reduce = queryBool(q.Get("reduce"))

	raw, err := readBody(r)
	if err != nil {
		writeError(w, err)
		return
	}
	out, hit, err := s.runner.Render(r.Context(), raw, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	setCacheHeader(w, hit)
	w.Header().Set("Content-Type", renderContentTypes[opts.Format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

func readBody(r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var tooBig *http.MaxBytesError
		if stderrors.As(err, &tooBig) {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "request body exceeds %d bytes", tooBig.Limit)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	return data, nil
}

func queryBool(v string) bool {
	b, _ := strconv.ParseBool(v)
	return b
}

func setCacheHeader(w http.ResponseWriter, hit bool) {
	if hit {
		w.Header().Set(HeaderCache, "hit")
	} else {
		w.Header().Set(HeaderCache, "miss")
	}
}
