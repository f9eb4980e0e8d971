package server

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/karupanerura/exprtree/internal/grammar"
	"github.com/karupanerura/exprtree/internal/syntax"
)

var basePathRegexp = regexp.MustCompile(`^/v1/(parses|operators)(/[^/]+)?$`)

const reloadInterval = 5 * time.Second

// maxParseRecords bounds the in-memory store; the oldest record is evicted first.
const maxParseRecords = 1024

// Loader returns the operator table new parses should use.
type Loader func() (*syntax.OperatorTable, error)

type parseRecord struct {
	seq uint64

	Name            string         `json:"name"`
	CreateTime      time.Time      `json:"createTime"`
	Source          string         `json:"source"`
	CustomOperators bool           `json:"customOperators"`
	Result          *syntax.Result `json:"result"`
}

type parseRequest struct {
	Source    *string        `json:"source"`
	Operators map[string]any `json:"operators"`
}

type operatorsResponse struct {
	Unary  []syntax.OperatorEntry `json:"unary"`
	Binary []syntax.OperatorEntry `json:"binary"`
}

type httpHandler struct {
	operators atomic.Value
	idBase    uint64
	parses    sync.Map
}

func (h *httpHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m := basePathRegexp.FindStringSubmatch(r.URL.Path)
	if m == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	resource, id := m[1], strings.TrimPrefix(m[2], "/")
	switch {
	case resource == "operators" && id == "":
		if r.Method != http.MethodGet {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		h.getOperators(w, r)

	case resource == "parses" && id == "":
		switch r.Method {
		case http.MethodGet:
			h.listParses(w, r)
		case http.MethodPost:
			h.createParse(w, r)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}

	case resource == "parses":
		if r.Method != http.MethodGet {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		h.getParse(w, r, id)

	default:
		http.Error(w, "Not Found", http.StatusNotFound)
	}
}

func (h *httpHandler) createParse(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()

	var req parseRequest
	if err := decoder.Decode(&req); err != nil {
		log.Printf("failed to decode request body: %v", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if req.Source == nil {
		http.Error(w, "Bad Request: source is required", http.StatusBadRequest)
		return
	}

	table := h.operators.Load().(*syntax.OperatorTable)
	if req.Operators != nil {
		var err error
		table, err = grammar.Decode(req.Operators)
		if err != nil {
			log.Printf("failed to decode operators: %v", err)
			http.Error(w, "Bad Request: "+err.Error(), http.StatusBadRequest)
			return
		}
	}

	seq := atomic.AddUint64(&h.idBase, 1)
	id := parseID(seq)
	rec := &parseRecord{
		seq:             seq,
		Name:            "/v1/parses/" + id,
		CreateTime:      time.Now().UTC(),
		Source:          *req.Source,
		CustomOperators: req.Operators != nil,
		Result:          syntax.Parse(*req.Source, syntax.WithOperators(table)),
	}
	h.parses.Store(id, rec)
	if seq > maxParseRecords {
		h.parses.Delete(parseID(seq - maxParseRecords))
	}
	resJSON(w, http.StatusOK, rec)
}

func parseID(seq uint64) string {
	return fmt.Sprintf("%012x", seq)
}

func (h *httpHandler) listParses(w http.ResponseWriter, r *http.Request) {
	results := []*parseRecord{}
	h.parses.Range(func(key, value any) bool {
		results = append(results, value.(*parseRecord))
		return true
	})
	sort.Slice(results, func(i, j int) bool {
		return results[i].seq < results[j].seq
	})

	resJSON(w, http.StatusOK, map[string][]*parseRecord{"parses": results})
}

func (h *httpHandler) getParse(w http.ResponseWriter, r *http.Request, id string) {
	ret, ok := h.parses.Load(id)
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	resJSON(w, http.StatusOK, ret.(*parseRecord))
}

func (h *httpHandler) getOperators(w http.ResponseWriter, r *http.Request) {
	table := h.operators.Load().(*syntax.OperatorTable)
	resJSON(w, http.StatusOK, operatorsResponse{
		Unary:  syntax.Entries(table.Unary),
		Binary: syntax.Entries(table.Binary),
	})
}

// NewHTTPHandler serves the parse API. loader is called once up front and then
// periodically until ctx is done; a failed reload keeps the previous table.
func NewHTTPHandler(ctx context.Context, loader Loader) (http.Handler, error) {
	table, err := loader()
	if err != nil {
		return nil, err
	}

	h := &httpHandler{}
	h.operators.Store(table)
	go func() {
		t := time.NewTicker(reloadInterval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
			}

			table, err := loader()
			if err != nil {
				log.Printf("failed to reload operators: %v", err)
				continue
			}
			h.operators.Store(table)
		}
	}()
	return h, nil
}

func resJSON(w http.ResponseWriter, status int, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Printf("failed to encode response: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return fmt.Errorf("json.MarshalIndent: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(b)+1))
	w.WriteHeader(status)

	if _, err = w.Write(b); err != nil {
		return fmt.Errorf("w.Write: %w", err)
	}
	if _, err = io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("io.WriteString: %w", err)
	}
	return nil
}
