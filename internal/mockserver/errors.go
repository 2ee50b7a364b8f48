package mockserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gork-labs/paykit/pkg/unions"
)

// errorResponse is the body of every error response. Detail is a string, or
// a list of validationDetail for validation errors.
type errorResponse struct {
	Type   string `json:"type"`
	Detail any    `json:"detail"`
}

type validationDetail struct {
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warnw("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, typ, detail string) {
	writeJSON(w, status, errorResponse{Type: typ, Detail: detail})
}

func writeNotFound(w http.ResponseWriter, resource string) {
	writeError(w, http.StatusNotFound, "ResourceNotFound", resource+" not found")
}

func writeValidation(w http.ResponseWriter, details ...validationDetail) {
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Type: "ValidationError", Detail: details})
}

// validationDetails converts a decode or validation error into response
// details located under section ("body" or "query").
func validationDetails(section string, err error) []validationDetail {
	var all unions.ValidationErrors
	if errors.As(err, &all) {
		details := make([]validationDetail, len(all))
		for i, ve := range all {
			details[i] = validationDetail{
				Loc:  append([]any{section}, locOf(ve.Path)...),
				Msg:  ve.Message(),
				Type: ve.Rule,
			}
		}
		return details
	}

	var ve *unions.ValidationError
	if errors.As(err, &ve) {
		return []validationDetail{{Loc: append([]any{section}, locOf(ve.Path)...), Msg: ve.Message(), Type: ve.Rule}}
	}

	var unknown *unions.UnknownShapeError
	if errors.As(err, &unknown) {
		return []validationDetail{{Loc: append([]any{section}, locOf(unknown.Path)...), Msg: unknown.Error(), Type: "union_no_match"}}
	}
	return []validationDetail{{Loc: []any{section}, Msg: err.Error(), Type: "json_invalid"}}
}

// locOf splits a validation path such as "filter.clauses[0].key" or
// "metadata[plan]" into its segments. Dots only separate names outside
// brackets; a bracketed map key is kept verbatim. Numeric indexes become ints.
func locOf(path string) []any {
	var (
		loc  []any
		name strings.Builder
	)
	flush := func() {
		if name.Len() > 0 {
			loc = append(loc, name.String())
			name.Reset()
		}
	}
	for i := 0; i < len(path); i++ {
		switch c := path[i]; c {
		case '.':
			flush()
		case '[':
			flush()
			end := strings.IndexByte(path[i+1:], ']')
			if end < 0 {
				name.WriteString(path[i:])
				i = len(path)
				continue
			}
			index := path[i+1 : i+1+end]
			if n, err := strconv.Atoi(index); err == nil {
				loc = append(loc, n)
			} else {
				loc = append(loc, index)
			}
			i += end + 1
		default:
			name.WriteByte(c)
		}
	}
	flush()
	return loc
}
