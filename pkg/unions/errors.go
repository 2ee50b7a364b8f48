package unions

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoAlternative is returned when a union with no active alternative is
	// encoded or validated.
	ErrNoAlternative = errors.New("no alternative set")

	// ErrShapeMismatch marks a trial-decode that was skipped because the raw
	// JSON kind does not fit the alternative's payload type.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrInvalidJSON is returned by Decode for input that is not a single JSON value.
	ErrInvalidJSON = errors.New("invalid JSON")
)

const rawSnapshotLimit = 96

// UnknownShapeError is returned when raw input matches none of the declared
// alternatives of a union.
type UnknownShapeError struct {
	// Location is the schema location of the union, e.g. "Filter.clauses".
	Location string
	// Path is the JSON path of the failing field relative to the decoded
	// value, e.g. "events[1]" or "[0].value" inside an enclosing alternative.
	// It is empty when the union is the decoded value itself or when the
	// error comes from Decode without an enclosing Unmarshal.
	Path string
	// Raw is a copy of the rejected input.
	Raw []byte
	// Attempts holds one *MalformedPayloadError per alternative, in declared order.
	Attempts []error
}

func (e *UnknownShapeError) Error() string {
	raw := string(e.Raw)
	if len(raw) > rawSnapshotLimit {
		raw = raw[:rawSnapshotLimit] + "..."
	}
	if e.Path != "" {
		return fmt.Sprintf("%s (%s): %s does not match any known alternative", e.Path, e.Location, raw)
	}
	return fmt.Sprintf("%s: %s does not match any known alternative", e.Location, raw)
}

// Detail renders the error together with the reason every alternative was rejected.
// Alternatives rejected because a union nested in their payload did not
// match are expanded in turn, one indent level deeper.
func (e *UnknownShapeError) Detail() string {
	var b strings.Builder
	e.writeDetail(&b, "  ")
	return b.String()
}

func (e *UnknownShapeError) writeDetail(b *strings.Builder, indent string) {
	b.WriteString(e.Error())
	for _, attempt := range e.Attempts {
		b.WriteString("\n" + indent + "- ")
		var (
			malformed *MalformedPayloadError
			nested    *UnknownShapeError
		)
		if errors.As(attempt, &malformed) && errors.As(malformed.Err, &nested) {
			fmt.Fprintf(b, "alternative %q: ", malformed.Alternative)
			nested.writeDetail(b, indent+"  ")
			continue
		}
		b.WriteString(attempt.Error())
	}
}

// MalformedPayloadError records why a single alternative rejected raw input.
// It never escapes Decode on its own; it only appears in UnknownShapeError.Attempts.
type MalformedPayloadError struct {
	Alternative string
	Err         error
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("alternative %q: %v", e.Alternative, e.Err)
}

func (e *MalformedPayloadError) Unwrap() error {
	return e.Err
}

// ValidationError describes one failing field of a payload.
type ValidationError struct {
	// Path uses JSON names: "customer.email", "clauses[0].key", "metadata[plan]".
	Path string
	// Rule is the failing validator tag, or "variant" for union-level failures.
	Rule string
	Err  error
}

func (e *ValidationError) Error() string {
	path := e.Path
	if path == "" {
		path = "value"
	}
	return path + ": " + e.Message()
}

// Message describes the failure without its path.
func (e *ValidationError) Message() string {
	if e.Err != nil && e.Rule == ruleVariant {
		return e.Err.Error()
	}
	return fmt.Sprintf("failed on the '%s' rule", e.Rule)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationErrors aggregates every failing field found during one validation pass.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes the individual entries to errors.Is and errors.As.
func (e ValidationErrors) Unwrap() []error {
	errs := make([]error, len(e))
	for i, fe := range e {
		errs[i] = fe
	}
	return errs
}

// Paths returns the failing paths in report order.
func (e ValidationErrors) Paths() []string {
	paths := make([]string, len(e))
	for i, fe := range e {
		paths[i] = fe.Path
	}
	return paths
}

const ruleVariant = "variant"

// add appends err under prefix. Nested validation errors are re-rooted so
// their paths stay relative to the outermost payload.
func (e *ValidationErrors) add(prefix string, err error) {
	if err == nil {
		return
	}
	var nested ValidationErrors
	if errors.As(err, &nested) {
		for _, fe := range nested {
			*e = append(*e, &ValidationError{Path: joinPath(prefix, fe.Path), Rule: fe.Rule, Err: fe.Err})
		}
		return
	}
	var single *ValidationError
	if errors.As(err, &single) {
		*e = append(*e, &ValidationError{Path: joinPath(prefix, single.Path), Rule: single.Rule, Err: single.Err})
		return
	}
	*e = append(*e, &ValidationError{Path: prefix, Rule: ruleVariant, Err: err})
}

func (e ValidationErrors) orNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// joinPath joins a parent path and a child path; index segments ("[0]")
// attach without a dot.
func joinPath(parent, child string) string {
	switch {
	case parent == "":
		return child
	case child == "":
		return parent
	case strings.HasPrefix(child, "["):
		return parent + child
	default:
		return parent + "." + child
	}
}
