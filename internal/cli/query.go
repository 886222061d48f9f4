package cli

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/dshills/orderly/internal/engine/tree"
	"github.com/dshills/orderly/internal/seq"
)

// rankResult is the answer of a rank query.
type rankResult struct {
	Rank  int  `json:"rank" yaml:"rank"`
	Found bool `json:"found" yaml:"found"`
}

func (r rankResult) String() string {
	if r.Found {
		return strconv.Itoa(r.Rank)
	}
	return fmt.Sprintf("%d (absent)", r.Rank)
}

// query is one query operation.
type query struct {
	args int
	run  func(m *tree.Map[string, string], args []string, inc seq.Include) (any, error)
}

// errNoMatch is returned by queries that found no entry.
var errNoMatch = &ExitError{Code: ExitFailure, Message: "no matching entry"}

// list collects a view into a non-nil slice.
func list[T any](v seq.View[T]) []T {
	return slices.AppendSeq(make([]T, 0, v.Len()), v.All())
}

func found(p entry, ok bool) (any, error) {
	if !ok {
		return nil, errNoMatch
	}
	return p, nil
}

var queries = map[string]query{
	"len": {0, func(m *tree.Map[string, string], _ []string, _ seq.Include) (any, error) {
		return m.Len(), nil
	}},
	"height": {0, func(m *tree.Map[string, string], _ []string, _ seq.Include) (any, error) {
		return m.Height(), nil
	}},
	"all": {0, func(m *tree.Map[string, string], _ []string, _ seq.Include) (any, error) {
		return m.Pairs(), nil
	}},
	"reversed": {0, func(m *tree.Map[string, string], _ []string, _ seq.Include) (any, error) {
		return list[entry](m.Reversed()), nil
	}},
	"keys": {0, func(m *tree.Map[string, string], _ []string, _ seq.Include) (any, error) {
		return list[string](m.Keys()), nil
	}},
	"first": {0, func(m *tree.Map[string, string], _ []string, _ seq.Include) (any, error) {
		return found(m.First())
	}},
	"last": {0, func(m *tree.Map[string, string], _ []string, _ seq.Include) (any, error) {
		return found(m.Last())
	}},
	"only": {0, func(m *tree.Map[string, string], _ []string, _ seq.Include) (any, error) {
		p, err := m.Only()
		if err != nil {
			return nil, WrapExitError(ExitFailure, "only", err)
		}
		return p, nil
	}},
	"get": {1, func(m *tree.Map[string, string], args []string, _ seq.Include) (any, error) {
		v, ok := m.Get(args[0])
		if !ok {
			return nil, errNoMatch
		}
		return v, nil
	}},
	"at": {1, func(m *tree.Map[string, string], args []string, _ seq.Include) (any, error) {
		i, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "invalid index", err)
		}
		p, err := m.At(i)
		if err != nil {
			return nil, WrapExitError(ExitFailure, "at", err)
		}
		return p, nil
	}},
	"rank": {1, func(m *tree.Map[string, string], args []string, _ seq.Include) (any, error) {
		r, ok := m.Rank(args[0])
		return rankResult{Rank: r, Found: ok}, nil
	}},
	"from": {1, func(m *tree.Map[string, string], args []string, _ seq.Include) (any, error) {
		return found(m.From(args[0]))
	}},
	"to": {1, func(m *tree.Map[string, string], args []string, _ seq.Include) (any, error) {
		return found(m.To(args[0]))
	}},
	"before": {1, func(m *tree.Map[string, string], args []string, _ seq.Include) (any, error) {
		return found(m.Before(args[0]))
	}},
	"after": {1, func(m *tree.Map[string, string], args []string, _ seq.Include) (any, error) {
		return found(m.After(args[0]))
	}},
	"range": {2, func(m *tree.Map[string, string], args []string, inc seq.Include) (any, error) {
		return list[entry](m.Range(args[0], args[1], inc)), nil
	}},
	"count": {2, func(m *tree.Map[string, string], args []string, inc seq.Include) (any, error) {
		return m.Range(args[0], args[1], inc).Len(), nil
	}},
}

// queryNames lists the operations in help order.
var queryNames = []string{
	"len", "height", "all", "reversed", "keys", "first", "last", "only",
	"get", "at", "rank", "from", "to", "before", "after", "range", "count",
}

// NewQueryCommand creates the query subcommand.
func NewQueryCommand(opts *RootOptions) *cobra.Command {
	var include, path string

	cmd := &cobra.Command{
		Use:   "query FILE OP [ARG...]",
		Short: "Run an ordered query against a dataset",
		Long: `Load FILE and run one query on it. Operations:

  len | height | all | reversed | keys | first | last | only
  get KEY | at INDEX | rank KEY
  from KEY | to KEY | before KEY | after KEY
  range START END | count START END

from/to return the first entry >= KEY and the last entry <= KEY; before/after
are their strict forms. range and count honor --include. Queries that match no
entry exit with status 1.

For queries returning one entry or value, --path treats the value as a JSON
document and prints only the part selected by a GJSON path such as
"servers.0.host".`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[1]
			q, ok := queries[name]
			if !ok {
				return &ExitError{Code: ExitCommandError, Message: fmt.Sprintf("unknown query %q: must be one of %s", name, strings.Join(queryNames, ", "))}
			}
			if len(args)-2 != q.args {
				return &ExitError{Code: ExitCommandError, Message: fmt.Sprintf("query %s takes %d argument(s), got %d", name, q.args, len(args)-2)}
			}
			inc, err := parseInclude(include)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid --include", err)
			}

			m, _, err := loadMap(cmd, opts, args[0])
			if err != nil {
				return err
			}
			res, err := q.run(m, args[2:], inc)
			if err != nil {
				return err
			}
			if path != "" {
				if res, err = project(res, path); err != nil {
					return err
				}
			}
			return writeResult(cmd.OutOrStdout(), opts.Format, res)
		},
	}

	cmd.Flags().StringVar(&include, "include", "[]", "bound inclusivity of range queries: [] [) (] or ()")
	cmd.Flags().StringVar(&path, "path", "", "GJSON path selecting part of a JSON value")
	return cmd
}

// parseInclude parses interval notation such as "[)".
func parseInclude(s string) (seq.Include, error) {
	if len(s) != 2 {
		return seq.Include{}, fmt.Errorf("%q is not one of [] [) (] ()", s)
	}
	var inc seq.Include
	switch s[0] {
	case '[':
		inc.Start = true
	case '(':
	default:
		return seq.Include{}, fmt.Errorf("bad start bound %q", s[0])
	}
	switch s[1] {
	case ']':
		inc.End = true
	case ')':
	default:
		return seq.Include{}, fmt.Errorf("bad end bound %q", s[1])
	}
	return inc, nil
}

// project replaces a single value by the part of it selected by a GJSON path.
func project(res any, path string) (any, error) {
	sel := func(v string) (string, error) {
		if !gjson.Valid(v) {
			return "", &ExitError{Code: ExitFailure, Message: fmt.Sprintf("value %q is not JSON", v)}
		}
		r := gjson.Get(v, path)
		if !r.Exists() {
			return "", errNoMatch
		}
		return r.String(), nil
	}

	switch v := res.(type) {
	case string:
		return sel(v)
	case entry:
		val, err := sel(v.Value)
		if err != nil {
			return nil, err
		}
		v.Value = val
		return v, nil
	default:
		return nil, &ExitError{Code: ExitCommandError, Message: "--path applies to queries returning one entry or value"}
	}
}
