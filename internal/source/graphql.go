package source

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/machinebox/graphql"

	"typeahead/internal/domain"
)

// SearchVariable is the GraphQL variable that receives the search text.
const SearchVariable = "search"

// GraphQL loads options by running a query against a GraphQL endpoint. The
// query receives $search and the option list is read from the dotted Path
// inside the response data, e.g. "repository.labels.nodes".
type GraphQL struct {
	Endpoint string
	Query    string
	Path     string
	Header   map[string]string
	Client   *http.Client
}

// Loader returns a loader that runs the query once per search.
func (g GraphQL) Loader() (domain.Loader, error) {
	if strings.TrimSpace(g.Endpoint) == "" {
		return nil, unavailable("graphql source requires an endpoint", nil)
	}
	if strings.TrimSpace(g.Query) == "" {
		return nil, unavailable("graphql source requires a query", nil)
	}

	var opts []graphql.ClientOption
	if g.Client != nil {
		opts = append(opts, graphql.WithHTTPClient(g.Client))
	}
	client := graphql.NewClient(g.Endpoint, opts...)

	return func(ctx context.Context, search string) ([]domain.Option, error) {
		req := graphql.NewRequest(g.Query)
		req.Var(SearchVariable, search)
		for k, v := range g.Header {
			req.Header.Set(k, v)
		}

		var data map[string]any
		if err := client.Run(ctx, req, &data); err != nil {
			return nil, fmt.Errorf("graphql query: %w", err)
		}
		items, err := listAtPath(data, g.Path)
		if err != nil {
			return nil, err
		}
		return optionsFrom(items)
	}, nil
}

// listAtPath walks dotted keys through nested objects to a list.
func listAtPath(data map[string]any, path string) ([]any, error) {
	var cur any = data
	if path != "" {
		for _, key := range strings.Split(path, ".") {
			obj, ok := cur.(map[string]any)
			if !ok {
				return nil, parseError(fmt.Sprintf("path %q: %q is not inside an object", path, key), nil)
			}
			cur, ok = obj[key]
			if !ok {
				return nil, parseError(fmt.Sprintf("path %q: missing %q", path, key), nil)
			}
		}
	}
	switch v := cur.(type) {
	case nil:
		return nil, nil
	case []any:
		return v, nil
	default:
		return nil, parseError(fmt.Sprintf("path %q holds %T, not a list", path, cur), nil)
	}
}
