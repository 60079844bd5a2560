package status

import "net/url"

// Query is the set of selectors of one request. A parameter counts as
// present even when its value is empty; when a parameter repeats the last
// value wins.
type Query struct {
	values map[string]string
}

func NewQuery(values url.Values) Query {
	q := Query{values: make(map[string]string, len(values))}
	for k, vs := range values {
		if len(vs) == 0 {
			continue
		}
		q.values[k] = vs[len(vs)-1]
	}
	return q
}

// ParseQuery parses a raw query string such as "users=online&ping=time".
func ParseQuery(raw string) (Query, error) {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return Query{}, err
	}
	return NewQuery(values), nil
}

// Lookup returns the value of name and whether it was supplied.
func (q Query) Lookup(name string) (string, bool) {
	v, ok := q.values[name]
	return v, ok
}

// Has reports whether the selector for t was supplied.
func (q Query) Has(t Topic) bool {
	_, ok := q.values[string(t)]
	return ok
}

// Value returns the value of name, or def when absent.
func (q Query) Value(name, def string) string {
	if v, ok := q.values[name]; ok {
		return v
	}
	return def
}

// Selected returns the requested topics in document order.
func (q Query) Selected() []Topic {
	var out []Topic
	for _, t := range topicOrder {
		if q.Has(t) {
			out = append(out, t)
		}
	}
	return out
}
