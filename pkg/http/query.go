package http

import (
	"net/url"
	"strings"
)

type queryPair struct {
	key   string
	value string
}

// orderedQuery is url.Values without the key sorting on Encode.
type orderedQuery []queryPair

func parseOrderedQuery(rawQuery string) (orderedQuery, error) {
	var q orderedQuery
	for _, segment := range strings.Split(rawQuery, "&") {
		if segment == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(segment, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, err
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, err
		}
		q = append(q, queryPair{key: key, value: value})
	}
	return q, nil
}

// set replaces the first pair named key and drops any later ones, or appends
// a new pair when key is absent.
func (q orderedQuery) set(key, value string) orderedQuery {
	found := false
	out := q[:0]
	for _, pair := range q {
		if pair.key != key {
			out = append(out, pair)
			continue
		}
		if found {
			continue
		}
		found = true
		out = append(out, queryPair{key: key, value: value})
	}
	if !found {
		out = append(out, queryPair{key: key, value: value})
	}
	return out
}

func (q orderedQuery) encode() string {
	var sb strings.Builder
	for i, pair := range q {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(pair.key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(pair.value))
	}
	return sb.String()
}
