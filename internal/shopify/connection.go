package shopify

import (
	"bytes"
	"encoding/json"
)

// connection decodes a GraphQL list that may arrive as a plain array, as
// {edges:[{node}]} or as {nodes:[]}, keeping the remote order.
type connection[T any] []T

func (c *connection[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*c = nil
		return nil
	}
	if b[0] == '[' {
		var items []T
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		*c = items
		return nil
	}

	var conn struct {
		Edges []struct {
			Node T `json:"node"`
		} `json:"edges"`
		Nodes []T `json:"nodes"`
	}
	if err := json.Unmarshal(b, &conn); err != nil {
		return err
	}
	if len(conn.Edges) > 0 {
		items := make([]T, 0, len(conn.Edges))
		for _, e := range conn.Edges {
			items = append(items, e.Node)
		}
		*c = items
		return nil
	}
	*c = conn.Nodes
	return nil
}

// slice returns the items as a non-nil slice.
func (c connection[T]) slice() []T {
	if c == nil {
		return []T{}
	}
	return []T(c)
}
