package json

import (
	"context"
	"encoding/json"
	"io"

	"github.com/pbanos/ripeness/rule"
)

/*
WriteJSONRules takes a context.Context, a rule.NodeStore, a NodeEncodeDecoder
and an io.Writer and serializes the active nodes of the store as a JSON
object onto the io.Writer.
A rule set is serialized as a JSON object with a single field:
* "nodes": an array containing the active nodes of the store sorted by order
  serialized by the given NodeEncodeDecoder.
An error is returned if the store cannot be queried, or the nodes serialized
or written onto the io.Writer.
*/
func WriteJSONRules(ctx context.Context, ns rule.NodeStore, ned NodeEncodeDecoder, w io.Writer) error {
	nodes, err := ns.ActiveNodes(ctx)
	if err != nil {
		return err
	}
	_, err = w.Write([]byte(`{"nodes":[`))
	if err != nil {
		return err
	}
	for i := range nodes {
		if i != 0 {
			_, err = w.Write([]byte(","))
			if err != nil {
				return err
			}
		}
		jn, err := ned.Encode(&nodes[i])
		if err != nil {
			return err
		}
		_, err = w.Write(jn)
		if err != nil {
			return err
		}
	}
	_, err = w.Write([]byte(`]}`))
	return err
}

/*
ReadJSONRules takes a context.Context, a rule.NodeStore, a NodeEncodeDecoder
and an io.Reader and stores on the node store the nodes decoded from the
contents of the io.Reader, which are expected to be a JSON object as written
by WriteJSONRules. It returns the number of nodes stored and an error if the
JSON cannot be read from the io.Reader, a node cannot be decoded or stored.
*/
func ReadJSONRules(ctx context.Context, ns rule.NodeStore, ned NodeEncodeDecoder, r io.Reader) (int, error) {
	dec := json.NewDecoder(r)
	jr := &struct {
		Nodes []*json.RawMessage `json:"nodes"`
	}{}
	err := dec.Decode(jr)
	if err != nil {
		return 0, err
	}
	var count int
	for _, jn := range jr.Nodes {
		n, err := ned.Decode(*jn)
		if err != nil {
			return count, err
		}
		err = ns.Put(ctx, *n)
		if err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}
