/*
Package redisstore provides an implementation of rule.NodeStore
that keeps the nodes of a rule set on a redis hash.
*/
package redisstore

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pbanos/ripeness/rule"
	"gopkg.in/redis.v5"
)

/*
NodeEncodeDecoder is an interface for objects
that allow encoding nodes into slices of
bytes and decoding them back to nodes.
*/
type NodeEncodeDecoder interface {

	//Encode receives a *rule.Node
	//and returns a slice of bytes with the node
	//encoded or an error if the encoding could not
	//be performed for some reason.
	Encode(*rule.Node) ([]byte, error)

	//Decode receives a slice of bytes
	//and returns a *rule.Node decoded from the
	//slice of bytes or an error if the decoding
	//could not be performed for some reason.
	Decode([]byte) (*rule.Node, error)
}

type redisStore struct {
	rc      *redis.Client
	prefix  string
	nencdec NodeEncodeDecoder
}

/*
New builds a rule.NodeStore backed by a redis DB. Nodes are
kept on a hash at key "prefix:nodes" with their order as field
and their encoding with the given NodeEncodeDecoder as value.
*/
func New(rc *redis.Client, prefix string, nencdec NodeEncodeDecoder) rule.NodeStore {
	return &redisStore{rc, prefix, nencdec}
}

func (rs *redisStore) ActiveNodes(ctx context.Context) ([]rule.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := rs.rc.HGetAll(rs.key()).Result()
	if err != nil {
		return nil, fmt.Errorf("retrieving nodes from redis: %v", err)
	}
	var result []rule.Node
	for field, encoded := range data {
		n, err := rs.nencdec.Decode([]byte(encoded))
		if err != nil {
			return nil, fmt.Errorf("retrieving node %q: decoding %q: %v", field, encoded, err)
		}
		if n.Active {
			result = append(result, *n)
		}
	}
	rule.SortByOrder(result)
	return result, nil
}

func (rs *redisStore) Put(ctx context.Context, n rule.Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := rs.nencdec.Encode(&n)
	if err != nil {
		return fmt.Errorf("storing node #%d: encoding node: %v", n.Order, err)
	}
	_, err = rs.rc.HSet(rs.key(), strconv.Itoa(n.Order), string(data)).Result()
	if err != nil {
		return fmt.Errorf("storing node #%d in redis: %v", n.Order, err)
	}
	return nil
}

func (rs *redisStore) Delete(ctx context.Context, order int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := rs.rc.HDel(rs.key(), strconv.Itoa(order)).Result()
	if err != nil {
		return fmt.Errorf("deleting node #%d from redis: %v", order, err)
	}
	return nil
}

func (rs *redisStore) Close(ctx context.Context) error {
	return nil
}

func (rs *redisStore) key() string {
	return fmt.Sprintf("%s:nodes", rs.prefix)
}
