package rule

import (
	"context"
	"sort"
	"sync"
)

/*
NodeStore is an interface to manage a store
where rule nodes can be created, retrieved, updated
and deleted. Nodes are identified by their order.

All it methods take a context that may allow
cancelling the operation (thus forcing the return
of an error) if the implementation allows it.
*/
type NodeStore interface {
	// ActiveNodes returns the active nodes in the
	// store sorted by ascending order or an error
	// if the store cannot be queried.
	ActiveNodes(ctx context.Context) ([]Node, error)
	// Put takes a node and stores it, replacing
	// any node with the same order. It returns an
	// error if the node cannot be stored.
	Put(ctx context.Context, n Node) error
	// Delete takes an order and removes the node
	// with that order from the store. Deleting a
	// missing node is not an error.
	Delete(ctx context.Context, order int) error
	// Close closes the store, implementations should
	// free any resources in use. It returns an error
	// if the Close cannot be completed.
	Close(ctx context.Context) error
}

type memoryNodeStore struct {
	nodes map[int]Node
	lock  *sync.RWMutex
}

// NewMemoryNodeStore returns an implementation
// of NodeStore with the process memory space
// as underlying backend, holding the given nodes
func NewMemoryNodeStore(nodes ...Node) NodeStore {
	mns := &memoryNodeStore{
		nodes: make(map[int]Node),
		lock:  &sync.RWMutex{},
	}
	for _, n := range nodes {
		mns.nodes[n.Order] = n
	}
	return mns
}

func (mns *memoryNodeStore) ActiveNodes(ctx context.Context) ([]Node, error) {
	var result []Node
	err := mns.withRLock(ctx, func(ctx context.Context) error {
		for _, n := range mns.nodes {
			if n.Active {
				result = append(result, n)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	SortByOrder(result)
	return result, nil
}

func (mns *memoryNodeStore) Put(ctx context.Context, n Node) error {
	return mns.withLock(ctx, func(ctx context.Context) error {
		mns.nodes[n.Order] = n
		return nil
	})
}

func (mns *memoryNodeStore) Delete(ctx context.Context, order int) error {
	return mns.withLock(ctx, func(ctx context.Context) error {
		delete(mns.nodes, order)
		return nil
	})
}

func (mns *memoryNodeStore) Close(ctx context.Context) error {
	return nil
}

func (mns *memoryNodeStore) withLock(ctx context.Context, f func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	mns.lock.Lock()
	defer mns.lock.Unlock()
	return f(ctx)
}

func (mns *memoryNodeStore) withRLock(ctx context.Context, f func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	mns.lock.RLock()
	defer mns.lock.RUnlock()
	return f(ctx)
}

// SortByOrder sorts the given nodes by ascending order
func SortByOrder(nodes []Node) {
	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].Order < nodes[j].Order })
}
