// Package graphstore backs the pipeline drawer with a string-keyed graph
// store that, unlike the stock store, allows vertex attributes to be updated
// in place after the vertex was added.
package graphstore

import (
	"sync"

	"github.com/dominikbraun/graph"
)

// Store implements graph.Store[string, string] for the drawer's step graph.
type Store struct {
	lock     sync.RWMutex
	vertices map[string]string
	props    map[string]*graph.VertexProperties
	outEdges map[string]map[string]graph.Edge[string]
	inEdges  map[string]map[string]graph.Edge[string]
}

// New creates an empty store.
func New() *Store {
	return &Store{
		vertices: make(map[string]string),
		props:    make(map[string]*graph.VertexProperties),
		outEdges: make(map[string]map[string]graph.Edge[string]),
		inEdges:  make(map[string]map[string]graph.Edge[string]),
	}
}

func (s *Store) AddVertex(hash, value string, p graph.VertexProperties) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.vertices[hash]; ok {
		return graph.ErrVertexAlreadyExists
	}

	s.vertices[hash] = value
	s.props[hash] = &p

	return nil
}

func (s *Store) Vertex(hash string) (string, graph.VertexProperties, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	value, ok := s.vertices[hash]
	if !ok {
		return value, graph.VertexProperties{}, graph.ErrVertexNotFound
	}

	return value, *s.props[hash], nil
}

// UpdateVertex mutates the stored properties of a vertex. This is the reason
// this store exists: the drawer attaches labels and colours to steps after
// the chain has been built.
func (s *Store) UpdateVertex(hash string, options ...func(*graph.VertexProperties)) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	props, ok := s.props[hash]
	if !ok {
		return graph.ErrVertexNotFound
	}

	for _, opt := range options {
		opt(props)
	}

	return nil
}

func (s *Store) RemoveVertex(hash string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.vertices[hash]; !ok {
		return graph.ErrVertexNotFound
	}
	if len(s.inEdges[hash]) > 0 || len(s.outEdges[hash]) > 0 {
		return graph.ErrVertexHasEdges
	}

	delete(s.inEdges, hash)
	delete(s.outEdges, hash)
	delete(s.vertices, hash)
	delete(s.props, hash)

	return nil
}

func (s *Store) ListVertices() ([]string, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	hashes := make([]string, 0, len(s.vertices))
	for hash := range s.vertices {
		hashes = append(hashes, hash)
	}

	return hashes, nil
}

func (s *Store) VertexCount() (int, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return len(s.vertices), nil
}

func (s *Store) AddEdge(source, target string, edge graph.Edge[string]) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.outEdges[source]; !ok {
		s.outEdges[source] = make(map[string]graph.Edge[string])
	}
	s.outEdges[source][target] = edge

	if _, ok := s.inEdges[target]; !ok {
		s.inEdges[target] = make(map[string]graph.Edge[string])
	}
	s.inEdges[target][source] = edge

	return nil
}

func (s *Store) UpdateEdge(source, target string, edge graph.Edge[string]) error {
	if _, err := s.Edge(source, target); err != nil {
		return err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	s.outEdges[source][target] = edge
	s.inEdges[target][source] = edge

	return nil
}

func (s *Store) RemoveEdge(source, target string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	delete(s.inEdges[target], source)
	delete(s.outEdges[source], target)

	return nil
}

func (s *Store) Edge(source, target string) (graph.Edge[string], error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	targets, ok := s.outEdges[source]
	if !ok {
		return graph.Edge[string]{}, graph.ErrEdgeNotFound
	}

	edge, ok := targets[target]
	if !ok {
		return graph.Edge[string]{}, graph.ErrEdgeNotFound
	}

	return edge, nil
}

func (s *Store) ListEdges() ([]graph.Edge[string], error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	res := make([]graph.Edge[string], 0)
	for _, targets := range s.outEdges {
		for _, edge := range targets {
			res = append(res, edge)
		}
	}

	return res, nil
}

var _ graph.Store[string, string] = (*Store)(nil)
