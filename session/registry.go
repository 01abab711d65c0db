package session

import (
	log "github.com/sirupsen/logrus"
	"pipecut/model"
)

// Registry hands out exactly one handle per (kind, name). The factory runs on
// the first request only; later requests return the existing handle.
type Registry struct {
	handles map[model.Handle]struct{}
	created map[model.Kind]int
}

func NewRegistry() *Registry {
	return &Registry{
		handles: make(map[model.Handle]struct{}),
		created: make(map[model.Kind]int),
	}
}

func (r *Registry) GetOrCreate(kind model.Kind, name string, factory func() error) (model.Handle, error) {
	h := model.Handle{Kind: kind, Name: name}
	if _, ok := r.handles[h]; ok {
		return h, nil
	}
	if factory != nil {
		if err := factory(); err != nil {
			return model.Handle{}, err
		}
	}
	r.handles[h] = struct{}{}
	r.created[kind]++
	log.WithFields(log.Fields{
		"kind": kind,
		"name": name,
	}).Debug("created host entity")
	return h, nil
}

func (r *Registry) Has(h model.Handle) bool {
	_, ok := r.handles[h]
	return ok
}

// Created returns how many entities of kind were ever created.
func (r *Registry) Created(kind model.Kind) int {
	return r.created[kind]
}

func (r *Registry) Len() int {
	return len(r.handles)
}
