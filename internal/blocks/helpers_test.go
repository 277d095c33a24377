// ABOUTME: Shared fixtures for blocks package tests.
// ABOUTME: Provides an in-memory Store, a recording registry and definition builders.

package blocks

import (
	"context"
	"errors"
)

type memStore struct {
	defs []Definition
	err  error
	meta map[string]map[MetaKey]string
}

func (s *memStore) ListPublished(ctx context.Context, postType string) ([]Definition, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []Definition
	for _, d := range s.defs {
		if d.Status == StatusPublish {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *memStore) SetMeta(ctx context.Context, id string, key MetaKey, value string) error {
	if s.err != nil {
		return s.err
	}
	if s.meta == nil {
		s.meta = make(map[string]map[MetaKey]string)
	}
	if s.meta[id] == nil {
		s.meta[id] = make(map[MetaKey]string)
	}
	s.meta[id][key] = value
	return nil
}

var errStoreDown = errors.New("store down")

type recordingRegistry struct {
	names []string
	seen  map[string]bool
}

func (r *recordingRegistry) RegisterBlockType(d Descriptor) bool {
	if r.seen == nil {
		r.seen = make(map[string]bool)
	}
	r.names = append(r.names, d.Name)
	replaced := r.seen[d.Name]
	r.seen[d.Name] = true
	return replaced
}

func published(id, title string, meta Meta) Definition {
	return Definition{ID: id, Title: title, Status: StatusPublish, Meta: meta}
}

func draft(id, title string, meta Meta) Definition {
	return Definition{ID: id, Title: title, Status: StatusDraft, Meta: meta}
}
