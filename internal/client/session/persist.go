package session

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/wealthwise/internal/client/repositories/metadata"
	"github.com/vmihailenco/msgpack/v5"
)

const metadataKey = "session"

// Persister keeps the session across process restarts.
type Persister interface {
	Load(ctx context.Context) (Session, error)
	Save(ctx context.Context, s Session) error
	Clear(ctx context.Context) error
}

// MetadataPersister stores the session as a msgpack blob in the local
// metadata table.
type MetadataPersister struct {
	repo metadata.Repository
}

func NewMetadataPersister(repo metadata.Repository) *MetadataPersister {
	return &MetadataPersister{repo: repo}
}

// Load returns the empty session when nothing has been saved.
func (p *MetadataPersister) Load(ctx context.Context) (Session, error) {
	raw, err := p.repo.Get(ctx, metadataKey)
	if err != nil {
		return Session{}, err
	}
	if raw == nil {
		return Session{}, nil
	}
	var s Session
	if err := msgpack.Unmarshal(raw, &s); err != nil {
		return Session{}, fmt.Errorf("decode session: %w", err)
	}
	if !s.valid() {
		return Session{}, nil
	}
	return s, nil
}

func (p *MetadataPersister) Save(ctx context.Context, s Session) error {
	raw, err := msgpack.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return p.repo.Set(ctx, metadataKey, raw)
}

func (p *MetadataPersister) Clear(ctx context.Context) error {
	return p.repo.Delete(ctx, metadataKey)
}

// Restore loads a persisted session into the store. A persisted session
// whose token is no longer live is dropped.
func Restore(ctx context.Context, st *Store, p Persister) (Session, error) {
	s, err := p.Load(ctx)
	if err != nil {
		return Session{}, err
	}
	if !s.Authenticated() || !Live(s.Token, st.now()) {
		st.Clear()
		return Session{}, nil
	}
	if err := st.Replace(s); err != nil {
		return Session{}, err
	}
	return s, nil
}
