package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/southpawriter02/docstratum"
)

func (a *Adapter) FindSession(ctx context.Context, id docstratum.SessionID) (*docstratum.Session, error) {
	payload, err := a.client.Get(ctx, a.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, docstratum.ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	var aSession docstratum.Session
	if err := json.Unmarshal(payload, &aSession); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	return &aSession, nil
}

func (a *Adapter) SaveSession(ctx context.Context, session *docstratum.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := a.client.Set(ctx, a.key(session.ID), payload, a.ttl).Err(); err != nil {
		return fmt.Errorf("set session: %w", err)
	}

	return nil
}

func (a *Adapter) DeleteSession(ctx context.Context, id docstratum.SessionID) error {
	if err := a.client.Del(ctx, a.key(id)).Err(); err != nil {
		return fmt.Errorf("del session: %w", err)
	}
	return nil
}

func (a *Adapter) key(id docstratum.SessionID) string {
	return a.keyPrefix + id.String()
}
