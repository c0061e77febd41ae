package redisx

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ResourcesPubSub fans out "inventory changed for this resource" signals after
// commits, so availability caches elsewhere can refresh early.
type ResourcesPubSub struct {
	rdb     *redis.Client
	channel string
}

func NewResourcesPubSub(rdb *redis.Client) *ResourcesPubSub {
	return &ResourcesPubSub{
		rdb:     rdb,
		channel: ChannelResourcesChanged(),
	}
}

type resourceChangedMsg struct {
	Type       string `json:"type"`
	ResourceID string `json:"resource_id"`
	TsUnix     int64  `json:"ts_unix"`
}

func (p *ResourcesPubSub) PublishResourceChanged(ctx context.Context, resourceID uuid.UUID) error {
	msg := resourceChangedMsg{
		Type:       "resource_changed",
		ResourceID: resourceID.String(),
		TsUnix:     time.Now().Unix(),
	}

	b, _ := json.Marshal(msg)

	return p.rdb.Publish(ctx, p.channel, b).Err()
}

func (p *ResourcesPubSub) Subscribe(
	ctx context.Context,
	handler func(ctx context.Context, resourceID uuid.UUID),
) error {
	sub := p.rdb.Subscribe(ctx, p.channel)
	defer sub.Close()

	ch := sub.Channel(redis.WithChannelSize(256))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			var ev resourceChangedMsg
			if err := json.Unmarshal([]byte(m.Payload), &ev); err != nil {
				continue
			}
			if id, err := uuid.Parse(ev.ResourceID); err == nil {
				handler(ctx, id)
			}
		}
	}
}
