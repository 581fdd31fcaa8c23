package competitionevents

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// MetadataTopic is the metadata key holding the topic a message was built for.
const MetadataTopic = "topic"

// NewMessage encodes e's payload as JSON into a watermill message bound to ctx.
func NewMessage(ctx context.Context, e Event) (*message.Message, error) {
	data, err := json.Marshal(e.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", e.Topic, err)
	}
	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.Metadata.Set(MetadataTopic, e.Topic)
	msg.SetContext(ctx)
	return msg, nil
}
