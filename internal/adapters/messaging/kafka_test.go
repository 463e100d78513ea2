package messaging

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKafkaMessageConversion(t *testing.T) {
	t.Parallel()

	before := time.Now()
	km := messageToKafkaMessage("bulk-edit-batches", "demo.myshopify.com", []byte(`{"ok":true}`),
		map[string]string{shopHeader: "demo.myshopify.com"})

	require.NotNil(t, km.TopicPartition.Topic)
	assert.Equal(t, []byte("demo.myshopify.com"), km.Key)

	msg := kafkaMessageToMessage(km)
	assert.Equal(t, "bulk-edit-batches", msg.Topic)
	assert.Equal(t, "demo.myshopify.com", msg.Key)
	assert.Equal(t, "demo.myshopify.com", msg.Shop)
	assert.NotEmpty(t, msg.ID)
	assert.JSONEq(t, `{"ok":true}`, string(msg.Value))
	assert.False(t, msg.PublishedAt.Before(before.Truncate(time.Second)))
}

func TestKafkaMessageConversion_NoKey(t *testing.T) {
	t.Parallel()

	km := messageToKafkaMessage("topic", "", []byte("x"), nil)
	assert.Nil(t, km.Key)

	msg := kafkaMessageToMessage(km)
	assert.Empty(t, msg.Key)
	assert.Empty(t, msg.Shop)
}
