//go:build integration

package publisher_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	id "tutela/pkg/domain"
	audit "tutela/pkg/platform/audit"
	"tutela/pkg/platform/audit/publisher"
	"tutela/pkg/testutil/containers"
)

func TestKafkaSinkPublishesEvents(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	redpanda := containers.NewRedpandaContainer(t)
	const topic = "tutela.training.audit"

	producerClient, err := kgo.NewClient(kgo.SeedBrokers(redpanda.Broker))
	require.NoError(t, err)
	defer producerClient.Close()

	sink := publisher.NewKafkaSink(producerClient, topic)

	userID := id.NewUserID()
	event := audit.Event{
		Timestamp: time.Now().UTC(),
		UserID:    userID,
		OrgID:     id.NewOrgID(),
		Action:    audit.ActionModuleCompleted,
		ModuleID:  2,
		RequestID: "integration-test",
	}
	require.NoError(t, sink.Publish(ctx, event))
	require.NoError(t, sink.Close(ctx))

	consumerClient, err := kgo.NewClient(
		kgo.SeedBrokers(redpanda.Broker),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumerClient.Close()

	fetches := consumerClient.PollFetches(ctx)
	require.NoError(t, fetches.Err())

	records := fetches.Records()
	require.Len(t, records, 1)
	require.Equal(t, userID.String(), string(records[0].Key))

	var got audit.Event
	require.NoError(t, json.Unmarshal(records[0].Value, &got))
	require.Equal(t, audit.ActionModuleCompleted, got.Action)
	require.Equal(t, id.ModuleID(2), got.ModuleID)
}
