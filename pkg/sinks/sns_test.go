package sinks

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

type fakeSNSClient struct {
	input *sns.PublishInput
	err   error
}

func (f *fakeSNSClient) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("msg-123")}, nil
}

func TestSNSSinkWriteSuccess(t *testing.T) {
	client := &fakeSNSClient{}
	sink := &snsSink{
		id:       "topic",
		typ:      TypeSNS,
		topicARN: "arn:aws:sns:::feed-updates",
		client:   client,
		log:      noopLogger{},
	}

	art := NewArtifact("commons-reports", "Commons Reports", "docs/feed.xml", 3, []byte("<rss/>"))
	if err := sink.Write(context.Background(), art); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if client.input == nil || *client.input.TopicArn != "arn:aws:sns:::feed-updates" {
		t.Fatalf("unexpected topic arn in input: %+v", client.input)
	}
	if !strings.Contains(*client.input.Message, `"item_count":3`) {
		t.Errorf("message missing item count: %s", *client.input.Message)
	}
}

func TestSNSSinkWriteFailure(t *testing.T) {
	sink := &snsSink{
		id:       "topic",
		typ:      TypeSNS,
		topicARN: "arn:aws:sns:::feed-updates",
		client:   &fakeSNSClient{err: errors.New("denied")},
		log:      noopLogger{},
	}

	if err := sink.Write(context.Background(), Artifact{SourceID: "s"}); err == nil {
		t.Fatal("expected publish failure to propagate")
	}
}
