package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitegen/internal/config"
)

func TestNewPublisherUnconfigured(t *testing.T) {
	p, err := NewPublisher(nil)
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = NewPublisher(&config.NotificationsConfig{Subject: "sitegen.builds"})
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestNilPublisherIsSafe(t *testing.T) {
	var p *Publisher
	p.Publish(BuildEvent{BuildID: "b1", Status: "started"})
	p.Close()
}
