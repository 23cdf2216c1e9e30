package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConversationID_SymmetricAcrossParticipants(t *testing.T) {
	assert.Equal(t, ConversationID("driver-7", "dispatcher-2"), ConversationID("dispatcher-2", "driver-7"))
	assert.Equal(t, "dispatcher-2_driver-7", ConversationID("driver-7", "dispatcher-2"))
}
