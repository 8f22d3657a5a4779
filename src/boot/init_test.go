package boot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitBrokerDisabledWithoutBroker(t *testing.T) {
	t.Setenv("KAFKA_BROKER", "")
	assert.Nil(t, InitBroker())
}
