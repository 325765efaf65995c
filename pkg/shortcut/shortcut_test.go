package shortcut

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnavailable(t *testing.T) {
	var c Creator = Unavailable{}
	assert.False(t, c.Available())
	assert.NoError(t, c.Create(Spec{LinkPath: "x.lnk"}))
}
