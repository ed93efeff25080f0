package journal

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJournal_Tail(t *testing.T) {
	j := New(10)
	for i := 1; i <= 5; i++ {
		j.Appendf("entry %d", i)
	}
	tail := j.Tail(2)
	assert.Len(t, tail, 2)
	assert.Equal(t, "entry 4", tail[0].Message)
	assert.Equal(t, "entry 5", tail[1].Message)

	// asking for more than retained returns everything
	assert.Len(t, j.Tail(100), 5)
	assert.Len(t, j.Tail(0), 5)
}

func TestJournal_Bounded(t *testing.T) {
	j := New(3)
	for i := 1; i <= 7; i++ {
		j.Appendf("entry %d", i)
	}
	assert.Equal(t, 3, j.Len())
	assert.Equal(t, []string{"entry 5", "entry 6", "entry 7"}, j.Messages())
}

func TestJournal_DefaultLimit(t *testing.T) {
	j := New(0)
	for i := 0; i < DefaultLimit+10; i++ {
		j.Appendf("entry %d", i)
	}
	assert.Equal(t, DefaultLimit, j.Len())
	assert.Equal(t, fmt.Sprintf("entry %d", DefaultLimit+9), j.Messages()[DefaultLimit-1])
}
