package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSuggestedTasks(t *testing.T) {
	content := "```json\n[{\"name\":\" Hang lights \",\"description\":\"Rig 3\",\"deadline\":\"2026-10-20\"},{\"name\":\"\"},{\"name\":\"Tune piano\",\"deadline\":\"next week\"}]\n```"

	tasks, err := parseSuggestedTasks(content)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Hang lights", tasks[0].Name)
	assert.Equal(t, "2026-10-20", tasks[0].Deadline)
	assert.Equal(t, "Tune piano", tasks[1].Name)
	assert.Empty(t, tasks[1].Deadline)
}

func TestParseSuggestedTasks_Invalid(t *testing.T) {
	_, err := parseSuggestedTasks("I could not find any tasks.")
	assert.Error(t, err)
}
