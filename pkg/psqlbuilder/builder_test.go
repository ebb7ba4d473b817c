package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDollarPlaceholders(t *testing.T) {
	query, args, err := Select("id", "priority").
		From("schedules").
		Where(squirrel.Eq{"company_id": "c1", "user_id": "u1"}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id, priority FROM schedules WHERE company_id = $1 AND user_id = $2", query)
	assert.Equal(t, []interface{}{"c1", "u1"}, args)
}
