package metrics

import (
	"testing"

	"github.com/matryer/is"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorder(t *testing.T) {
	is := is.New(t)
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.UserRegistered()
	r.TaskCreated()
	r.TaskCreated()
	r.TaskDeleted()

	is.Equal(testutil.ToFloat64(r.usersRegistered), 1.0)
	is.Equal(testutil.ToFloat64(r.tasksCreated), 2.0)
	is.Equal(testutil.ToFloat64(r.tasksDeleted), 1.0)

	count, err := testutil.GatherAndCount(reg)
	is.NoErr(err)
	is.Equal(count, 3)
}
