package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder exposes domain counters to Prometheus
type Recorder struct {
	usersRegistered prometheus.Counter
	tasksCreated    prometheus.Counter
	tasksDeleted    prometheus.Counter
}

// New registers the domain counters on reg
func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		usersRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "promanage_users_registered_total",
			Help: "Total number of registered users",
		}),
		tasksCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "promanage_tasks_created_total",
			Help: "Total number of created tasks",
		}),
		tasksDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "promanage_tasks_deleted_total",
			Help: "Total number of deleted tasks",
		}),
	}

	reg.MustRegister(r.usersRegistered, r.tasksCreated, r.tasksDeleted)

	return r
}

func (r *Recorder) UserRegistered() { r.usersRegistered.Inc() }

func (r *Recorder) TaskCreated() { r.tasksCreated.Inc() }

func (r *Recorder) TaskDeleted() { r.tasksDeleted.Inc() }
