package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

var TaskOperations = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "task_operations_total",
		Help: "Task operations handled by the task service",
	},
	[]string{"op"},
)

func init() {
	prometheus.MustRegister(TaskOperations)
}
