// Package metrics defines and registers all custom Prometheus metrics for
// the WorkEat accounts API. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "workeat"

// AccountsCreatedTotal counts successfully registered accounts.
var AccountsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_created_total",
		Help:      "Total number of accounts successfully created.",
	},
)

// AccountsDeletedTotal counts permanently deleted accounts.
var AccountsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_deleted_total",
		Help:      "Total number of accounts permanently deleted.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// WelcomeEmailsTotal counts welcome email deliveries.
// Label:
//   - result: "sent" or "error"
var WelcomeEmailsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "welcome_emails_total",
		Help:      "Total number of welcome email delivery attempts, labelled by result.",
	},
	[]string{"result"},
)

// MailQueueDepth tracks the number of emails waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var MailQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "mail_queue_depth",
		Help:      "Current number of emails pending in each mail queue worker channel.",
	},
	[]string{"worker_id"},
)
