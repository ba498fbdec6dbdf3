package http

import (
	"net/http"

	"github.com/courtreign/courtreign/internal/config"
	"github.com/courtreign/courtreign/internal/invitations"
	"github.com/courtreign/courtreign/internal/matches"
	"github.com/courtreign/courtreign/internal/metrics"
	"github.com/courtreign/courtreign/internal/notifier"
	"github.com/courtreign/courtreign/internal/presence"
	"github.com/courtreign/courtreign/internal/pubsub"
	"github.com/courtreign/courtreign/internal/ranking"
	"github.com/courtreign/courtreign/internal/refdata"
)

type Server struct {
	Invitations    invitations.Service
	Matches        *matches.Lifecycle
	Ranking        ranking.Engine
	Presence       presence.Tracker
	Ref            refdata.Lookup
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Notifier       notifier.Notifier
	Cfg            config.Config
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}
