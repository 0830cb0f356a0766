package monitoring

import (
	"time"

	"github.com/casavia/casavia-be/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Maintenance runs periodic housekeeping: pruning old entries from the
// event log on a cron schedule.
type Maintenance struct {
	eventSvc  services.EventServiceProvider
	schedule  cron.Schedule
	retention time.Duration
	ticker    *time.Ticker
	done      chan bool
	nextRun   time.Time
}

// NewMaintenance creates the maintenance loop. The spec is a standard
// five-field cron expression.
func NewMaintenance(eventSvc services.EventServiceProvider, spec string, retention time.Duration) (*Maintenance, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, err
	}
	return &Maintenance{
		eventSvc:  eventSvc,
		schedule:  schedule,
		retention: retention,
		done:      make(chan bool),
		nextRun:   schedule.Next(time.Now()),
	}, nil
}

// Run starts the maintenance ticking loop.
func (m *Maintenance) Run() {
	log.Info().Time("next_run", m.nextRun).Msg("Starting maintenance loop")
	m.ticker = time.NewTicker(1 * time.Minute)
	defer m.ticker.Stop()

	for {
		select {
		case <-m.done:
			log.Info().Msg("Stopping maintenance loop")
			return
		case <-m.ticker.C:
			now := time.Now()
			if now.After(m.nextRun) {
				m.runOnce(now)
				m.nextRun = m.schedule.Next(now)
			}
		}
	}
}

// Stop halts the maintenance loop.
func (m *Maintenance) Stop() {
	m.done <- true
}

func (m *Maintenance) runOnce(now time.Time) {
	cutoff := now.Add(-m.retention)
	if _, err := m.eventSvc.PruneEventsBefore(cutoff); err != nil {
		log.Error().Err(err).Msg("Maintenance: failed to prune events")
	}
}
