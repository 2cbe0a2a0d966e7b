package postgres

import (
	"github.com/kallejre/quick-gps-bookmark/internal/service"
)

func (p *Postgres) PointRepository() service.PointRepository           { return p.Points }
func (p *Postgres) ModerationRepository() service.ModerationRepository { return p.Moderation }
func (p *Postgres) StatsRepository() service.StatsRepository           { return p.Stat }
