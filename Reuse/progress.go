package Reuse

import (
	"github.com/phuslu/log"
)

// Progress reports pipeline advancement through a structured logger
// every Every accesses. The zero Progress and the nil Progress are both
// silent, so the pipeline calls it unconditionally.
type Progress struct {
	Every  uint32
	Logger *log.Logger
}

// NewProgress reporting every n accesses to the default logger.
func NewProgress(n uint32) *Progress {
	return &Progress{Every: n, Logger: &log.DefaultLogger}
}

func (p *Progress) step(t uint32, live uint) {
	if p == nil || p.Every == 0 || (t+1)%p.Every != 0 {
		return
	}
	p.Logger.Info().Uint64("processed", uint64(t)+1).Uint64("live", uint64(live)).Msg("reuse pipeline progress")
}

func (p *Progress) done(total uint32, live uint) {
	if p == nil || p.Logger == nil {
		return
	}
	p.Logger.Info().Uint64("processed", uint64(total)).Uint64("live", uint64(live)).Msg("reuse pipeline finished")
}
