// Package processes lists the allow-listed daemons running on the router.
package processes

import (
	"context"
	"sort"

	"github.com/orris-inc/resinfo/internal/domain/router"
	"github.com/orris-inc/resinfo/internal/shared/logger"
)

// DefaultLimit is the number of services reported.
const DefaultLimit = 20

// MemoryReader resolves resident memory for a pid.
type MemoryReader interface {
	ResidentKB(pid string) (int64, bool)
}

type Service struct {
	source Source
	memory MemoryReader
	limit  int
	logger logger.Interface
}

func NewService(source Source, memory MemoryReader, limit int, log logger.Interface) *Service {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Service{source: source, memory: memory, limit: limit, logger: log}
}

// Running returns allow-listed services ordered by resident memory,
// largest first, at most limit entries. Entries with unknown memory sort
// as zero; ties keep process table order.
func (s *Service) Running(ctx context.Context) ([]router.Service, error) {
	procs, err := s.source.List(ctx)
	if err != nil {
		s.logger.Warnw("failed to list processes", "error", err)
		return nil, err
	}

	services := make([]router.Service, 0, len(procs))
	for _, p := range procs {
		name := ServiceName(p.Command)
		if !Allowed(name) {
			continue
		}

		kb, ok := p.RSSKB, p.HasRSS
		if !ok && s.memory != nil {
			kb, ok = s.memory.ResidentKB(p.PID)
		}
		if !ok {
			kb = 0
		}

		services = append(services, router.Service{
			PID:     p.PID,
			Name:    name,
			Command: p.Command,
			Status:  router.ServiceStatusRunning,
			Memory:  FormatMemory(kb, ok),
			RSSKB:   kb,
		})
	}

	sort.SliceStable(services, func(i, j int) bool {
		return services[i].RSSKB > services[j].RSSKB
	})
	if len(services) > s.limit {
		services = services[:s.limit]
	}

	s.logger.Debugw("listed services", "matched", len(services), "processes", len(procs))
	return services, nil
}
