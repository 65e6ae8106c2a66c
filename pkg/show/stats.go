package show

import "github.com/gonewx/fireworks/pkg/components"

// Stats 模拟统计计数
type Stats struct {
	Frame int

	RocketsLaunched int
	RocketsExploded int

	ExplosionParticles int
	TrailParticles     int
	FountainParticles  int

	LiveRockets   int
	LiveParticles int
	PeakParticles int

	// LaunchesByFrame 发射帧 → 发射数量
	LaunchesByFrame map[int]int
	// ExplodedByLaunchFrame 发射帧 → 已爆炸数量
	ExplodedByLaunchFrame map[int]int
}

func newStats() Stats {
	return Stats{
		LaunchesByFrame:       make(map[int]int),
		ExplodedByLaunchFrame: make(map[int]int),
	}
}

func (s *Stats) countSpawned(particles []*components.ParticleComponent) {
	for _, p := range particles {
		switch p.Origin {
		case components.OriginExplosion:
			s.ExplosionParticles++
		case components.OriginTrail:
			s.TrailParticles++
		case components.OriginFountain:
			s.FountainParticles++
		}
	}
}

// clone 返回深拷贝，调用方可以随意持有
func (s Stats) clone() Stats {
	out := s
	out.LaunchesByFrame = make(map[int]int, len(s.LaunchesByFrame))
	for k, v := range s.LaunchesByFrame {
		out.LaunchesByFrame[k] = v
	}
	out.ExplodedByLaunchFrame = make(map[int]int, len(s.ExplodedByLaunchFrame))
	for k, v := range s.ExplodedByLaunchFrame {
		out.ExplodedByLaunchFrame[k] = v
	}
	return out
}
