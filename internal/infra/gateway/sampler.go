package gateway

import (
	"math/rand/v2"

	"shophub/internal/domain/service"
)

// randSampler draws outcomes from the process-wide random source.
type randSampler struct{}

// NewRandSampler creates the production outcome sampler.
func NewRandSampler() service.OutcomeSampler {
	return randSampler{}
}

func (randSampler) Sample(successRate float64) bool {
	return rand.Float64() < successRate
}
