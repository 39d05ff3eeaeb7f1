package pipeline

import (
	"context"

	"github.com/easybiz/easybiz-api/internal/generation"
)

const businessPlanPrompt = "Create a comprehensive business plan including executive summary, market analysis, " +
	"marketing strategy, operational plan, and financial projections."

// BusinessPlanResult is the result of the business_plan pipeline.
type BusinessPlanResult struct {
	BusinessPlan generation.Content `json:"business_plan"`
	GeneratedAt  string             `json:"generated_at"`
}

// BusinessPlan generates a business plan in a single call.
type BusinessPlan struct {
	base
}

func (p *BusinessPlan) Type() generation.GenerationType { return generation.TypeBusinessPlan }

func (p *BusinessPlan) Run(ctx context.Context, req generation.Request) (any, error) {
	plan, err := p.gen.GenerateText(ctx, businessPlanPrompt, req.Prompts)
	if err != nil {
		return nil, err
	}

	return BusinessPlanResult{BusinessPlan: plan, GeneratedAt: p.timestamp()}, nil
}
